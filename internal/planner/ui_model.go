package planner

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/workout-planner/internal/events"
	"github.com/lowaak/workout-planner/internal/go_func_utils"
	"github.com/lowaak/workout-planner/internal/session"
	"github.com/lowaak/workout-planner/internal/store"
	"github.com/lowaak/workout-planner/internal/workout"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// ScheduleState is what the schedule page shows
type ScheduleState struct {
	Plan           workout.WeeklyPlan
	Today          workout.Day
	CompletedToday map[workout.Day]bool
	Week           store.WeekStats
}

// ProgressState is what the progress page shows
type ProgressState struct {
	Summary store.ProgressSummary
	Weeks   []store.WeekGroup
}

// SessionView is one snapshot of the running workout. SessionID tells
// sessions apart; within a session State.Version orders the snapshots.
type SessionView struct {
	Active    bool
	SessionID uint64
	Day       workout.Day
	Workout   workout.Workout
	State     session.State
	Progress  float64
	Upcoming  []workout.Exercise
	Saved     bool // progress entry written for this session
}

// Number of exercises shown under "Up next"
const upcomingCount = 3

const maxLogLines = 1000

type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	scheduleEvent         *events.ChannelEvent[ScheduleState]
	schedule              ScheduleState
	progressEvent         *events.ChannelEvent[ProgressState]
	progress              ProgressState
	settingsEvent         *events.ChannelEvent[workout.UserSettings]
	settings              workout.UserSettings
	sessionEvent          *events.ChannelEvent[SessionView]
	session               SessionView
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	workers               *go_func_utils.Group
	logger                *log.Logger
}

func NewUIModel(logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModeSchedule},
		scheduleEvent:         events.NewChannelEvent[ScheduleState](true),
		progressEvent:         events.NewChannelEvent[ProgressState](true),
		settingsEvent:         events.NewChannelEvent[workout.UserSettings](true),
		sessionEvent:          events.NewChannelEvent[SessionView](true),
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		workers:               go_func_utils.NewGroup(logger),
		logger:                logger,
	}

	// Read from the UI log channel and populate logLines
	model.workers.Go("UIModel log reader", func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.workers.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToSchedule registers a channel to receive schedule page updates
func (m *UIModel) ListenToSchedule(ch chan<- ScheduleState) func() {
	return m.scheduleEvent.Listen(ch)
}

func (m *UIModel) GetSchedule() ScheduleState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.schedule
}

func (m *UIModel) SetSchedule(state ScheduleState) {
	m.mu.Lock()
	m.schedule = state
	m.mu.Unlock()

	m.scheduleEvent.Notify(state)
}

// ListenToProgress registers a channel to receive progress page updates
func (m *UIModel) ListenToProgress(ch chan<- ProgressState) func() {
	return m.progressEvent.Listen(ch)
}

func (m *UIModel) GetProgress() ProgressState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.progress
}

func (m *UIModel) SetProgress(state ProgressState) {
	m.mu.Lock()
	m.progress = state
	m.mu.Unlock()

	m.progressEvent.Notify(state)
}

// ListenToSettings registers a channel to receive settings changes
func (m *UIModel) ListenToSettings(ch chan<- workout.UserSettings) func() {
	return m.settingsEvent.Listen(ch)
}

func (m *UIModel) GetSettings() workout.UserSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

func (m *UIModel) SetSettings(settings workout.UserSettings) {
	m.mu.Lock()
	m.settings = settings
	m.mu.Unlock()

	m.settingsEvent.Notify(settings)
}

// ListenToSession registers a channel to receive session snapshots
func (m *UIModel) ListenToSession(ch chan<- SessionView) func() {
	return m.sessionEvent.Listen(ch)
}

// GetSession returns the latest session snapshot
func (m *UIModel) GetSession() SessionView {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// SetSession publishes a session snapshot. Snapshots can arrive out of order
// from the rest timer goroutine; one that is not newer than the current
// snapshot of the same session is dropped. Returns whether it was applied.
func (m *UIModel) SetSession(view SessionView) bool {
	m.mu.Lock()
	cur := m.session
	if cur.Active && view.Active && cur.SessionID == view.SessionID && view.State.Version <= cur.State.Version {
		m.mu.Unlock()
		return false
	}
	if cur.SessionID == view.SessionID {
		view.Saved = view.Saved || cur.Saved
	}
	m.session = view
	m.mu.Unlock()

	m.sessionEvent.Notify(view)
	return true
}

// MarkSessionSaved records that the session's progress entry was written
func (m *UIModel) MarkSessionSaved(sessionID uint64) {
	m.mu.Lock()
	if m.session.SessionID != sessionID || m.session.Saved {
		m.mu.Unlock()
		return
	}
	m.session.Saved = true
	view := m.session
	m.mu.Unlock()

	m.sessionEvent.Notify(view)
}

// ClearSession publishes that no workout is running
func (m *UIModel) ClearSession() {
	m.mu.Lock()
	view := SessionView{SessionID: m.session.SessionID}
	m.session = view
	m.mu.Unlock()

	m.sessionEvent.Notify(view)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			// Notify listeners for immediate display
			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > len(m.logLines) {
		n = len(m.logLines)
	}
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
