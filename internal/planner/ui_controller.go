package planner

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lowaak/workout-planner/internal/session"
	"github.com/lowaak/workout-planner/internal/storage"
	"github.com/lowaak/workout-planner/internal/store"
	"github.com/lowaak/workout-planner/internal/workout"
)

// Number of weeks listed on the progress page
const progressWeeks = 4

// activeSession is the workout currently running in the session page
type activeSession struct {
	id       uint64
	day      workout.Day
	workout  workout.Workout
	engine   *session.Engine
	recorded atomic.Bool
}

// UIController handles UI events and coordinates the stores, the session
// engine and the UIModel
type UIController struct {
	model          *UIModel
	plans          *store.PlanStore
	settings       *store.SettingsStore
	progress       *store.ProgressStore
	logger         *log.Logger
	now            func() time.Time
	sessionOptions []session.Option
	ctx            context.Context
	cancel         context.CancelFunc

	mu     sync.Mutex
	active *activeSession
	lastID uint64
}

// NewUIControllerArg holds the arguments for creating a new UIController
type NewUIControllerArg struct {
	UIModel  *UIModel
	Plans    *store.PlanStore
	Settings *store.SettingsStore
	Progress *store.ProgressStore
	Logger   *log.Logger
	// Now defaults to time.Now
	Now func() time.Time
	// SessionOptions are passed to every session engine, after the tick
	// interval and before the controller's own callbacks
	SessionOptions []session.Option
	TickInterval   time.Duration
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(args NewUIControllerArg) *UIController {
	if args.UIModel == nil {
		panic("UIController: model cannot be nil")
	}
	if args.Plans == nil {
		panic("UIController: plan store cannot be nil")
	}
	if args.Settings == nil {
		panic("UIController: settings store cannot be nil")
	}
	if args.Progress == nil {
		panic("UIController: progress store cannot be nil")
	}
	if args.Logger == nil {
		panic("UIController: logger cannot be nil")
	}
	now := args.Now
	if now == nil {
		now = time.Now
	}
	opts := []session.Option{}
	if args.TickInterval > 0 {
		opts = append(opts, session.WithTickInterval(args.TickInterval))
	}
	opts = append(opts, args.SessionOptions...)

	ctx, cancel := context.WithCancel(context.Background())
	return &UIController{
		model:          args.UIModel,
		plans:          args.Plans,
		settings:       args.Settings,
		progress:       args.Progress,
		logger:         args.Logger,
		now:            now,
		sessionOptions: opts,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Refresh publishes every page's state to the model
func (c *UIController) Refresh() {
	c.model.SetSettings(c.settings.Get())
	c.refreshSchedule()
	c.refreshProgress()
}

// WatchStorage reloads a document whenever another process rewrites it
func (c *UIController) WatchStorage(w storage.Watcher) error {
	for _, key := range []string{store.PlanKey, store.SettingsKey, store.ProgressKey} {
		if err := w.Watch(c.ctx, key, func() { c.ReloadKey(key) }); err != nil {
			return err
		}
	}
	return nil
}

// ReloadKey re-reads one persisted document and republishes what depends on it
func (c *UIController) ReloadKey(key string) {
	if c.ctx.Err() != nil {
		return
	}
	switch key {
	case store.PlanKey:
		c.plans.Reload(c.ctx)
		c.refreshSchedule()
	case store.SettingsKey:
		c.model.SetSettings(c.settings.Reload(c.ctx))
		c.refreshSchedule()
	case store.ProgressKey:
		c.progress.Reload(c.ctx)
		c.refreshSchedule()
		c.refreshProgress()
	default:
		c.logger.Printf("UIController: Unknown document %q", key)
		return
	}
	c.logger.Printf("Reloaded %s", key)
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	if c.current() != nil {
		c.ExitSession()
	}
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if c.current() != nil && mode != UIModeSession {
		c.logger.Printf("Workout running - press 'q' to exit it first")
		return
	}
	if mode == UIModeSession && c.current() == nil {
		c.logger.Printf("No workout running - pick a day in Schedule mode (press 1)")
		return
	}
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

// --- Schedule Methods ---

// StartDay starts a session for the given day's workout
func (c *UIController) StartDay(day workout.Day) {
	w, ok := c.plans.Workout(day)
	if !ok {
		c.logger.Printf("Unknown day: %s", day)
		return
	}
	if w.IsRestDay() {
		c.logger.Printf("%s is a rest day", day.Title())
		return
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		c.logger.Printf("A workout is already running")
		return
	}
	c.lastID++
	as := &activeSession{id: c.lastID, day: day, workout: w.Clone()}
	opts := append([]session.Option{}, c.sessionOptions...)
	opts = append(opts,
		session.OnChange(func(s session.State) { c.publishSession(as, s) }),
		session.OnComplete(func(sets []workout.SetRecord) { c.recordSession(as, sets) }),
		session.OnExit(func() {
			if !as.recorded.Load() {
				c.logger.Printf("Workout '%s' abandoned, nothing saved", as.workout.Name)
			}
		}),
	)
	as.engine = session.New(as.workout, c.logger, opts...)
	c.active = as
	c.mu.Unlock()

	c.logger.Printf("Starting %s: %s", day.Title(), w.Name)
	c.publishSession(as, as.engine.State())
	c.model.SetMode(UIModeSession)
}

// --- Session Methods ---

// EnterReps mirrors the reps input field into the session. Ignored when no
// workout is running, since the field is also cleared between sessions.
func (c *UIController) EnterReps(s string) {
	if as := c.current(); as != nil {
		as.engine.EnterReps(s)
	}
}

// EnterWeight mirrors the weight input field into the session
func (c *UIController) EnterWeight(s string) {
	if as := c.current(); as != nil {
		as.engine.EnterWeight(s)
	}
}

// CompleteSet logs the current set with the given inputs
func (c *UIController) CompleteSet(reps, weight string) {
	c.withEngine(func(e *session.Engine) { e.CompleteSet(reps, weight) })
}

// SkipExercise moves on to the next exercise without logging
func (c *UIController) SkipExercise() {
	c.withEngine(func(e *session.Engine) { e.SkipExercise() })
}

// SkipRest ends the rest countdown
func (c *UIController) SkipRest() {
	c.withEngine(func(e *session.Engine) { e.SkipRest() })
}

// ToggleTimer pauses or resumes the rest countdown
func (c *UIController) ToggleTimer() {
	c.withEngine(func(e *session.Engine) { e.ToggleTimer() })
}

// FinishSession saves a finished workout and returns to the schedule
func (c *UIController) FinishSession() {
	as := c.current()
	if as == nil {
		c.logger.Printf("No workout running")
		return
	}
	as.engine.FinishEarly()
	if as.engine.State().Phase != session.PhaseFinished || !as.recorded.Load() {
		return
	}
	c.logger.Printf("Workout '%s' saved", as.workout.Name)
	c.endSession(as, false)
}

// ExitSession abandons the running workout without saving
func (c *UIController) ExitSession() {
	as := c.current()
	if as == nil {
		c.logger.Printf("No workout running")
		return
	}
	c.endSession(as, true)
}

// --- Settings Methods ---

// SaveSettings replaces the stored settings
func (c *UIController) SaveSettings(settings workout.UserSettings) {
	updated, err := c.settings.Update(c.ctx, func(s *workout.UserSettings) { *s = settings })
	if err != nil {
		c.logger.Printf("Failed to save settings: %v", err)
		return
	}
	c.model.SetSettings(updated)
	c.refreshSchedule()
	c.logger.Printf("Settings saved (%s, %d days/week, %d min)", updated.FitnessLevel, updated.WorkoutDays, updated.SessionDuration)
}

// GeneratePlan replaces the weekly plan with one generated from the saved
// fitness level
func (c *UIController) GeneratePlan() {
	settings := c.settings.Get()
	if _, err := c.plans.Generate(c.ctx, settings); err != nil {
		c.logger.Printf("Failed to generate plan: %v", err)
		return
	}
	c.refreshSchedule()
	c.logger.Printf("Generated %s plan", settings.FitnessLevel)
}

// Shutdown abandons any running workout and stops reacting to storage changes
func (c *UIController) Shutdown() {
	if as := c.current(); as != nil {
		c.endSession(as, true)
	}
	c.cancel()
}

// --- Private methods ---

func (c *UIController) current() *activeSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// withEngine runs fn without holding mu: the engine may call back into the
// controller from inside fn
func (c *UIController) withEngine(fn func(e *session.Engine)) {
	as := c.current()
	if as == nil {
		c.logger.Printf("No workout running")
		return
	}
	fn(as.engine)
}

func (c *UIController) endSession(as *activeSession, exit bool) {
	c.mu.Lock()
	if c.active != as {
		c.mu.Unlock()
		return
	}
	c.active = nil
	c.mu.Unlock()

	if exit {
		as.engine.Exit()
	} else {
		as.engine.Close()
	}
	c.model.ClearSession()
	c.model.SetMode(UIModeSchedule)
}

// publishSession may run on the engine's timer goroutine
func (c *UIController) publishSession(as *activeSession, s session.State) {
	if s.Closed {
		return
	}
	c.model.SetSession(SessionView{
		Active:    true,
		SessionID: as.id,
		Day:       as.day,
		Workout:   as.workout,
		State:     s,
		Progress:  session.Progress(as.workout, s),
		Upcoming:  upcoming(as.workout, s.ExerciseIndex, upcomingCount),
	})
}

// recordSession writes the progress entry the first time a session hands
// off its log. A failed write is retried on the next hand-off.
func (c *UIController) recordSession(as *activeSession, sets []workout.SetRecord) {
	if !as.recorded.CompareAndSwap(false, true) {
		return
	}
	if _, err := c.progress.Record(c.ctx, as.day, as.workout, sets, c.now()); err != nil {
		as.recorded.Store(false)
		c.logger.Printf("Failed to save workout: %v", err)
		return
	}
	c.model.MarkSessionSaved(as.id)
	c.refreshSchedule()
	c.refreshProgress()
}

func (c *UIController) refreshSchedule() {
	now := c.now()
	entries := c.progress.Entries()
	completed := make(map[workout.Day]bool, len(workout.AllDays))
	for _, day := range workout.AllDays {
		completed[day] = store.CompletedOn(entries, day, now)
	}
	c.model.SetSchedule(ScheduleState{
		Plan:           c.plans.Get(),
		Today:          workout.DayOf(now),
		CompletedToday: completed,
		Week:           store.WeeklyStats(entries, now, c.settings.Get().WorkoutDays),
	})
}

func (c *UIController) refreshProgress() {
	entries := c.progress.Entries()
	c.model.SetProgress(ProgressState{
		Summary: store.Summary(entries, c.now()),
		Weeks:   store.WeeklyGroups(entries, progressWeeks),
	})
}

func upcoming(w workout.Workout, index, n int) []workout.Exercise {
	start := index + 1
	if start >= len(w.Exercises) {
		return []workout.Exercise{}
	}
	end := start + n
	if end > len(w.Exercises) {
		end = len(w.Exercises)
	}
	return append([]workout.Exercise{}, w.Exercises[start:end]...)
}
