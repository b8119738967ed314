package session

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/workout-planner/internal/go_func_utils"
	"github.com/lowaak/workout-planner/internal/workout"
)

// Phase is where a session is in the set/rest cycle
type Phase int

const (
	PhaseWorking  Phase = iota // performing the current set
	PhaseResting               // counting down between sets of one exercise
	PhaseFinished              // every exercise done, log handed off
)

func (p Phase) String() string {
	switch p {
	case PhaseWorking:
		return "working"
	case PhaseResting:
		return "resting"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// DefaultTickInterval is one rest-countdown step
const DefaultTickInterval = time.Second

// State is a copy of the engine's position at one point in time. Version
// grows with every transition so observers can drop out-of-order snapshots.
type State struct {
	Version              uint64
	ExerciseIndex        int
	SetNumber            int
	Phase                Phase
	RemainingRestSeconds int
	TimerRunning         bool
	CompletedSets        []workout.SetRecord
	EnteredReps          string
	EnteredWeight        string
	Closed               bool
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the wall clock used to arm the rest timer
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithTickInterval sets how much real time one countdown step takes
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.tickInterval = d }
}

// OnComplete is called with the completed sets when the workout finishes and
// again on every FinishEarly
func OnComplete(fn func([]workout.SetRecord)) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// OnExit is called once when the session is abandoned with Exit
func OnExit(fn func()) Option {
	return func(e *Engine) { e.onExit = fn }
}

// OnChange is called with a snapshot after every transition. It may run on
// the timer goroutine, so it must not call Exit or Close synchronously.
func OnChange(fn func(State)) Option {
	return func(e *Engine) { e.onChange = fn }
}

// Engine runs one workout: which exercise and set is next, the rest
// countdown between sets, and the log of completed sets. All commands are
// safe to call from any goroutine; each one is applied atomically.
type Engine struct {
	workout      workout.Workout
	logger       *log.Logger
	clock        Clock
	tickInterval time.Duration
	onComplete   func([]workout.SetRecord)
	onExit       func()
	onChange     func(State)

	// Session state (protected by mu)
	mu             sync.Mutex
	version        uint64
	exerciseIndex  int
	setNumber      int
	phase          Phase
	remainingRest  int
	timerRunning   bool
	completedSets  []workout.SetRecord
	enteredReps    string
	enteredWeight  string
	closed         bool
	exited         bool
	timerGen       uint64        // bumped on every arm and disarm
	timerStop      chan struct{} // non-nil while a timer goroutine is armed
	timerGoroutine *go_func_utils.Group
}

// outcome collects the callbacks a transition owes, to be delivered after
// the lock is released
type outcome struct {
	changed   bool
	state     State
	handOff   bool
	completed []workout.SetRecord
	exited    bool
}

// New starts a session for w. A workout without exercises starts finished
// and reports an empty log straight away.
func New(w workout.Workout, logger *log.Logger, opts ...Option) *Engine {
	if logger == nil {
		panic("Engine: logger cannot be nil")
	}

	e := &Engine{
		workout:        w.Clone(),
		logger:         logger,
		clock:          RealClock{},
		tickInterval:   DefaultTickInterval,
		setNumber:      1,
		phase:          PhaseWorking,
		completedSets:  []workout.SetRecord{},
		timerGoroutine: go_func_utils.NewGroup(logger),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = RealClock{}
	}
	if e.tickInterval <= 0 {
		e.tickInterval = DefaultTickInterval
	}

	if len(e.workout.Exercises) == 0 {
		e.mu.Lock()
		e.finishLocked()
		o := e.changedLocked()
		o.handOff = true
		o.completed = e.logCopyLocked()
		e.mu.Unlock()
		e.logger.Printf("Engine: '%s' has no exercises, finished immediately", e.workout.Name)
		e.deliver(o)
		return e
	}

	e.logger.Printf("Engine: Started '%s' (%d exercises, %d sets)", e.workout.Name, len(e.workout.Exercises), e.workout.TotalSets())
	return e
}

// Workout returns the workout this session runs
func (e *Engine) Workout() workout.Workout {
	return e.workout.Clone()
}

// State returns a snapshot of the current session state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Progress returns the completion percentage of the current state
func (e *Engine) Progress() float64 {
	return Progress(e.workout, e.State())
}

// CurrentExercise returns the exercise being worked on, false once finished
func (e *Engine) CurrentExercise() (workout.Exercise, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exerciseIndex >= len(e.workout.Exercises) {
		return workout.Exercise{}, false
	}
	return e.workout.Exercises[e.exerciseIndex], true
}

// Upcoming returns up to n exercises after the current one
func (e *Engine) Upcoming(n int) []workout.Exercise {
	e.mu.Lock()
	defer e.mu.Unlock()
	start := e.exerciseIndex + 1
	if n <= 0 || start >= len(e.workout.Exercises) {
		return []workout.Exercise{}
	}
	end := start + n
	if end > len(e.workout.Exercises) {
		end = len(e.workout.Exercises)
	}
	out := make([]workout.Exercise, end-start)
	copy(out, e.workout.Exercises[start:end])
	return out
}

// EnterReps updates the reps input buffer for the current set
func (e *Engine) EnterReps(s string) {
	e.mu.Lock()
	if e.closed || e.phase == PhaseFinished {
		e.mu.Unlock()
		return
	}
	e.enteredReps = s
	o := e.changedLocked()
	e.mu.Unlock()
	e.deliver(o)
}

// EnterWeight updates the weight input buffer for the current set
func (e *Engine) EnterWeight(s string) {
	e.mu.Lock()
	if e.closed || e.phase == PhaseFinished {
		e.mu.Unlock()
		return
	}
	e.enteredWeight = s
	o := e.changedLocked()
	e.mu.Unlock()
	e.deliver(o)
}

// CompleteSet logs the current set and moves on. Non-blank arguments replace
// the input buffers before they are committed; reps that are not a whole
// number count as not entered. Between sets of one exercise the rest
// countdown starts; moving to the next exercise skips rest.
func (e *Engine) CompleteSet(reps, weight string) {
	e.mu.Lock()
	if e.closed || e.phase != PhaseWorking || len(e.workout.Exercises) == 0 {
		phase := e.phase
		e.mu.Unlock()
		e.logger.Printf("Engine: Cannot complete set while %s", phase)
		return
	}

	if reps != "" {
		e.enteredReps = reps
	}
	if weight != "" {
		e.enteredWeight = weight
	}

	ex := e.workout.Exercises[e.exerciseIndex]
	record := workout.SetRecord{
		ExerciseName: ex.Name,
		SetNumber:    e.setNumber,
		Reps:         ex.Reps,
		Weight:       workout.BodyweightLabel,
	}
	if r := NormalizeReps(e.enteredReps); r != "" {
		record.Reps = r
	}
	if w := NormalizeWeight(e.enteredWeight); w != "" {
		record.Weight = w
	}
	e.completedSets = append(e.completedSets, record)
	e.enteredReps = ""
	e.enteredWeight = ""

	finished := false
	if e.setNumber < ex.Sets {
		e.setNumber++
		e.startRestLocked(ex.RestSeconds)
	} else {
		e.setNumber = 1
		if e.exerciseIndex+1 < len(e.workout.Exercises) {
			e.exerciseIndex++
		} else {
			e.finishLocked()
			finished = true
		}
	}
	o := e.changedLocked()
	if finished {
		o.handOff = true
		o.completed = e.logCopyLocked()
	}
	e.mu.Unlock()

	e.logger.Printf("Engine: Completed %s set %d (%s @ %s)", record.ExerciseName, record.SetNumber, record.Reps, record.Weight)
	if o.handOff {
		e.logger.Printf("Engine: '%s' finished with %d sets", e.workout.Name, len(o.completed))
	}
	e.deliver(o)
}

// SkipExercise moves to the first set of the next exercise without logging
// the remaining sets. Not available on the last exercise.
func (e *Engine) SkipExercise() {
	e.mu.Lock()
	if e.closed || e.phase == PhaseFinished || e.exerciseIndex+1 >= len(e.workout.Exercises) {
		e.mu.Unlock()
		e.logger.Printf("Engine: Cannot skip - no next exercise")
		return
	}
	e.exerciseIndex++
	e.setNumber = 1
	e.cancelRestLocked()
	o := e.changedLocked()
	e.mu.Unlock()

	e.logger.Printf("Engine: Skipped to exercise %d", o.state.ExerciseIndex+1)
	e.deliver(o)
}

// SkipRest ends the rest countdown early
func (e *Engine) SkipRest() {
	e.mu.Lock()
	if e.closed || e.phase != PhaseResting {
		e.mu.Unlock()
		e.logger.Printf("Engine: Cannot skip rest - not resting")
		return
	}
	e.cancelRestLocked()
	o := e.changedLocked()
	e.mu.Unlock()
	e.deliver(o)
}

// ToggleTimer pauses or resumes the rest countdown. The remaining seconds
// are kept as they are.
func (e *Engine) ToggleTimer() {
	e.mu.Lock()
	if e.closed || e.phase != PhaseResting {
		e.mu.Unlock()
		e.logger.Printf("Engine: Cannot toggle timer - not resting")
		return
	}
	e.timerRunning = !e.timerRunning
	if e.timerRunning {
		e.armTimerLocked()
	} else {
		e.disarmTimerLocked()
	}
	o := e.changedLocked()
	e.mu.Unlock()

	if o.state.TimerRunning {
		e.logger.Printf("Engine: Rest resumed at %ds", o.state.RemainingRestSeconds)
	} else {
		e.logger.Printf("Engine: Rest paused at %ds", o.state.RemainingRestSeconds)
	}
	e.deliver(o)
}

// Tick advances the rest countdown by one step. It is a no-op unless the
// session is resting with the timer running.
func (e *Engine) Tick() {
	e.mu.Lock()
	o, _ := e.tickLocked()
	e.mu.Unlock()
	e.deliver(o)
}

// FinishEarly hands the completed log off again. Only valid once finished;
// the log is frozen by then so repeated calls emit the same sets.
func (e *Engine) FinishEarly() {
	e.mu.Lock()
	if e.exited || e.phase != PhaseFinished {
		e.mu.Unlock()
		e.logger.Printf("Engine: Cannot finish - workout not complete")
		return
	}
	o := outcome{handOff: true, completed: e.logCopyLocked()}
	e.mu.Unlock()
	e.deliver(o)
}

// Exit abandons the session. No log is handed off; the exit callback runs
// after the rest timer has been stopped and its goroutine has returned.
func (e *Engine) Exit() {
	if e.shutdown(true) {
		e.logger.Printf("Engine: '%s' exited", e.workout.Name)
	}
}

// Close releases the rest timer without calling the exit callback. Used when
// the owner discards a finished session.
func (e *Engine) Close() {
	e.shutdown(false)
}

func (e *Engine) shutdown(exit bool) bool {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}
	e.closed = true
	e.exited = exit
	e.timerRunning = false
	e.disarmTimerLocked()
	o := e.changedLocked()
	o.exited = exit
	e.mu.Unlock()

	e.timerGoroutine.Wait()
	e.deliver(o)
	return true
}

// --- Private methods (suffix Locked: caller holds mu) ---

func (e *Engine) tickLocked() (outcome, bool) {
	if e.closed || e.phase != PhaseResting || !e.timerRunning {
		return outcome{}, false
	}
	if e.remainingRest > 0 {
		e.remainingRest--
	}
	if e.remainingRest == 0 {
		e.cancelRestLocked()
		return e.changedLocked(), false
	}
	return e.changedLocked(), true
}

// tickFrom applies a tick from the timer goroutine armed as generation gen.
// Ticks from a disarmed generation are dropped. Returns false when the
// goroutine should stop.
func (e *Engine) tickFrom(gen uint64) bool {
	e.mu.Lock()
	if gen != e.timerGen || e.timerStop == nil {
		e.mu.Unlock()
		return false
	}
	o, keepGoing := e.tickLocked()
	e.mu.Unlock()
	e.deliver(o)
	return keepGoing
}

func (e *Engine) startRestLocked(seconds int) {
	if seconds <= 0 {
		e.cancelRestLocked()
		return
	}
	e.phase = PhaseResting
	e.remainingRest = seconds
	e.timerRunning = true
	e.armTimerLocked()
}

func (e *Engine) cancelRestLocked() {
	e.phase = PhaseWorking
	e.remainingRest = 0
	e.timerRunning = false
	e.disarmTimerLocked()
}

func (e *Engine) finishLocked() {
	e.exerciseIndex = len(e.workout.Exercises)
	e.setNumber = 1
	e.phase = PhaseFinished
	e.remainingRest = 0
	e.timerRunning = false
	e.enteredReps = ""
	e.enteredWeight = ""
	e.disarmTimerLocked()
}

// armTimerLocked replaces any armed timer with a fresh one, so at most one
// timer goroutine is live per engine
func (e *Engine) armTimerLocked() {
	e.disarmTimerLocked()
	gen := e.timerGen
	stop := make(chan struct{})
	e.timerStop = stop
	ticker := e.clock.NewTicker(e.tickInterval)

	e.timerGoroutine.Go("session rest timer", func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				if !e.tickFrom(gen) {
					return
				}
			}
		}
	})
}

func (e *Engine) disarmTimerLocked() {
	if e.timerStop != nil {
		close(e.timerStop)
		e.timerStop = nil
	}
	e.timerGen++
}

func (e *Engine) changedLocked() outcome {
	e.version++
	return outcome{changed: true, state: e.snapshotLocked()}
}

func (e *Engine) snapshotLocked() State {
	return State{
		Version:              e.version,
		ExerciseIndex:        e.exerciseIndex,
		SetNumber:            e.setNumber,
		Phase:                e.phase,
		RemainingRestSeconds: e.remainingRest,
		TimerRunning:         e.timerRunning,
		CompletedSets:        e.logCopyLocked(),
		EnteredReps:          e.enteredReps,
		EnteredWeight:        e.enteredWeight,
		Closed:               e.closed,
	}
}

func (e *Engine) logCopyLocked() []workout.SetRecord {
	out := make([]workout.SetRecord, len(e.completedSets))
	copy(out, e.completedSets)
	return out
}

// deliver runs the callbacks owed by a transition. Never called with mu held.
func (e *Engine) deliver(o outcome) {
	if o.changed && e.onChange != nil {
		e.onChange(o.state)
	}
	if o.handOff && e.onComplete != nil {
		e.onComplete(o.completed)
	}
	if o.exited && e.onExit != nil {
		e.onExit()
	}
}
