package planner

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lowaak/workout-planner/internal/session"
	"github.com/lowaak/workout-planner/internal/storage"
	"github.com/lowaak/workout-planner/internal/store"
	"github.com/lowaak/workout-planner/internal/workout"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// Monday, 4 March 2024
var testNow = time.Date(2024, time.March, 4, 18, 0, 0, 0, time.Local)

// manualClock hands out tickers that only tick when the test fires them
type manualClock struct {
	mu      sync.Mutex
	tickers []chan time.Time
}

type manualTicker struct {
	ch chan time.Time
}

func (t manualTicker) C() <-chan time.Time { return t.ch }
func (t manualTicker) Stop()               {}

func (c *manualClock) NewTicker(time.Duration) session.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time)
	c.tickers = append(c.tickers, ch)
	return manualTicker{ch: ch}
}

// fire delivers one tick to the most recently armed ticker
func (c *manualClock) fire(t *testing.T) {
	t.Helper()
	c.mu.Lock()
	require.NotEmpty(t, c.tickers, "no ticker armed")
	ch := c.tickers[len(c.tickers)-1]
	c.mu.Unlock()

	select {
	case ch <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("timer goroutine did not take the tick")
	}
}

// switchableStore fails every Save while failing is set
type switchableStore struct {
	*storage.MemoryStore
	mu      sync.Mutex
	failing bool
}

func (s *switchableStore) setFailing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = v
}

func (s *switchableStore) Save(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	failing := s.failing
	s.mu.Unlock()
	if failing {
		return errors.New("disk full")
	}
	return s.MemoryStore.Save(ctx, key, value)
}

type fixture struct {
	model      *UIModel
	controller *UIController
	plans      *store.PlanStore
	settings   *store.SettingsStore
	progress   *store.ProgressStore
	backend    *switchableStore
	clock      *manualClock
}

func shortWorkout() workout.Workout {
	return workout.Workout{
		Name: "Quick Upper",
		Exercises: []workout.Exercise{
			{Name: "Push-ups", Sets: 2, Reps: "10", RestSeconds: 30, Duration: 3},
			{Name: "Plank", Sets: 1, Reps: "30s", RestSeconds: 0, Duration: 1},
		},
		TotalDuration: 4,
		MuscleGroup:   "chest",
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := testLogger()

	backend := &switchableStore{MemoryStore: storage.NewMemoryStore()}
	plans := store.NewPlanStore(ctx, backend, logger)
	require.NoError(t, plans.SetWorkout(ctx, workout.Monday, shortWorkout()))

	f := &fixture{
		model:    NewUIModel(logger, make(chan string)),
		plans:    plans,
		settings: store.NewSettingsStore(ctx, backend, logger),
		progress: store.NewProgressStore(ctx, backend, logger),
		backend:  backend,
		clock:    &manualClock{},
	}
	f.controller = NewUIController(NewUIControllerArg{
		UIModel:        f.model,
		Plans:          f.plans,
		Settings:       f.settings,
		Progress:       f.progress,
		Logger:         logger,
		Now:            func() time.Time { return testNow },
		SessionOptions: []session.Option{session.WithClock(f.clock)},
	})
	t.Cleanup(func() {
		f.controller.Shutdown()
		f.model.Shutdown()
	})
	f.controller.Refresh()
	return f
}

func TestNewUIController_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewUIController(NewUIControllerArg{}) })
}

func TestUIController_Refresh(t *testing.T) {
	f := newFixture(t)

	schedule := f.model.GetSchedule()
	assert.Equal(t, workout.Monday, schedule.Today)
	assert.Equal(t, "Quick Upper", schedule.Plan.Monday.Name)
	assert.False(t, schedule.CompletedToday[workout.Monday])
	assert.Equal(t, workout.DefaultSettings().WorkoutDays, schedule.Week.WeeklyGoal)
	assert.Equal(t, workout.DefaultSettings(), f.model.GetSettings())
	assert.Zero(t, f.model.GetProgress().Summary.TotalWorkouts)
}

func TestUIController_FullSessionRecordsProgressOnce(t *testing.T) {
	f := newFixture(t)
	c := f.controller

	c.StartDay(workout.Monday)
	assert.Equal(t, UIModeSession, f.model.GetUIState().Mode)
	view := f.model.GetSession()
	require.True(t, view.Active)
	assert.Equal(t, workout.Monday, view.Day)
	assert.Equal(t, 1, view.State.SetNumber)
	assert.Equal(t, []workout.Exercise{shortWorkout().Exercises[1]}, view.Upcoming)

	c.CompleteSet("12", "20kg")
	view = f.model.GetSession()
	assert.Equal(t, session.PhaseResting, view.State.Phase)
	assert.Equal(t, 30, view.State.RemainingRestSeconds)
	assert.InDelta(t, 50.0, view.Progress, 0.001)

	f.clock.fire(t)
	require.Eventually(t, func() bool {
		return f.model.GetSession().State.RemainingRestSeconds == 29
	}, time.Second, 5*time.Millisecond)

	c.SkipRest()
	assert.Equal(t, session.PhaseWorking, f.model.GetSession().State.Phase)

	c.CompleteSet("", "")
	view = f.model.GetSession()
	assert.Equal(t, 1, view.State.ExerciseIndex)
	assert.Equal(t, session.PhaseWorking, view.State.Phase, "no rest between exercises")
	assert.Empty(t, view.Upcoming)

	c.CompleteSet("", "")
	view = f.model.GetSession()
	assert.Equal(t, session.PhaseFinished, view.State.Phase)
	assert.Equal(t, 100.0, view.Progress)
	assert.True(t, view.Saved)

	entries := f.progress.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, workout.Monday, entries[0].Day)
	assert.Equal(t, "Quick Upper", entries[0].WorkoutName)
	assert.Equal(t, 4, entries[0].Duration)
	assert.Equal(t, []workout.SetRecord{
		{ExerciseName: "Push-ups", SetNumber: 1, Reps: "12", Weight: "20kg"},
		{ExerciseName: "Push-ups", SetNumber: 2, Reps: "10", Weight: workout.BodyweightLabel},
		{ExerciseName: "Plank", SetNumber: 1, Reps: "30s", Weight: workout.BodyweightLabel},
	}, entries[0].Exercises)
	assert.True(t, f.model.GetSchedule().CompletedToday[workout.Monday])
	assert.Equal(t, 1, f.model.GetProgress().Summary.TotalWorkouts)

	c.FinishSession()
	assert.Len(t, f.progress.Entries(), 1, "finishing hands the log off again but records once")
	assert.Equal(t, UIModeSchedule, f.model.GetUIState().Mode)
	assert.False(t, f.model.GetSession().Active)
}

func TestUIController_RestDayCannotStart(t *testing.T) {
	f := newFixture(t)

	f.controller.StartDay(workout.Wednesday)
	assert.Equal(t, UIModeSchedule, f.model.GetUIState().Mode)
	assert.False(t, f.model.GetSession().Active)
}

func TestUIController_SecondStartIsRejected(t *testing.T) {
	f := newFixture(t)

	f.controller.StartDay(workout.Monday)
	first := f.model.GetSession().SessionID
	f.controller.StartDay(workout.Tuesday)
	view := f.model.GetSession()
	assert.Equal(t, first, view.SessionID)
	assert.Equal(t, workout.Monday, view.Day)
}

func TestUIController_ExitSessionSavesNothing(t *testing.T) {
	f := newFixture(t)

	f.controller.StartDay(workout.Monday)
	f.controller.CompleteSet("10", "")
	f.controller.ExitSession()

	assert.Empty(t, f.progress.Entries())
	assert.False(t, f.model.GetSession().Active)
	assert.Equal(t, UIModeSchedule, f.model.GetUIState().Mode)

	// Commands without a session are ignored
	f.controller.CompleteSet("", "")
	f.controller.SkipRest()
	assert.Empty(t, f.progress.Entries())
}

func TestUIController_FinishBeforeDoneIsIgnored(t *testing.T) {
	f := newFixture(t)

	f.controller.StartDay(workout.Monday)
	f.controller.FinishSession()

	assert.True(t, f.model.GetSession().Active)
	assert.Equal(t, UIModeSession, f.model.GetUIState().Mode)
	assert.Empty(t, f.progress.Entries())
}

func TestUIController_FailedSaveIsRetriedOnFinish(t *testing.T) {
	f := newFixture(t)
	c := f.controller

	c.StartDay(workout.Monday)
	c.SkipExercise()
	f.backend.setFailing(true)
	c.CompleteSet("", "")
	require.Equal(t, session.PhaseFinished, f.model.GetSession().State.Phase)
	assert.False(t, f.model.GetSession().Saved)

	c.FinishSession()
	assert.True(t, f.model.GetSession().Active, "unsaved session stays open")

	f.backend.setFailing(false)
	c.FinishSession()
	assert.False(t, f.model.GetSession().Active)
	entries := f.progress.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []workout.SetRecord{
		{ExerciseName: "Plank", SetNumber: 1, Reps: "30s", Weight: workout.BodyweightLabel},
	}, entries[0].Exercises)
}

func TestUIController_ModeChangeBlockedDuringSession(t *testing.T) {
	f := newFixture(t)

	f.controller.OnModeChange(UIModeSession)
	assert.Equal(t, UIModeSchedule, f.model.GetUIState().Mode, "session page needs a workout")

	f.controller.OnModeChange(UIModeProgress)
	assert.Equal(t, UIModeProgress, f.model.GetUIState().Mode)

	f.controller.StartDay(workout.Monday)
	f.controller.OnModeChange(UIModeSettings)
	assert.Equal(t, UIModeSession, f.model.GetUIState().Mode)
}

func TestUIController_InputsMirrorIntoSession(t *testing.T) {
	f := newFixture(t)

	f.controller.EnterReps("8")
	f.controller.StartDay(workout.Monday)
	f.controller.EnterReps("8")
	f.controller.EnterWeight("15 kg")

	state := f.model.GetSession().State
	assert.Equal(t, "8", state.EnteredReps)
	assert.Equal(t, "15 kg", state.EnteredWeight)

	f.controller.CompleteSet("", "")
	entries := f.model.GetSession().State.CompletedSets
	require.Len(t, entries, 1)
	assert.Equal(t, "8", entries[0].Reps)
	assert.Equal(t, "15 kg", entries[0].Weight)
}

func TestUIController_OnEscapeKeyExitsSessionAndCloses(t *testing.T) {
	f := newFixture(t)
	closeChan := make(chan struct{}, 1)
	unregister := f.model.ListenToCloseApplication(closeChan)
	defer unregister()

	f.controller.StartDay(workout.Monday)
	f.controller.OnEscapeKey()

	select {
	case <-closeChan:
	case <-time.After(time.Second):
		t.Fatal("close was not requested")
	}
	assert.False(t, f.model.GetSession().Active)
	assert.Empty(t, f.progress.Entries())
}

func TestUIController_SaveSettingsAndGeneratePlan(t *testing.T) {
	f := newFixture(t)

	f.controller.SaveSettings(workout.UserSettings{
		FitnessLevel:          workout.LevelAdvanced,
		WorkoutDays:           9,
		PreferredMuscleGroups: []string{"legs"},
		SessionDuration:       60,
	})
	settings := f.model.GetSettings()
	assert.Equal(t, workout.LevelAdvanced, settings.FitnessLevel)
	assert.Equal(t, workout.MaxWorkoutDays, settings.WorkoutDays)
	assert.Equal(t, workout.MaxWorkoutDays, f.model.GetSchedule().Week.WeeklyGoal)

	f.controller.GeneratePlan()
	assert.Equal(t, workout.GeneratePlan(workout.LevelAdvanced), f.model.GetSchedule().Plan)
	assert.Equal(t, workout.GeneratePlan(workout.LevelAdvanced), f.plans.Get())
}

func TestUIController_SaveSettingsFailureKeepsOldSettings(t *testing.T) {
	f := newFixture(t)
	f.backend.setFailing(true)

	f.controller.SaveSettings(workout.UserSettings{FitnessLevel: workout.LevelBeginner, WorkoutDays: 2, SessionDuration: 30})
	assert.Equal(t, workout.DefaultSettings(), f.model.GetSettings())
}

func TestUIController_ReloadKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plan := workout.GeneratePlan(workout.LevelBeginner)
	require.NoError(t, storage.SaveJSON(ctx, f.backend, store.PlanKey, plan))
	f.controller.ReloadKey(store.PlanKey)
	assert.Equal(t, plan, f.model.GetSchedule().Plan)

	entries := []workout.ProgressEntry{{ID: "a", Date: testNow, Day: workout.Monday, WorkoutName: "Legs", Duration: 50}}
	require.NoError(t, storage.SaveJSON(ctx, f.backend, store.ProgressKey, entries))
	f.controller.ReloadKey(store.ProgressKey)
	assert.Equal(t, 1, f.model.GetProgress().Summary.TotalWorkouts)
	assert.Equal(t, 50, f.model.GetSchedule().Week.TotalMinutes)
	assert.True(t, f.model.GetSchedule().CompletedToday[workout.Monday])

	f.controller.ReloadKey("unknown")
}

func TestUpcoming(t *testing.T) {
	w := workout.DefaultPlan().Monday
	assert.Equal(t, w.Exercises[1:4], upcoming(w, 0, 3))
	assert.Equal(t, w.Exercises[4:], upcoming(w, 3, 3))
	assert.Empty(t, upcoming(w, 4, 3))
	assert.Empty(t, upcoming(w, len(w.Exercises), 3))
}
