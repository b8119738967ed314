package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lowaak/workout-planner/internal/session"
	"github.com/lowaak/workout-planner/internal/workout"
)

func TestFormatRest(t *testing.T) {
	for seconds, want := range map[int]string{
		0:   "0:00",
		9:   "0:09",
		60:  "1:00",
		90:  "1:30",
		125: "2:05",
		-3:  "0:00",
	} {
		assert.Equal(t, want, formatRest(seconds), "%d seconds", seconds)
	}
}

func TestProgressBar(t *testing.T) {
	cells := func(bar string) (filled, empty int) {
		return strings.Count(bar, "█"), strings.Count(bar, "░")
	}

	filled, empty := cells(progressBar(50, 10))
	assert.Equal(t, 5, filled)
	assert.Equal(t, 5, empty)

	filled, empty = cells(progressBar(100, 10))
	assert.Equal(t, 10, filled)
	assert.Zero(t, empty)

	filled, empty = cells(progressBar(150, 10))
	assert.Equal(t, 10, filled)
	assert.Zero(t, empty)
}

func TestFormatDaySummary(t *testing.T) {
	plan := workout.DefaultPlan()

	assert.Contains(t, formatDaySummary(plan.Wednesday, false), "Rest day")
	summary := formatDaySummary(plan.Monday, true)
	assert.Contains(t, summary, "5 exercises")
	assert.Contains(t, summary, "45 min")
	assert.Contains(t, summary, "Completed")
	assert.NotContains(t, formatDaySummary(plan.Monday, false), "Completed")
}

func TestFormatSessionPanel(t *testing.T) {
	w := shortWorkout()

	resting := formatSessionPanel(SessionView{
		Active:  true,
		Workout: w,
		State: session.State{
			SetNumber:            2,
			Phase:                session.PhaseResting,
			RemainingRestSeconds: 75,
			CompletedSets:        []workout.SetRecord{{ExerciseName: "Push-ups", SetNumber: 1, Reps: "12", Weight: "bodyweight"}},
		},
	})
	assert.Contains(t, resting, "Push-ups")
	assert.Contains(t, resting, "2 of 2")
	assert.Contains(t, resting, "1:15")
	assert.Contains(t, resting, "PAUSED")
	assert.Contains(t, resting, "12 @ bodyweight")

	finished := formatSessionPanel(SessionView{
		Active:  true,
		Workout: w,
		State:   session.State{ExerciseIndex: len(w.Exercises), Phase: session.PhaseFinished},
		Saved:   true,
	})
	assert.Contains(t, finished, "Workout complete!")
	assert.Contains(t, finished, "Saved to progress")
}
