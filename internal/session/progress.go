package session

import "github.com/lowaak/workout-planner/internal/workout"

// Progress returns how far through the workout the state is, in percent.
//
// It is (exerciseIndex + setNumber/targetSets) / exercises * 100, clamped to
// [0, 100], and exactly 100 once finished. An exercise with no positive set
// target counts as a whole exercise.
func Progress(w workout.Workout, s State) float64 {
	total := len(w.Exercises)
	if s.Phase == PhaseFinished || total == 0 || s.ExerciseIndex >= total {
		return 100
	}

	current := 1.0
	if sets := w.Exercises[s.ExerciseIndex].Sets; sets > 0 {
		current = float64(s.SetNumber) / float64(sets)
	}

	pct := (float64(s.ExerciseIndex) + current) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
