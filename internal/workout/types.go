package workout

import (
	"fmt"
	"time"
)

// Exercise is one entry of a workout: how many sets of how many reps, and
// how long to rest between sets
type Exercise struct {
	Name        string `json:"name" yaml:"name"`
	Sets        int    `json:"sets" yaml:"sets"`
	Reps        string `json:"reps" yaml:"reps"`                  // free-form target, e.g. "8-10" or "30s"
	RestSeconds int    `json:"restTime" yaml:"rest_seconds"`      // rest between sets of this exercise
	Duration    int    `json:"duration" yaml:"duration_minutes"` // estimated minutes for all sets
}

// Workout is the plan for one day. An empty exercise list is a rest day.
type Workout struct {
	Name          string     `json:"name" yaml:"name"`
	Exercises     []Exercise `json:"exercises" yaml:"exercises"`
	TotalDuration int        `json:"totalDuration" yaml:"total_duration_minutes"`
	MuscleGroup   string     `json:"muscleGroup" yaml:"muscle_group"`
}

// IsRestDay reports whether there is nothing to do on this day
func (w Workout) IsRestDay() bool {
	return len(w.Exercises) == 0
}

// TotalSets returns the number of sets across all exercises
func (w Workout) TotalSets() int {
	total := 0
	for _, ex := range w.Exercises {
		total += ex.Sets
	}
	return total
}

// Clone returns a deep copy so callers can't alias the exercise slice
func (w Workout) Clone() Workout {
	c := w
	if w.Exercises != nil {
		c.Exercises = make([]Exercise, len(w.Exercises))
		copy(c.Exercises, w.Exercises)
	}
	return c
}

// SetRecord is one completed set as logged during a session
type SetRecord struct {
	ExerciseName string `json:"exerciseName" yaml:"exercise_name"`
	SetNumber    int    `json:"set" yaml:"set"`
	Reps         string `json:"reps" yaml:"reps"`
	Weight       string `json:"weight" yaml:"weight"`
}

// BodyweightLabel is logged as the weight when none was entered
const BodyweightLabel = "bodyweight"

// FitnessLevel selects which exercise database a generated plan draws from
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// AllFitnessLevels lists the levels in display order
var AllFitnessLevels = []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseFitnessLevel returns the level named by s
func ParseFitnessLevel(s string) (FitnessLevel, error) {
	for _, level := range AllFitnessLevels {
		if string(level) == s {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown fitness level %q", s)
}

// UserSettings holds the user's preferences. Only FitnessLevel affects plan
// generation; WorkoutDays is the weekly goal shown with the stats.
type UserSettings struct {
	FitnessLevel          FitnessLevel `json:"fitnessLevel" yaml:"fitness_level"`
	WorkoutDays           int          `json:"workoutDays" yaml:"workout_days"`
	PreferredMuscleGroups []string     `json:"preferredMuscleGroups" yaml:"preferred_muscle_groups"`
	SessionDuration       int          `json:"sessionDuration" yaml:"session_duration_minutes"`
}

// Settings bounds, matching the ranges the settings form accepts
const (
	MinWorkoutDays     = 1
	MaxWorkoutDays     = 7
	MinSessionDuration = 15
	MaxSessionDuration = 180
)

// Normalize clamps out-of-range values and replaces an unknown fitness level
// with the intermediate default
func (s UserSettings) Normalize() UserSettings {
	if _, err := ParseFitnessLevel(string(s.FitnessLevel)); err != nil {
		s.FitnessLevel = LevelIntermediate
	}
	s.WorkoutDays = clamp(s.WorkoutDays, MinWorkoutDays, MaxWorkoutDays)
	s.SessionDuration = clamp(s.SessionDuration, MinSessionDuration, MaxSessionDuration)
	if s.PreferredMuscleGroups == nil {
		s.PreferredMuscleGroups = []string{}
	}
	return s
}

// HasMuscleGroup reports whether group is among the preferred groups
func (s UserSettings) HasMuscleGroup(group string) bool {
	for _, g := range s.PreferredMuscleGroups {
		if g == group {
			return true
		}
	}
	return false
}

// ProgressEntry is one finished session as stored in the progress log
type ProgressEntry struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Day         Day         `json:"day"`
	WorkoutName string      `json:"workoutName"`
	Exercises   []SetRecord `json:"exercises"`
	Duration    int         `json:"duration"` // minutes
}

// MuscleGroups lists the groups offered in settings
var MuscleGroups = []string{"chest", "back", "legs", "shoulders", "arms", "cardio"}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
