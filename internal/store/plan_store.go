package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/lowaak/workout-planner/internal/storage"
	"github.com/lowaak/workout-planner/internal/workout"
)

// PlanStore holds the weekly plan
type PlanStore struct {
	backend storage.Store
	logger  *log.Logger

	mu   sync.RWMutex
	plan workout.WeeklyPlan
}

// NewPlanStore loads the saved plan, or the default plan when there is none
// or it can't be read
func NewPlanStore(ctx context.Context, backend storage.Store, logger *log.Logger) *PlanStore {
	if backend == nil {
		panic("PlanStore: backend cannot be nil")
	}
	if logger == nil {
		panic("PlanStore: logger cannot be nil")
	}
	s := &PlanStore{backend: backend, logger: logger}
	s.Reload(ctx)
	return s
}

// Reload replaces the in-memory plan with the saved one
func (s *PlanStore) Reload(ctx context.Context) workout.WeeklyPlan {
	plan := storage.LoadJSON(ctx, s.backend, PlanKey, s.logger, workout.DefaultPlan, workout.WeeklyPlan.Validate)
	s.mu.Lock()
	s.plan = plan
	s.mu.Unlock()
	return plan.Clone()
}

// Get returns a copy of the plan
func (s *PlanStore) Get() workout.WeeklyPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.Clone()
}

// Workout returns the workout planned for day
func (s *PlanStore) Workout(day workout.Day) (workout.Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.Workout(day)
}

// Save replaces the whole plan
func (s *PlanStore) Save(ctx context.Context, plan workout.WeeklyPlan) error {
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}
	return s.update(ctx, func(p *workout.WeeklyPlan) (bool, error) {
		*p = plan.Clone()
		return true, nil
	})
}

// SetWorkout replaces the workout for one day
func (s *PlanStore) SetWorkout(ctx context.Context, day workout.Day, w workout.Workout) error {
	return s.update(ctx, func(p *workout.WeeklyPlan) (bool, error) {
		return true, p.SetWorkout(day, w)
	})
}

// AddExercise appends ex to the day's workout. An exercise without a name is
// ignored.
func (s *PlanStore) AddExercise(ctx context.Context, day workout.Day, ex workout.Exercise) error {
	if ex.Name == "" {
		s.logger.Printf("PlanStore: Ignoring exercise without a name for %s", day)
		return nil
	}
	return s.update(ctx, func(p *workout.WeeklyPlan) (bool, error) {
		w, ok := p.Workout(day)
		if !ok {
			return false, fmt.Errorf("unknown day %q", day)
		}
		w.Exercises = append(w.Exercises, ex)
		return true, p.SetWorkout(day, w)
	})
}

// RemoveExercise drops the exercise at index from the day's workout. An index
// out of range changes nothing.
func (s *PlanStore) RemoveExercise(ctx context.Context, day workout.Day, index int) error {
	return s.update(ctx, func(p *workout.WeeklyPlan) (bool, error) {
		w, ok := p.Workout(day)
		if !ok {
			return false, fmt.Errorf("unknown day %q", day)
		}
		if index < 0 || index >= len(w.Exercises) {
			s.logger.Printf("PlanStore: No exercise %d on %s", index, day)
			return false, nil
		}
		w.Exercises = append(w.Exercises[:index], w.Exercises[index+1:]...)
		return true, p.SetWorkout(day, w)
	})
}

// Generate replaces the plan with one generated for the settings' level
func (s *PlanStore) Generate(ctx context.Context, settings workout.UserSettings) (workout.WeeklyPlan, error) {
	plan := workout.GeneratePlan(settings.FitnessLevel)
	if err := s.Save(ctx, plan); err != nil {
		return workout.WeeklyPlan{}, err
	}
	s.logger.Printf("PlanStore: Generated %s plan", settings.FitnessLevel)
	return plan, nil
}

// update applies fn to a copy of the plan and, if fn reports a change, saves
// the copy and makes it current. A failed save leaves the current plan as is.
func (s *PlanStore) update(ctx context.Context, fn func(*workout.WeeklyPlan) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.plan.Clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		return err
	}
	if err := storage.SaveJSON(ctx, s.backend, PlanKey, next); err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	s.plan = next
	return nil
}
