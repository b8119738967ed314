package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/lowaak/workout-planner/internal/storage"
	"github.com/lowaak/workout-planner/internal/workout"
)

// SettingsStore holds the user settings
type SettingsStore struct {
	backend storage.Store
	logger  *log.Logger

	mu       sync.RWMutex
	settings workout.UserSettings
}

func NewSettingsStore(ctx context.Context, backend storage.Store, logger *log.Logger) *SettingsStore {
	if backend == nil {
		panic("SettingsStore: backend cannot be nil")
	}
	if logger == nil {
		panic("SettingsStore: logger cannot be nil")
	}
	s := &SettingsStore{backend: backend, logger: logger}
	s.Reload(ctx)
	return s
}

// Reload replaces the in-memory settings with the saved ones
func (s *SettingsStore) Reload(ctx context.Context) workout.UserSettings {
	settings := storage.LoadJSON(ctx, s.backend, SettingsKey, s.logger, workout.DefaultSettings, nil).Normalize()
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return cloneSettings(settings)
}

// Get returns a copy of the settings
func (s *SettingsStore) Get() workout.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.settings)
}

// Update applies fn to a copy of the settings, normalizes the result and
// saves it
func (s *SettingsStore) Update(ctx context.Context, fn func(*workout.UserSettings)) (workout.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSettings(s.settings)
	fn(&next)
	next = next.Normalize()
	if err := storage.SaveJSON(ctx, s.backend, SettingsKey, next); err != nil {
		return cloneSettings(s.settings), fmt.Errorf("settings: %w", err)
	}
	s.settings = next
	s.logger.Printf("SettingsStore: Saved %s, %d days, %d min", next.FitnessLevel, next.WorkoutDays, next.SessionDuration)
	return cloneSettings(next), nil
}

// ToggleMuscleGroup adds group to the preferred groups, or removes it if it
// is already there
func (s *SettingsStore) ToggleMuscleGroup(ctx context.Context, group string) (workout.UserSettings, error) {
	return s.Update(ctx, func(u *workout.UserSettings) {
		if u.HasMuscleGroup(group) {
			kept := u.PreferredMuscleGroups[:0]
			for _, g := range u.PreferredMuscleGroups {
				if g != group {
					kept = append(kept, g)
				}
			}
			u.PreferredMuscleGroups = kept
			return
		}
		u.PreferredMuscleGroups = append(u.PreferredMuscleGroups, group)
	})
}

func cloneSettings(u workout.UserSettings) workout.UserSettings {
	u.PreferredMuscleGroups = append([]string{}, u.PreferredMuscleGroups...)
	return u
}
