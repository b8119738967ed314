package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/workout-planner/internal/storage"
	"github.com/lowaak/workout-planner/internal/workout"
)

// ProgressStore holds the log of finished sessions. Entries are only ever
// appended.
type ProgressStore struct {
	backend storage.Store
	logger  *log.Logger

	mu      sync.RWMutex
	entries []workout.ProgressEntry
}

func NewProgressStore(ctx context.Context, backend storage.Store, logger *log.Logger) *ProgressStore {
	if backend == nil {
		panic("ProgressStore: backend cannot be nil")
	}
	if logger == nil {
		panic("ProgressStore: logger cannot be nil")
	}
	s := &ProgressStore{backend: backend, logger: logger}
	s.Reload(ctx)
	return s
}

// Reload replaces the in-memory log with the saved one
func (s *ProgressStore) Reload(ctx context.Context) []workout.ProgressEntry {
	entries := storage.LoadJSON(ctx, s.backend, ProgressKey, s.logger, func() []workout.ProgressEntry {
		return []workout.ProgressEntry{}
	}, nil)
	if entries == nil {
		entries = []workout.ProgressEntry{}
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return s.Entries()
}

// Entries returns a copy of the log, oldest first
func (s *ProgressStore) Entries() []workout.ProgressEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]workout.ProgressEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Record appends a finished session for day. Duration is the workout's
// planned total, not the time the session took.
func (s *ProgressStore) Record(ctx context.Context, day workout.Day, w workout.Workout, sets []workout.SetRecord, now time.Time) (workout.ProgressEntry, error) {
	entry := workout.ProgressEntry{
		ID:          uuid.NewString(),
		Date:        now,
		Day:         day,
		WorkoutName: w.Name,
		Exercises:   append([]workout.SetRecord{}, sets...),
		Duration:    w.TotalDuration,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append(make([]workout.ProgressEntry, 0, len(s.entries)+1), s.entries...), entry)
	if err := storage.SaveJSON(ctx, s.backend, ProgressKey, next); err != nil {
		return workout.ProgressEntry{}, fmt.Errorf("progress: %w", err)
	}
	s.entries = next
	s.logger.Printf("ProgressStore: Recorded %s '%s' with %d sets", day, w.Name, len(sets))
	return entry, nil
}
