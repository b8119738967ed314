package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/workout-planner/internal/workout"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.Local)
}

func entry(day workout.Day, date time.Time, minutes int) workout.ProgressEntry {
	return workout.ProgressEntry{Day: day, Date: date, Duration: minutes, WorkoutName: string(day)}
}

// 2026-10-14 is a Wednesday; its week starts Sunday 2026-10-11
var now = at(2026, 10, 14, 12)

func TestWeekStart(t *testing.T) {
	assert.Equal(t, at(2026, 10, 11, 0), WeekStart(now))
	assert.Equal(t, at(2026, 10, 11, 0), WeekStart(at(2026, 10, 11, 0)))
	assert.Equal(t, at(2026, 10, 11, 0), WeekStart(at(2026, 10, 17, 23)))
	// Crosses a month boundary
	assert.Equal(t, at(2026, 9, 27, 0), WeekStart(at(2026, 10, 1, 9)))
}

func TestWeeklyStats_OnlyCountsThisWeek(t *testing.T) {
	entries := []workout.ProgressEntry{
		entry(workout.Saturday, time.Date(2026, 10, 10, 23, 59, 59, 0, time.Local), 40),
		entry(workout.Sunday, at(2026, 10, 11, 0), 30),
		entry(workout.Monday, at(2026, 10, 12, 8), 45),
		entry(workout.Wednesday, at(2026, 10, 14, 7), 50),
	}

	stats := WeeklyStats(entries, now, 5)
	assert.Equal(t, WeekStats{WorkoutsCompleted: 3, TotalMinutes: 125, WeeklyGoal: 5}, stats)
	assert.InDelta(t, 60.0, stats.GoalPercent(), 1e-9)

	assert.Equal(t, 100.0, WeekStats{WorkoutsCompleted: 9, WeeklyGoal: 3}.GoalPercent())
	assert.Equal(t, 0.0, WeekStats{WorkoutsCompleted: 1}.GoalPercent())
}

func TestSummary(t *testing.T) {
	assert.Equal(t, ProgressSummary{}, Summary(nil, now))

	entries := []workout.ProgressEntry{
		entry(workout.Monday, at(2026, 9, 28, 8), 45),
		entry(workout.Tuesday, at(2026, 10, 6, 8), 50),
		entry(workout.Monday, at(2026, 10, 12, 8), 46),
	}
	s := Summary(entries, now)
	assert.Equal(t, 3, s.TotalWorkouts)
	assert.Equal(t, 141, s.TotalMinutes)
	assert.Equal(t, 47, s.AverageMinutes)
	assert.Equal(t, 1, s.ThisWeek)
	assert.Equal(t, 2, s.TotalHours())
}

func TestWeeklyGroups(t *testing.T) {
	entries := []workout.ProgressEntry{
		entry(workout.Monday, at(2026, 9, 7, 8), 45),
		entry(workout.Monday, at(2026, 9, 14, 8), 45),
		entry(workout.Tuesday, at(2026, 10, 13, 8), 50),
		entry(workout.Monday, at(2026, 9, 21, 8), 45),
		entry(workout.Thursday, at(2026, 9, 24, 8), 55),
		entry(workout.Monday, at(2026, 10, 12, 8), 45),
		entry(workout.Monday, at(2026, 9, 28, 8), 45),
	}

	groups := WeeklyGroups(entries, 4)
	require.Len(t, groups, 4)
	assert.Equal(t, at(2026, 10, 11, 0), groups[0].Start)
	assert.Equal(t, at(2026, 9, 27, 0), groups[1].Start)
	assert.Equal(t, at(2026, 9, 20, 0), groups[2].Start)
	assert.Equal(t, at(2026, 9, 13, 0), groups[3].Start)

	// Log order inside a week
	require.Len(t, groups[0].Entries, 2)
	assert.Equal(t, workout.Tuesday, groups[0].Entries[0].Day)
	assert.Equal(t, workout.Monday, groups[0].Entries[1].Day)
	assert.Len(t, groups[2].Entries, 2)

	assert.Len(t, WeeklyGroups(entries, 0), 5)
	assert.Empty(t, WeeklyGroups(nil, 4))
}

func TestCompletedOn(t *testing.T) {
	entries := []workout.ProgressEntry{
		entry(workout.Monday, at(2026, 10, 12, 8), 45),
		entry(workout.Wednesday, at(2026, 10, 14, 6), 50),
	}
	assert.True(t, CompletedOn(entries, workout.Wednesday, now))
	assert.False(t, CompletedOn(entries, workout.Monday, now), "recorded on another date")
	assert.False(t, CompletedOn(entries, workout.Thursday, now))
	assert.True(t, CompletedOn(entries, workout.Monday, at(2026, 10, 12, 23)))
}
