package store

import (
	"math"
	"sort"
	"time"

	"github.com/lowaak/workout-planner/internal/workout"
)

// WeekStart returns Sunday 00:00 of the week containing t, in t's location
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}

// WeekStats is the header summary of the current week
type WeekStats struct {
	WorkoutsCompleted int
	TotalMinutes      int
	WeeklyGoal        int
}

// GoalPercent is the share of the weekly goal reached, capped at 100
func (w WeekStats) GoalPercent() float64 {
	if w.WeeklyGoal <= 0 {
		return 0
	}
	return math.Min(100, float64(w.WorkoutsCompleted)/float64(w.WeeklyGoal)*100)
}

// WeeklyStats counts the entries dated since the start of now's week
func WeeklyStats(entries []workout.ProgressEntry, now time.Time, goal int) WeekStats {
	stats := WeekStats{WeeklyGoal: goal}
	for _, e := range thisWeek(entries, now) {
		stats.WorkoutsCompleted++
		stats.TotalMinutes += e.Duration
	}
	return stats
}

// ProgressSummary is the all-time overview shown on the progress page
type ProgressSummary struct {
	TotalWorkouts  int
	TotalMinutes   int
	AverageMinutes int
	ThisWeek       int
}

// TotalHours rounds the total minutes to whole hours
func (p ProgressSummary) TotalHours() int {
	return int(math.Round(float64(p.TotalMinutes) / 60))
}

func Summary(entries []workout.ProgressEntry, now time.Time) ProgressSummary {
	s := ProgressSummary{TotalWorkouts: len(entries)}
	for _, e := range entries {
		s.TotalMinutes += e.Duration
	}
	if s.TotalWorkouts > 0 {
		s.AverageMinutes = int(math.Round(float64(s.TotalMinutes) / float64(s.TotalWorkouts)))
	}
	s.ThisWeek = len(thisWeek(entries, now))
	return s
}

// WeekGroup is the entries of one week
type WeekGroup struct {
	Start   time.Time
	Entries []workout.ProgressEntry
}

// WeeklyGroups groups entries by local week, newest week first, keeping at
// most limit weeks. limit <= 0 keeps all of them. Entries keep their log
// order inside a week.
func WeeklyGroups(entries []workout.ProgressEntry, limit int) []WeekGroup {
	byStart := make(map[int64]*WeekGroup)
	var groups []*WeekGroup
	for _, e := range entries {
		start := WeekStart(e.Date.Local())
		g, ok := byStart[start.Unix()]
		if !ok {
			g = &WeekGroup{Start: start}
			byStart[start.Unix()] = g
			groups = append(groups, g)
		}
		g.Entries = append(g.Entries, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Start.After(groups[j].Start)
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	out := make([]WeekGroup, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	return out
}

// CompletedOn reports whether a session for day was recorded on now's
// calendar date
func CompletedOn(entries []workout.ProgressEntry, day workout.Day, now time.Time) bool {
	y, m, d := now.Date()
	for _, e := range entries {
		if e.Day != day {
			continue
		}
		ey, em, ed := e.Date.In(now.Location()).Date()
		if ey == y && em == m && ed == d {
			return true
		}
	}
	return false
}

func thisWeek(entries []workout.ProgressEntry, now time.Time) []workout.ProgressEntry {
	start := WeekStart(now)
	var out []workout.ProgressEntry
	for _, e := range entries {
		if !e.Date.Before(start) {
			out = append(out, e)
		}
	}
	return out
}
