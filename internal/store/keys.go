// Package store keeps the planner's three persisted documents (the weekly
// plan, the user settings and the progress log) in memory and writes each
// one back as a whole snapshot on every change.
package store

// Snapshot keys
const (
	PlanKey     = "workoutPlan"
	SettingsKey = "userSettings"
	ProgressKey = "workoutProgress"
)
