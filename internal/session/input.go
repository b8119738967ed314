package session

import (
	"strconv"
	"strings"
)

// NormalizeReps returns the entered rep count, or "" when the text is not a
// non-negative whole number. "" means the target reps are logged instead.
func NormalizeReps(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// NormalizeWeight trims the entered weight. Weight is free text ("45lb",
// "20 kg"), so only blank input counts as not entered.
func NormalizeWeight(s string) string {
	return strings.TrimSpace(s)
}
