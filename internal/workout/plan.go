package workout

import (
	"fmt"
	"strings"
	"time"
)

// Day identifies a day of the weekly plan
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// AllDays lists the plan days in schedule order (Monday first)
var AllDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ShortName returns the three-letter label, e.g. "Mon"
func (d Day) ShortName() string {
	s := string(d)
	if len(s) < 3 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:3]
}

// Title returns the capitalized day name
func (d Day) Title() string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseDay accepts full or three-letter names in any case
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range AllDays {
		if s == string(d) || (len(s) == 3 && strings.HasPrefix(string(d), s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", s)
}

// DayOf maps a calendar time to its plan day
func DayOf(t time.Time) Day {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WeeklyPlan holds one workout per day of the week
type WeeklyPlan struct {
	Monday    Workout `json:"monday" yaml:"monday"`
	Tuesday   Workout `json:"tuesday" yaml:"tuesday"`
	Wednesday Workout `json:"wednesday" yaml:"wednesday"`
	Thursday  Workout `json:"thursday" yaml:"thursday"`
	Friday    Workout `json:"friday" yaml:"friday"`
	Saturday  Workout `json:"saturday" yaml:"saturday"`
	Sunday    Workout `json:"sunday" yaml:"sunday"`
}

func (p *WeeklyPlan) slot(day Day) *Workout {
	switch day {
	case Monday:
		return &p.Monday
	case Tuesday:
		return &p.Tuesday
	case Wednesday:
		return &p.Wednesday
	case Thursday:
		return &p.Thursday
	case Friday:
		return &p.Friday
	case Saturday:
		return &p.Saturday
	case Sunday:
		return &p.Sunday
	}
	return nil
}

// Workout returns a copy of the workout planned for day
func (p WeeklyPlan) Workout(day Day) (Workout, bool) {
	w := p.slot(day)
	if w == nil {
		return Workout{}, false
	}
	return w.Clone(), true
}

// SetWorkout replaces the workout for day
func (p *WeeklyPlan) SetWorkout(day Day, w Workout) error {
	s := p.slot(day)
	if s == nil {
		return fmt.Errorf("unknown day %q", day)
	}
	*s = w.Clone()
	return nil
}

// Clone returns a deep copy of the plan
func (p WeeklyPlan) Clone() WeeklyPlan {
	var c WeeklyPlan
	for _, day := range AllDays {
		w, _ := p.Workout(day)
		_ = c.SetWorkout(day, w)
	}
	return c
}

// Validate checks the plan has the shape the rest of the program expects:
// every day named and every exercise with at least one set
func (p WeeklyPlan) Validate() error {
	for _, day := range AllDays {
		w, _ := p.Workout(day)
		if w.Name == "" {
			return fmt.Errorf("%s: missing workout name", day)
		}
		for i, ex := range w.Exercises {
			if ex.Name == "" {
				return fmt.Errorf("%s: exercise %d has no name", day, i+1)
			}
			if ex.Sets < 1 {
				return fmt.Errorf("%s: exercise %q has %d sets", day, ex.Name, ex.Sets)
			}
			if ex.RestSeconds < 0 {
				return fmt.Errorf("%s: exercise %q has negative rest", day, ex.Name)
			}
		}
	}
	return nil
}

// SumDuration adds up the estimated minutes of the exercises
func SumDuration(exercises []Exercise) int {
	total := 0
	for _, ex := range exercises {
		total += ex.Duration
	}
	return total
}
