// Package report renders the plan, settings and progress log for the
// command line.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lowaak/workout-planner/internal/store"
	"github.com/lowaak/workout-planner/internal/workout"
)

// Renderer formats reports with styles matched to the output. Colors are
// dropped when the output is not a terminal.
type Renderer struct {
	header lipgloss.Style
	title  lipgloss.Style
	muted  lipgloss.Style
	done   lipgloss.Style
	border lipgloss.Style
}

func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		title:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("245")),
		done:   r.NewStyle().Foreground(lipgloss.Color("70")),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (r *Renderer) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// Plan renders the week as one row per day. completed marks days with a
// session logged today; it may be nil.
func (r *Renderer) Plan(plan workout.WeeklyPlan, today workout.Day, completed map[workout.Day]bool) string {
	t := r.table("Day", "Workout", "Group", "Exercises", "Sets", "Minutes", "")
	for _, day := range workout.AllDays {
		w, _ := plan.Workout(day)
		name := day.Title()
		if day == today {
			name += " *"
		}
		if w.IsRestDay() {
			t.Row(name, w.Name, w.MuscleGroup, "-", "-", "-", "")
			continue
		}
		status := ""
		if completed[day] {
			status = "done"
		}
		t.Row(name, w.Name, w.MuscleGroup, strconv.Itoa(len(w.Exercises)), strconv.Itoa(w.TotalSets()), strconv.Itoa(w.TotalDuration), status)
	}
	return r.title.Render("Weekly plan") + "\n" + t.Render() + "\n" + r.muted.Render("* today") + "\n"
}

// Workout renders one day's exercises
func (r *Renderer) Workout(day workout.Day, w workout.Workout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", r.title.Render(day.Title()+": "+w.Name), r.muted.Render(w.MuscleGroup))
	if w.IsRestDay() {
		b.WriteString("Rest day\n")
		return b.String()
	}
	t := r.table("#", "Exercise", "Sets", "Reps", "Rest", "Minutes")
	for i, ex := range w.Exercises {
		t.Row(strconv.Itoa(i+1), ex.Name, strconv.Itoa(ex.Sets), ex.Reps, fmt.Sprintf("%ds", ex.RestSeconds), strconv.Itoa(ex.Duration))
	}
	b.WriteString(t.Render())
	fmt.Fprintf(&b, "\n%s\n", r.muted.Render(fmt.Sprintf("%d sets, about %d min", w.TotalSets(), w.TotalDuration)))
	return b.String()
}

// Settings renders the user settings as a key/value list
func (r *Renderer) Settings(s workout.UserSettings) string {
	groups := strings.Join(s.PreferredMuscleGroups, ", ")
	if groups == "" {
		groups = r.muted.Render("none")
	}
	rows := [][2]string{
		{"Fitness level", string(s.FitnessLevel)},
		{"Workout days", fmt.Sprintf("%d per week", s.WorkoutDays)},
		{"Session length", fmt.Sprintf("%d min", s.SessionDuration)},
		{"Muscle groups", groups},
	}
	var b strings.Builder
	b.WriteString(r.title.Render("Settings") + "\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-16s %s\n", row[0], row[1])
	}
	return b.String()
}

// Progress renders the summary, this week's goal and the recent weeks
func (r *Renderer) Progress(summary store.ProgressSummary, week store.WeekStats, groups []store.WeekGroup) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Progress") + "\n")
	fmt.Fprintf(&b, "  %-16s %d\n", "Total workouts", summary.TotalWorkouts)
	fmt.Fprintf(&b, "  %-16s %dh\n", "Total time", summary.TotalHours())
	fmt.Fprintf(&b, "  %-16s %d min\n", "Average", summary.AverageMinutes)
	fmt.Fprintf(&b, "  %-16s %d / %d (%.0f%%), %d min\n", "This week", week.WorkoutsCompleted, week.WeeklyGoal, week.GoalPercent(), week.TotalMinutes)

	if len(groups) == 0 {
		b.WriteString("\n" + r.muted.Render("No workouts logged yet.") + "\n")
		return b.String()
	}
	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s\n", r.header.Render("Week of "+g.Start.Format("Jan 2, 2006")))
		t := r.table("Date", "Day", "Workout", "Sets", "Minutes")
		for _, e := range g.Entries {
			t.Row(e.Date.Local().Format("Mon Jan 2 15:04"), e.Day.Title(), e.WorkoutName, strconv.Itoa(len(e.Exercises)), strconv.Itoa(e.Duration))
		}
		b.WriteString(t.Render() + "\n")
	}
	return b.String()
}

// Done renders a short confirmation line
func (r *Renderer) Done(format string, args ...any) string {
	return r.done.Render(fmt.Sprintf(format, args...)) + "\n"
}
