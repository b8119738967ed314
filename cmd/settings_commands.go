package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lowaak/workout-planner/internal/report"
	"github.com/lowaak/workout-planner/internal/workout"
)

func newSettingsCmd() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change the user settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the settings",
		Args:  cobra.NoArgs,
		RunE:  withApp(runSettingsShow),
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change the given settings, leaving the rest as they are",
		Long: fmt.Sprintf("Change the given settings, leaving the rest as they are.\n"+
			"Workout days are kept within %d-%d and the session length within %d-%d minutes.",
			workout.MinWorkoutDays, workout.MaxWorkoutDays, workout.MinSessionDuration, workout.MaxSessionDuration),
		Args: cobra.NoArgs,
		RunE: withApp(runSettingsSet),
	}
	setCmd.Flags().String("level", "", "fitness level: beginner, intermediate or advanced")
	setCmd.Flags().Int("days", 0, "workout days per week")
	setCmd.Flags().Int("duration", 0, "session length in minutes")
	setCmd.Flags().StringSlice("muscle-groups", nil, "preferred muscle groups, comma separated: "+strings.Join(workout.MuscleGroups, ", "))

	toggleCmd := &cobra.Command{
		Use:       "toggle-group GROUP",
		Short:     "Add or remove a preferred muscle group",
		Args:      cobra.ExactArgs(1),
		ValidArgs: workout.MuscleGroups,
		RunE:      withApp(runSettingsToggleGroup),
	}

	settingsCmd.AddCommand(showCmd, setCmd, toggleCmd)
	return settingsCmd
}

func runSettingsShow(cmd *cobra.Command, a *app, _ []string) error {
	fmt.Fprint(cmd.OutOrStdout(), report.New(cmd.OutOrStdout()).Settings(a.settings.Get()))
	return nil
}

func runSettingsSet(cmd *cobra.Command, a *app, _ []string) error {
	flags := cmd.Flags()
	var changes []func(*workout.UserSettings)

	if flags.Changed("level") {
		name, _ := flags.GetString("level")
		level, err := workout.ParseFitnessLevel(strings.ToLower(name))
		if err != nil {
			return err
		}
		changes = append(changes, func(s *workout.UserSettings) { s.FitnessLevel = level })
	}
	if flags.Changed("days") {
		days, _ := flags.GetInt("days")
		changes = append(changes, func(s *workout.UserSettings) { s.WorkoutDays = days })
	}
	if flags.Changed("duration") {
		minutes, _ := flags.GetInt("duration")
		changes = append(changes, func(s *workout.UserSettings) { s.SessionDuration = minutes })
	}
	if flags.Changed("muscle-groups") {
		raw, _ := flags.GetStringSlice("muscle-groups")
		groups, err := parseMuscleGroups(raw)
		if err != nil {
			return err
		}
		changes = append(changes, func(s *workout.UserSettings) { s.PreferredMuscleGroups = groups })
	}
	if len(changes) == 0 {
		return fmt.Errorf("nothing to change, pass at least one of --level, --days, --duration, --muscle-groups")
	}

	updated, err := a.settings.Update(commandContext(cmd), func(s *workout.UserSettings) {
		for _, change := range changes {
			change(s)
		}
	})
	if err != nil {
		return err
	}
	r := report.New(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), r.Done("Settings saved"))
	fmt.Fprint(cmd.OutOrStdout(), r.Settings(updated))
	return nil
}

func runSettingsToggleGroup(cmd *cobra.Command, a *app, args []string) error {
	groups, err := parseMuscleGroups(args)
	if err != nil {
		return err
	}
	group := groups[0]
	updated, err := a.settings.ToggleMuscleGroup(commandContext(cmd), group)
	if err != nil {
		return err
	}
	state := "removed"
	if updated.HasMuscleGroup(group) {
		state = "added"
	}
	fmt.Fprint(cmd.OutOrStdout(), report.New(cmd.OutOrStdout()).Done("%s %s", titleCase(group), state))
	return nil
}

// parseMuscleGroups lowercases and de-duplicates the names, rejecting any
// group the settings don't offer
func parseMuscleGroups(raw []string) ([]string, error) {
	groups := []string{}
	for _, name := range raw {
		group := strings.ToLower(strings.TrimSpace(name))
		if group == "" {
			continue
		}
		if !slices.Contains(workout.MuscleGroups, group) {
			return nil, fmt.Errorf("unknown muscle group %q, expected one of %s", name, strings.Join(workout.MuscleGroups, ", "))
		}
		if !slices.Contains(groups, group) {
			groups = append(groups, group)
		}
	}
	if len(raw) > 0 && len(groups) == 0 {
		return nil, fmt.Errorf("no muscle group given")
	}
	return groups, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
