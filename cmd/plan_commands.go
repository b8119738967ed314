package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lowaak/workout-planner/internal/report"
	"github.com/lowaak/workout-planner/internal/store"
	"github.com/lowaak/workout-planner/internal/workout"
)

func newPlanCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Show and edit the weekly plan",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the week, or one day's exercises with --day",
		Args:  cobra.NoArgs,
		RunE:  withApp(runPlanShow),
	}
	showCmd.Flags().String("day", "", "show the exercises of one day (monday..sunday)")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Replace the plan with a generated one",
		Long:  "Replace the plan with one generated for the saved fitness level, or for --level.",
		Args:  cobra.NoArgs,
		RunE:  withApp(runPlanGenerate),
	}
	generateCmd.Flags().String("level", "", "fitness level: beginner, intermediate or advanced")

	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the plan to FILE (.json, otherwise YAML; - for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runPlanExport),
	}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the plan with the one in FILE",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runPlanImport),
	}

	template := workout.NewExerciseTemplate()
	addCmd := &cobra.Command{
		Use:   "add-exercise DAY",
		Short: "Append an exercise to a day",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runPlanAddExercise),
	}
	addCmd.Flags().String("name", "", "exercise name")
	addCmd.Flags().Int("sets", template.Sets, "number of sets")
	addCmd.Flags().String("reps", template.Reps, "target reps, e.g. 8-10 or 30s")
	addCmd.Flags().Int("rest", template.RestSeconds, "rest between sets in seconds")
	addCmd.Flags().Int("duration", template.Duration, "estimated minutes")
	_ = addCmd.MarkFlagRequired("name")

	removeCmd := &cobra.Command{
		Use:   "remove-exercise DAY NUMBER",
		Short: "Remove an exercise by its number in 'plan show --day'",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runPlanRemoveExercise),
	}

	planCmd.AddCommand(showCmd, generateCmd, exportCmd, importCmd, addCmd, removeCmd)
	return planCmd
}

func runPlanShow(cmd *cobra.Command, a *app, _ []string) error {
	r := report.New(cmd.OutOrStdout())
	dayName, _ := cmd.Flags().GetString("day")
	if dayName != "" {
		day, err := workout.ParseDay(dayName)
		if err != nil {
			return err
		}
		w, _ := a.plans.Workout(day)
		fmt.Fprint(cmd.OutOrStdout(), r.Workout(day, w))
		return nil
	}

	now := time.Now()
	entries := a.progress.Entries()
	completed := make(map[workout.Day]bool, len(workout.AllDays))
	for _, day := range workout.AllDays {
		completed[day] = store.CompletedOn(entries, day, now)
	}
	fmt.Fprint(cmd.OutOrStdout(), r.Plan(a.plans.Get(), workout.DayOf(now), completed))
	return nil
}

func runPlanGenerate(cmd *cobra.Command, a *app, _ []string) error {
	settings := a.settings.Get()
	if levelName, _ := cmd.Flags().GetString("level"); levelName != "" {
		level, err := workout.ParseFitnessLevel(strings.ToLower(levelName))
		if err != nil {
			return err
		}
		settings.FitnessLevel = level
	}
	plan, err := a.plans.Generate(commandContext(cmd), settings)
	if err != nil {
		return err
	}
	r := report.New(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), r.Done("Generated %s plan", settings.FitnessLevel))
	fmt.Fprint(cmd.OutOrStdout(), r.Plan(plan, workout.DayOf(time.Now()), nil))
	return nil
}

func runPlanExport(cmd *cobra.Command, a *app, args []string) error {
	path := args[0]
	format := workout.FormatForPath(path)
	raw, err := workout.EncodePlan(a.plans.Get(), format)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	a.logger.Printf("Exported plan to %s", path)
	fmt.Fprint(cmd.OutOrStdout(), report.New(cmd.OutOrStdout()).Done("Exported plan to %s", path))
	return nil
}

func runPlanImport(cmd *cobra.Command, a *app, args []string) error {
	path := args[0]
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading plan: %w", err)
	}
	plan, err := workout.DecodePlan(raw, workout.FormatForPath(path))
	if err != nil {
		return err
	}
	if err := a.plans.Save(commandContext(cmd), plan); err != nil {
		return err
	}
	a.logger.Printf("Imported plan from %s", path)
	fmt.Fprint(cmd.OutOrStdout(), report.New(cmd.OutOrStdout()).Done("Imported plan from %s", path))
	return nil
}

func runPlanAddExercise(cmd *cobra.Command, a *app, args []string) error {
	day, err := workout.ParseDay(args[0])
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	ex := workout.Exercise{}
	ex.Name, _ = flags.GetString("name")
	ex.Sets, _ = flags.GetInt("sets")
	ex.Reps, _ = flags.GetString("reps")
	ex.RestSeconds, _ = flags.GetInt("rest")
	ex.Duration, _ = flags.GetInt("duration")

	ex.Name = strings.TrimSpace(ex.Name)
	if ex.Name == "" {
		return fmt.Errorf("--name must not be empty")
	}
	if ex.Sets < 1 {
		return fmt.Errorf("--sets must be at least 1, got %d", ex.Sets)
	}
	if ex.RestSeconds < 0 {
		return fmt.Errorf("--rest must not be negative, got %d", ex.RestSeconds)
	}

	if err := a.plans.AddExercise(commandContext(cmd), day, ex); err != nil {
		return err
	}
	w, _ := a.plans.Workout(day)
	fmt.Fprint(cmd.OutOrStdout(), report.New(cmd.OutOrStdout()).Done("Added %s to %s (%s)", ex.Name, day.Title(), w.Name))
	return nil
}

func runPlanRemoveExercise(cmd *cobra.Command, a *app, args []string) error {
	day, err := workout.ParseDay(args[0])
	if err != nil {
		return err
	}
	number, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("exercise number %q is not a number", args[1])
	}
	w, _ := a.plans.Workout(day)
	if number < 1 || number > len(w.Exercises) {
		return fmt.Errorf("%s has no exercise %d", day.Title(), number)
	}
	name := w.Exercises[number-1].Name
	if err := a.plans.RemoveExercise(commandContext(cmd), day, number-1); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), report.New(cmd.OutOrStdout()).Done("Removed %s from %s", name, day.Title()))
	return nil
}
