package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lowaak/workout-planner/internal/report"
	"github.com/lowaak/workout-planner/internal/store"
)

func newProgressCmd() *cobra.Command {
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the workout log",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show totals, this week's goal and the most recent weeks",
		Args:  cobra.NoArgs,
		RunE:  withApp(runProgressShow),
	}
	showCmd.Flags().Int("weeks", 4, "number of recent weeks to list")

	progressCmd.AddCommand(showCmd)
	return progressCmd
}

func runProgressShow(cmd *cobra.Command, a *app, _ []string) error {
	weeks, _ := cmd.Flags().GetInt("weeks")
	if weeks < 1 {
		return fmt.Errorf("--weeks must be at least 1, got %d", weeks)
	}
	now := time.Now()
	entries := a.progress.Entries()
	out := report.New(cmd.OutOrStdout()).Progress(
		store.Summary(entries, now),
		store.WeeklyStats(entries, now, a.settings.Get().WorkoutDays),
		store.WeeklyGroups(entries, weeks),
	)
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
