package main

import (
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/lowaak/workout-planner/internal/logging"
	"github.com/lowaak/workout-planner/internal/planner"
	"github.com/lowaak/workout-planner/internal/storage"
)

// Lines buffered for the log panel before the model drains them
const uiLogBuffer = 256

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE:  runUI,
	}
}

func runUI(cmd *cobra.Command, _ []string) error {
	uiWriter := logging.NewUIWriter(uiLogBuffer)
	a, err := openApp(cmd, uiWriter)
	if err != nil {
		return err
	}
	defer a.Close()

	model := planner.NewUIModel(a.logger, uiWriter.Lines())
	defer model.Shutdown()

	controller := planner.NewUIController(planner.NewUIControllerArg{
		UIModel:      model,
		Plans:        a.plans,
		Settings:     a.settings,
		Progress:     a.progress,
		Logger:       a.logger,
		TickInterval: a.cfg.Session.TickInterval,
	})
	defer controller.Shutdown()
	controller.Refresh()

	if w, ok := a.backend.(storage.Watcher); ok {
		if err := controller.WatchStorage(w); err != nil {
			a.logger.Printf("Not watching storage for changes: %v", err)
		}
	}

	tviewApp := tview.NewApplication()
	view := planner.NewBaseUIView(planner.NewBaseUIViewArg{
		UIViewImpl:   planner.NewCursesUIView(a.logger, tviewApp, model),
		UIModel:      model,
		UIController: controller,
		Logger:       a.logger,
	})
	defer view.Shutdown()

	a.logger.Println("Workout planner started")
	return view.Run()
}
