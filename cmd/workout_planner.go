package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lowaak/workout-planner/internal/config"
	"github.com/lowaak/workout-planner/internal/logging"
	"github.com/lowaak/workout-planner/internal/storage"
	"github.com/lowaak/workout-planner/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "workout-planner",
		Short:         "Plan a training week and log workout sessions",
		Long:          "Plan a training week and log workout sessions.\nRun without a command to open the terminal UI.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runUI,
	}
	config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newProgressCmd())
	return rootCmd
}

// app holds what every command needs: the resolved config, the logger and
// the three stores on top of the configured backend
type app struct {
	cfg       *config.Config
	logger    *log.Logger
	logCloser io.Closer
	backend   storage.Store
	plans     *store.PlanStore
	settings  *store.SettingsStore
	progress  *store.ProgressStore
}

// openApp loads the config from the command's flags, opens the log and the
// storage backend and loads the stores. Log lines also go to every writer
// in logSinks.
func openApp(cmd *cobra.Command, logSinks ...io.Writer) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(logging.Options{
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}, logSinks...)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	if cfg.ConfigFile != "" {
		logger.Printf("Using config file %s", cfg.ConfigFile)
	}

	backend, err := openBackend(cfg, logger)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	logger.Printf("Storage: %s", cfg.Storage.Driver)

	ctx := commandContext(cmd)
	return &app{
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		backend:   backend,
		plans:     store.NewPlanStore(ctx, backend, logger),
		settings:  store.NewSettingsStore(ctx, backend, logger),
		progress:  store.NewProgressStore(ctx, backend, logger),
	}, nil
}

func openBackend(cfg *config.Config, logger *log.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		s, err := storage.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil
	case config.DriverMemory:
		return storage.NewMemoryStore(), nil
	default:
		s, err := storage.NewFileStore(cfg.DataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		return s, nil
	}
}

// Close releases the backend and the log file
func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Printf("Failed to close storage: %v", err)
	}
	a.logCloser.Close()
}

// withApp wraps a command body with openApp and Close
func withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
