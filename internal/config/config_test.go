package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(flags(t))
	require.NoError(t, err)

	dataDir := filepath.Join(home, ".workout-planner")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(dataDir, "planner.db"), cfg.Storage.SQLitePath)
	assert.Equal(t, filepath.Join(dataDir, "workout-planner.log"), cfg.Log.File)
	assert.Equal(t, LogConfig{File: cfg.Log.File, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28}, cfg.Log)
	assert.Equal(t, time.Second, cfg.Session.TickInterval)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_Precedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dataDir := filepath.Join(home, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(
		"storage:\n  driver: sqlite\n  sqlite_path: ~/db/plans.db\nsession:\n  tick_interval: 500ms\nlog:\n  max_backups: 7\n"), 0o644))

	t.Setenv("WORKOUT_PLANNER_DATA_DIR", dataDir)
	t.Setenv("WORKOUT_PLANNER_LOG_MAX_BACKUPS", "9")

	cfg, err := Load(flags(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yaml"), cfg.ConfigFile)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(home, "db", "plans.db"), cfg.Storage.SQLitePath)
	assert.Equal(t, 500*time.Millisecond, cfg.Session.TickInterval)
	assert.Equal(t, 9, cfg.Log.MaxBackups, "env beats the config file")

	cfg, err = Load(flags(t, "--storage", "memory", "--log-file", "/tmp/planner.log"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver, "flag beats the config file")
	assert.Equal(t, "/tmp/planner.log", cfg.Log.File)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/planner\n"), 0o644))

	cfg, err := Load(flags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "/srv/planner", cfg.DataDir)
	assert.Equal(t, "/srv/planner/planner.db", cfg.Storage.SQLitePath)

	_, err = Load(flags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(flags(t, "--storage", "postgres"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")

	t.Setenv("WORKOUT_PLANNER_SESSION_TICK_INTERVAL", "0s")
	_, err = Load(flags(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick_interval")
}

func TestLoad_NilFlagSet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
}
