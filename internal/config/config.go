package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// WORKOUT_PLANNER_STORAGE_DRIVER
const EnvPrefix = "WORKOUT_PLANNER"

// Storage drivers
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	DataDir string        `mapstructure:"data_dir"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`

	// ConfigFile is the file that was read, empty when none was found
	ConfigFile string `mapstructure:"-"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type SessionConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"data-dir": "data_dir",
	"storage":  "storage.driver",
	"log-file": "log.file",
}

// BindFlags registers the configuration flags on fs
func BindFlags(flagSet *pflag.FlagSet) {
	flagSet.String("config", "", "config file (default <data-dir>/config.yaml)")
	flagSet.String("data-dir", "", "directory for saved plan, settings and progress (default ~/.workout-planner)")
	flagSet.String("storage", "", "storage driver: file, sqlite or memory (default file)")
	flagSet.String("log-file", "", "log file (default <data-dir>/workout-planner.log)")
}

// Load resolves the configuration from, in order of precedence, the flags in
// fs, WORKOUT_PLANNER_* environment variables, the config file and the
// defaults. flagSet may be nil.
func Load(flagSet *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	configFile := ""
	if flagSet != nil {
		for name, key := range flagKeys {
			if f := flagSet.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding --%s: %w", name, err)
				}
			}
		}
		if f := flagSet.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	cfg := &Config{}
	if configFile != "" {
		v.SetConfigFile(expandHome(configFile))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		cfg.ConfigFile = v.ConfigFileUsed()
	} else {
		implicit := filepath.Join(expandHome(v.GetString("data_dir")), "config.yaml")
		if _, err := os.Stat(implicit); err == nil {
			v.SetConfigFile(implicit)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			cfg.ConfigFile = implicit
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.resolvePaths()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("session.tick_interval", time.Second)
}

// resolvePaths expands ~ and fills the paths that default to the data dir
func (c *Config) resolvePaths() {
	c.DataDir = expandHome(c.DataDir)
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.DataDir, "planner.db")
	}
	c.Storage.SQLitePath = expandHome(c.Storage.SQLitePath)
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, "workout-planner.log")
	}
	c.Log.File = expandHome(c.Log.File)
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("storage.driver %q is not one of file, sqlite, memory", c.Storage.Driver)
	}
	if c.Session.TickInterval <= 0 {
		return fmt.Errorf("session.tick_interval must be positive, got %s", c.Session.TickInterval)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive")
	}
	return nil
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".workout-planner")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
