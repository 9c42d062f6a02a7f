// Package config loads vocabdrill settings from defaults, an optional
// YAML file, a .env file, VOCABDRILL_* environment variables and bound
// command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/store"
)

// EnvPrefix prefixes every environment variable read by the config.
const EnvPrefix = "VOCABDRILL"

// Config keys.
const (
	KeyDB                 = "db"
	KeyDriver             = "driver"
	KeyLogLevel           = "log_level"
	KeyLogFile            = "log_file"
	KeyUser               = "user"
	KeyCourse             = "course"
	KeyCount              = "count"
	KeySessionIdleTimeout = "session_idle_timeout"
)

// Config is the resolved configuration.
type Config struct {
	// DB is the SQLite file path or the PostgreSQL DSN.
	DB string `mapstructure:"db"`
	// Driver is "sqlite" or "postgres".
	Driver   string `mapstructure:"driver"`
	LogLevel string `mapstructure:"log_level"`
	// LogFile receives logs while the TUI owns the terminal.
	LogFile string `mapstructure:"log_file"`
	User    string `mapstructure:"user"`
	Course  string `mapstructure:"course"`
	// Count is the default session length.
	Count              int           `mapstructure:"count"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyDriver, store.DriverSQLite)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyUser, defaultUser())
	v.SetDefault(KeyCourse, "")
	v.SetDefault(KeyCount, session.DefaultCount)
	v.SetDefault(KeySessionIdleTimeout, session.DefaultIdleTimeout)
}

// Load resolves the configuration into v and returns it. configFile may
// be empty, in which case config.yaml in Dir() is read when present.
// dotenv names a .env file to load into the environment; a missing file
// is ignored.
func Load(v *viper.Viper, configFile, dotenv string) (*Config, error) {
	if err := loadDotEnv(dotenv); err != nil {
		return nil, err
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks values and fills in derived defaults.
func (c *Config) Validate() error {
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	switch c.Driver {
	case store.DriverSQLite:
		if c.DB == "" {
			p, err := store.DefaultDBPath()
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}
			c.DB = p
		}
	case store.DriverPostgres:
		if c.DB == "" {
			return errors.New("config: postgres driver requires a db connection string")
		}
	default:
		return fmt.Errorf("config: unsupported driver %q", c.Driver)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Count < 1 {
		return fmt.Errorf("config: count must be at least 1, got %d", c.Count)
	}
	if c.SessionIdleTimeout <= 0 {
		c.SessionIdleTimeout = session.DefaultIdleTimeout
	}
	if c.LogFile == "" {
		dir, err := store.DataDir()
		if err == nil {
			c.LogFile = filepath.Join(dir, "vocabdrill.log")
		}
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty
// means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
	}
}

// Dir returns the configuration directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "vocabdrill"), nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func defaultUser() string {
	for _, k := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(k); u != "" {
			return u
		}
	}
	return "learner"
}
