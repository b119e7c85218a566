// Package config loads settings from an optional .env file, an optional
// config.yml and the environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"postboard/app/logging"
)

// Storage backends.
const (
	StorageBadger   = "badger"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env             string        `mapstructure:"APP_ENV"`
	Port            string        `mapstructure:"PORT"`
	Storage         string        `mapstructure:"STORAGE"`
	BadgerPath      string        `mapstructure:"BADGER_PATH"`
	BadgerInMemory  bool          `mapstructure:"BADGER_IN_MEMORY"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	SQLitePath      string        `mapstructure:"SQLITE_PATH"`
	BackupDir       string        `mapstructure:"BACKUP_DIR"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	MetricsEnabled  bool          `mapstructure:"METRICS_ENABLED"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"APP_ENV":          "development",
	"PORT":             "8080",
	"STORAGE":          StorageBadger,
	"BADGER_PATH":      "data/db",
	"BADGER_IN_MEMORY": false,
	"DATABASE_URL":     "",
	"SQLITE_PATH":      "data/postboard.db",
	"BACKUP_DIR":       "data/backups",
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "text",
	"METRICS_ENABLED":  true,
	"SHUTDOWN_TIMEOUT": "10s",
}

// Load reads configuration, looking for .env and config.yml in dir.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.Storage = strings.ToLower(cfg.Storage)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.Storage {
	case StorageBadger:
		if c.BadgerPath == "" && !c.BadgerInMemory {
			return errors.New("BADGER_PATH is required unless BADGER_IN_MEMORY is set")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres storage")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for sqlite storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if f := strings.ToLower(c.LogFormat); f != "json" && f != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
