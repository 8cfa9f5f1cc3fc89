// Package config loads service configuration from a YAML file with
// environment variable overrides. A local .env file is honored in
// development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Dispatch  DispatchConfig  `yaml:"dispatch"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"max_conns"`
	MinConns int32  `yaml:"min_conns"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DispatchConfig holds dispatch business-rule toggles.
type DispatchConfig struct {
	// AllowUncheckedAmend keeps the historical behavior where editing a
	// dispatch record does not re-validate against the lot's remaining
	// quantity (supervisor override). Set false to enforce the capacity
	// check on amends as well.
	AllowUncheckedAmend bool `yaml:"allow_unchecked_amend"`
}

// SchedulerConfig holds cron schedules for background jobs.
type SchedulerConfig struct {
	Enabled          bool   `yaml:"enabled"`
	DepletionSweep   string `yaml:"depletion_sweep"`   // default "30 2 * * *"
	WeeklySummaryLog string `yaml:"weekly_summary_log"` // default "0 7 * * 1"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConns: 25,
			MinConns: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
		Dispatch: DispatchConfig{
			AllowUncheckedAmend: true,
		},
		Scheduler: SchedulerConfig{
			Enabled:          true,
			DepletionSweep:   "30 2 * * *",
			WeeklySummaryLog: "0 7 * * 1",
		},
	}
}

// Load reads configuration from the given YAML path (optional) and
// applies environment overrides. A missing file is not an error; the
// environment alone can configure the service.
func Load(path string) (Config, error) {
	// Best-effort .env for local development.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Database.DSN == "" {
		return cfg, fmt.Errorf("database DSN is required (set DATABASE_URL or database.dsn)")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("APP_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Log.Development = v == "development"
	}
	if v := os.Getenv("ALLOW_UNCHECKED_AMEND"); v != "" {
		cfg.Dispatch.AllowUncheckedAmend = v == "true"
	}
	if v := os.Getenv("SCHEDULER_ENABLED"); v != "" {
		cfg.Scheduler.Enabled = v == "true"
	}
}
