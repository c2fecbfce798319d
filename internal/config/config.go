package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Ascent configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Data directory for tables, session database and logs
	Data DataConfig `yaml:"data"`

	// Progression engine tuning
	Growth GrowthConfig `yaml:"growth"`

	// Session history
	Session SessionConfig `yaml:"session"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig configures where Ascent keeps its state.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// GrowthConfig configures the progression engine.
type GrowthConfig struct {
	// XP awarded to each known domain per logged activity
	XPPerActivity int `yaml:"xp_per_activity"`

	// How many recent activities a profile carries
	RecentActivityCount int `yaml:"recent_activity_count"`

	// How many personalized challenges to generate
	ChallengeCount int `yaml:"challenge_count"`
}

// SessionConfig configures the session history database.
type SessionConfig struct {
	DatabasePath string `yaml:"database_path"`
	HistoryLimit int    `yaml:"history_limit"`
	IdleTimeout  string `yaml:"idle_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "Ascent",
		Version: "1.0.0",

		Data: DataConfig{
			Dir: ".ascent",
		},

		Growth: GrowthConfig{
			XPPerActivity:       10,
			RecentActivityCount: 10,
			ChallengeCount:      3,
		},

		Session: SessionConfig{
			DatabasePath: ".ascent/sessions.db",
			HistoryLimit: 20,
			IdleTimeout:  "24h",
		},

		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("ASCENT_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
	if path := os.Getenv("ASCENT_SESSION_DB"); path != "" {
		c.Session.DatabasePath = path
	}
	if level := os.Getenv("ASCENT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	switch os.Getenv("ASCENT_DEBUG") {
	case "1", "true":
		c.Logging.DebugMode = true
	case "0", "false":
		c.Logging.DebugMode = false
	}
}

// GetIdleTimeout returns the session idle timeout as a duration.
func (c *Config) GetIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Session.IdleTimeout)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetXPPerActivity returns the XP award with the default applied.
func (c *Config) GetXPPerActivity() int {
	if c.Growth.XPPerActivity <= 0 {
		return 10
	}
	return c.Growth.XPPerActivity
}

// GetRecentActivityCount returns the profile activity window with the
// default applied.
func (c *Config) GetRecentActivityCount() int {
	if c.Growth.RecentActivityCount <= 0 {
		return 10
	}
	return c.Growth.RecentActivityCount
}

// GetChallengeCount returns the challenge count with the default applied.
func (c *Config) GetChallengeCount() int {
	if c.Growth.ChallengeCount <= 0 {
		return 3
	}
	return c.Growth.ChallengeCount
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data directory not configured")
	}
	if c.Growth.XPPerActivity < 0 {
		return fmt.Errorf("xp_per_activity must not be negative")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
