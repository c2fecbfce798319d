package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds the local user identity from <data-dir>/user.json.
// Created by `ascent init`; every other command reads it to resolve the
// current user.
type UserConfig struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`

	// UI settings
	Theme string `json:"theme,omitempty"`
}

// DefaultUserConfigPath returns the default path to <data-dir>/user.json.
func DefaultUserConfigPath(dataDir string) string {
	if dataDir == "" {
		dataDir = ".ascent"
	}
	return filepath.Join(dataDir, "user.json")
}

// LoadUserConfig loads the user identity file. A missing file returns an
// empty config, not an error; callers check UserID to decide whether init
// has run.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return cfg, nil
}

// Save writes the user identity file.
func (c *UserConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}
