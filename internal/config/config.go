// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the CLI configuration, loadable from a JSON file. All fields are
// optional; environment variables override file values.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Actor       string `json:"actor,omitempty"`        // Name recorded on audit-trail events
	LogJSON     bool   `json:"log_json,omitempty"`     // Emit JSON logs instead of console
	Debug       bool   `json:"debug,omitempty"`        // Enable debug-level logging
}

// Load reads configuration from a JSON file, then applies environment
// overrides. An empty path skips the file and uses environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("ATS_ACTOR"); v != "" {
		c.Actor = v
	}
	if os.Getenv("ATS_LOG_JSON") == "true" {
		c.LogJSON = true
	}
	if os.Getenv("ATS_DEBUG") == "true" {
		c.Debug = true
	}
}

// Validate checks that required values are present for commands that touch
// the database.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required (set DATABASE_URL or the config file)")
	}
	return nil
}
