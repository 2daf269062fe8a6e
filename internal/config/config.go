package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Values come from the
// defaults, then the optional YAML file, then RESPITE_* environment
// variables, each layer overriding the previous one.
type Config struct {
	DataDir       string `yaml:"data_dir"`       // where state files and the history db live
	QuoteURL      string `yaml:"quote_url"`      // endpoint returning {"quote": ...}
	SnoozeMinutes int    `yaml:"snooze_minutes"` // default snooze applied from the dashboard
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		DataDir:       filepath.Join(home, ".respite"),
		QuoteURL:      "https://dummyjson.com/quotes/random",
		SnoozeMinutes: 5,
	}
}

// TestConfig returns a configuration rooted in a test directory.
func TestConfig(testDir string) *Config {
	return &Config{
		DataDir:       testDir,
		QuoteURL:      "",
		SnoozeMinutes: 5,
	}
}

// Load builds the effective configuration. The YAML file is optional and
// read from $RESPITE_CONFIG or <data dir>/config.yaml.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env file is optional

	cfg := Default()

	path := getEnvOrDefault("RESPITE_CONFIG", filepath.Join(cfg.DataDir, "config.yaml"))
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.DataDir = getEnvOrDefault("RESPITE_DATA_DIR", cfg.DataDir)
	cfg.QuoteURL = getEnvOrDefault("RESPITE_QUOTE_URL", cfg.QuoteURL)
	if v := os.Getenv("RESPITE_SNOOZE_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RESPITE_SNOOZE_MINUTES must be an integer, got %q", v)
		}
		cfg.SnoozeMinutes = n
	}

	if cfg.SnoozeMinutes < 1 {
		return nil, fmt.Errorf("snooze minutes must be positive, got %d", cfg.SnoozeMinutes)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
