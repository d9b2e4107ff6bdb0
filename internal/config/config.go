// Package config resolves gradstat settings from a .env file and
// environment variables. Command-line flags override everything here.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/blackwell-systems/gradstat/internal/analytics"
)

// Environment variables read by Load.
const (
	EnvDataPath    = "GRADSTAT_DATA"
	EnvSensitivity = "GRADSTAT_SENSITIVITY"
)

// Config holds the resolved settings.
type Config struct {
	// DataPath is the dataset file to load (.csv or SQLite).
	DataPath string

	// Sensitivity is the default anomaly threshold in standard
	// deviations, overridable per query.
	Sensitivity float64
}

// Load reads an optional .env file from the working directory, then
// the environment. Missing values fall back to defaults; a present but
// malformed value is an error rather than a silent default.
func Load() (*Config, error) {
	// Absence of a .env file is the common case, not an error.
	_ = godotenv.Load()

	cfg := &Config{
		DataPath:    os.Getenv(EnvDataPath),
		Sensitivity: analytics.DefaultSensitivity,
	}

	if s := os.Getenv(EnvSensitivity); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvSensitivity, s, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be positive", EnvSensitivity, s)
		}
		cfg.Sensitivity = v
	}

	return cfg, nil
}
