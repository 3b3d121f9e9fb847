// Package config covers process level configuration read from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds CLI defaults overridable via DRUGLEVEL_* variables.
type Config struct {
	OutputDir  string // DRUGLEVEL_OUTPUT_DIR
	Downsample int    // DRUGLEVEL_DOWNSAMPLE target point count
	LogLevel   string // DRUGLEVEL_LOG_LEVEL
	DrugName   string // DRUGLEVEL_DRUG_NAME
	Unit       string // DRUGLEVEL_UNIT
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	downsample, err := getenvInt("DRUGLEVEL_DOWNSAMPLE", 150)
	if err != nil {
		return nil, err
	}
	if downsample < 2 {
		return nil, fmt.Errorf("config: DRUGLEVEL_DOWNSAMPLE must be at least 2, got %d", downsample)
	}

	return &Config{
		OutputDir:  getenv("DRUGLEVEL_OUTPUT_DIR", "."),
		Downsample: downsample,
		LogLevel:   getenv("DRUGLEVEL_LOG_LEVEL", "info"),
		DrugName:   getenv("DRUGLEVEL_DRUG_NAME", "Medication"),
		Unit:       getenv("DRUGLEVEL_UNIT", "mg/L"),
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
