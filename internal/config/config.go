// Package config loads library settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all library settings, populated from environment variables.
type Config struct {
	DataDir   string
	LogLevel  string
	LogFormat string
	CacheSize int

	// Plot canvas size in inches.
	PlotWidthInch  float64
	PlotHeightInch float64
}

// Load reads an optional .env file, then environment variables, applying
// defaults where unset.
func Load() (*Config, error) {
	// Missing .env is fine; system environment still applies.
	_ = godotenv.Load()

	cacheSize, err := envInt("DATASET_CACHE_SIZE", 8)
	if err != nil {
		return nil, err
	}
	width, err := envFloat("PLOT_WIDTH_IN", 6)
	if err != nil {
		return nil, err
	}
	height, err := envFloat("PLOT_HEIGHT_IN", 6)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:        envOrDefault("FARS_DATA_DIR", "."),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		CacheSize:      cacheSize,
		PlotWidthInch:  width,
		PlotHeightInch: height,
	}

	if cfg.DataDir == "" {
		return nil, errors.New("FARS_DATA_DIR must not be empty")
	}
	if cfg.CacheSize <= 0 {
		return nil, errors.New("DATASET_CACHE_SIZE must be positive")
	}
	if cfg.PlotWidthInch <= 0 || cfg.PlotHeightInch <= 0 {
		return nil, errors.New("plot dimensions must be positive")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return f, nil
}
