// Package config loads process-wide configuration once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aeo-auditor/backend/analyzer"
)

// Config holds all runtime settings. Values come from environment variables
// with sensible defaults; engine personas may additionally be overridden
// from a YAML file.
type Config struct {
	Port         string
	GinMode      string
	DataDir      string
	LogLevel     string
	DevMode      bool
	FetchTimeout time.Duration
	CacheTTL     time.Duration
	EnginesFile  string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         envOr("PORT", "8082"),
		GinMode:      envOr("GIN_MODE", "release"),
		DataDir:      envOr("DATA_DIR", "./data"),
		LogLevel:     envOr("LOG_LEVEL", "info"),
		DevMode:      os.Getenv("DEV_MODE") == "true",
		FetchTimeout: 10 * time.Second,
		CacheTTL:     30 * time.Minute,
		EnginesFile:  os.Getenv("ENGINES_FILE"),
	}

	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT_SECONDS %q", v)
		}
		cfg.FetchTimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		mins, err := strconv.Atoi(v)
		if err != nil || mins <= 0 {
			return nil, fmt.Errorf("invalid CACHE_TTL_MINUTES %q", v)
		}
		cfg.CacheTTL = time.Duration(mins) * time.Minute
	}

	return cfg, nil
}

// EngineProfiles returns the engine personas: the built-in defaults, or the
// validated contents of EnginesFile when one is configured.
func (c *Config) EngineProfiles() ([]analyzer.EngineProfile, error) {
	if c.EnginesFile == "" {
		return analyzer.DefaultEngineProfiles(), nil
	}

	data, err := os.ReadFile(c.EnginesFile)
	if err != nil {
		return nil, fmt.Errorf("read engines file: %w", err)
	}

	var profiles []analyzer.EngineProfile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse engines file: %w", err)
	}
	if err := analyzer.ValidateEngineProfiles(profiles); err != nil {
		return nil, fmt.Errorf("engines file %s: %w", c.EnginesFile, err)
	}

	return profiles, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
