package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML configuration file, applies defaults and validates it.
// Environment variables are not consulted; use LoadWithEnv for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads a YAML configuration file and applies LANTERN_*
// environment variable overrides. Environment variables always take
// precedence over file values.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies LANTERN_SECTION_FIELD environment overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("LANTERN_SERVICE"); val != "" {
		cfg.Service = val
	}
	if val := os.Getenv("LANTERN_ENVIRONMENT"); val != "" {
		cfg.Environment = val
	}
	if val := os.Getenv("LANTERN_LEVEL"); val != "" {
		cfg.Level = val
	}
	if val := os.Getenv("LANTERN_PRETTY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Pretty = &b
		}
	}
	if val := os.Getenv("LANTERN_ASYNC"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Async = &b
		}
	}
	if val := os.Getenv("LANTERN_ASYNC_BUFFER_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.AsyncBufferSize = i
		}
	}

	// File overrides
	if val := os.Getenv("LANTERN_FILE_PATH"); val != "" {
		if cfg.File == nil {
			cfg.File = &FileConfig{}
		}
		cfg.File.Path = val
	}

	// Audit overrides
	if val := os.Getenv("LANTERN_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("LANTERN_AUDIT_MIN_LEVEL"); val != "" {
		cfg.Audit.MinLevel = val
	}
	if val := os.Getenv("LANTERN_AUDIT_PATH"); val != "" {
		cfg.Audit.Path = val
	}

	// Metrics overrides
	if val := os.Getenv("LANTERN_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("LANTERN_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}
}
