package config

import (
	"fmt"

	"helios-hq/lantern/pkg/logger"
)

// Config is the file representation of a logging setup.
type Config struct {
	// Service is the service name bound to every record.
	Service string `yaml:"service"`

	// Environment is the deployment environment name.
	Environment string `yaml:"environment"`

	// Level is the minimum log level.
	Level string `yaml:"level"`

	// Pretty enables human-readable console output.
	Pretty *bool `yaml:"pretty"`

	// Async enables buffered asynchronous writes.
	Async *bool `yaml:"async"`

	// AsyncBufferSize is the async ring capacity in records.
	AsyncBufferSize int `yaml:"async_buffer_size"`

	// Redact configures field redaction.
	Redact RedactConfig `yaml:"redact"`

	// File configures rotating file output.
	File *FileConfig `yaml:"file"`

	// HandleCrashes installs the termination-signal flush handler.
	HandleCrashes bool `yaml:"handle_crashes"`

	// NoExitOnFatal suppresses process termination on fatal records.
	NoExitOnFatal bool `yaml:"no_exit_on_fatal"`

	// Audit configures the high-severity audit trail.
	Audit AuditConfig `yaml:"audit"`

	// Metrics configures the Prometheus collector.
	Metrics MetricsConfig `yaml:"metrics"`
}

// RedactConfig mirrors logger.RedactConfig for YAML.
type RedactConfig struct {
	Paths           []string `yaml:"paths"`
	Censor          string   `yaml:"censor"`
	Remove          bool     `yaml:"remove"`
	DisableDefaults bool     `yaml:"disable_defaults"`
}

// FileConfig mirrors logger.FileConfig for YAML.
type FileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// AuditConfig configures the audit record trail.
type AuditConfig struct {
	// Enabled turns the audit sink on.
	Enabled bool `yaml:"enabled"`

	// MinLevel is the lowest level recorded. Default "error".
	MinLevel string `yaml:"min_level"`

	// Path is the sqlite database path. Empty selects the in-memory store.
	Path string `yaml:"path"`

	// Buffer is the async record channel size. Default 1000.
	Buffer int `yaml:"buffer"`

	// RetentionDays prunes records older than this many days. 0 disables.
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the stored record count. 0 disables.
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for scheduled pruning.
	PruneSchedule string `yaml:"prune_schedule"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// ApplyDefaults fills unset fields with defaults. Environment-derived
// defaults (environment, pretty, async) are resolved later by the logger
// itself so that file loading stays deterministic.
func ApplyDefaults(cfg *Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Audit.MinLevel == "" {
		cfg.Audit.MinLevel = "error"
	}
	if cfg.Audit.Buffer <= 0 {
		cfg.Audit.Buffer = 1000
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "lantern"
	}
}

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if err := validLevel(cfg.Level); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if err := validLevel(cfg.Audit.MinLevel); err != nil {
		return fmt.Errorf("audit.min_level: %w", err)
	}
	if cfg.AsyncBufferSize < 0 {
		return fmt.Errorf("async_buffer_size must not be negative, got %d", cfg.AsyncBufferSize)
	}
	if cfg.Audit.RetentionDays < 0 {
		return fmt.Errorf("audit.retention_days must not be negative, got %d", cfg.Audit.RetentionDays)
	}
	if cfg.Audit.MaxRecords < 0 {
		return fmt.Errorf("audit.max_records must not be negative, got %d", cfg.Audit.MaxRecords)
	}
	if cfg.File != nil && cfg.File.Path == "" {
		return fmt.Errorf("file.path is required when file output is configured")
	}
	return nil
}

var levelNames = map[string]struct{}{
	"trace": {}, "debug": {}, "info": {}, "warn": {}, "warning": {},
	"error": {}, "fatal": {},
}

func validLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, ok := levelNames[level]; !ok {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

// LoggerConfig converts the file configuration into a logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	lc := logger.Config{
		Service:         c.Service,
		Environment:     c.Environment,
		Level:           c.Level,
		Pretty:          c.Pretty,
		Async:           c.Async,
		AsyncBufferSize: c.AsyncBufferSize,
		HandleCrashes:   c.HandleCrashes,
		NoExitOnFatal:   c.NoExitOnFatal,
		Redact: logger.RedactConfig{
			Paths:           c.Redact.Paths,
			Censor:          c.Redact.Censor,
			Remove:          c.Redact.Remove,
			DisableDefaults: c.Redact.DisableDefaults,
		},
	}
	if c.File != nil {
		lc.File = &logger.FileConfig{
			Path:       c.File.Path,
			MaxSizeMB:  c.File.MaxSizeMB,
			MaxBackups: c.File.MaxBackups,
			MaxAgeDays: c.File.MaxAgeDays,
			Compress:   c.File.Compress,
		}
	}
	return lc
}
