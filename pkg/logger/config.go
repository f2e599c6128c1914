package logger

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables consulted for configuration defaults.
const (
	// EnvEnvironment overrides the deployment environment name.
	EnvEnvironment = "LANTERN_ENVIRONMENT"

	// EnvLevel overrides the minimum log level.
	EnvLevel = "LANTERN_LEVEL"

	// EnvPretty overrides the pretty-mode default.
	EnvPretty = "LANTERN_PRETTY"

	// EnvAsync overrides the async-writes default.
	EnvAsync = "LANTERN_ASYNC"

	// envEnvironmentFallback is consulted when EnvEnvironment is unset.
	envEnvironmentFallback = "ENVIRONMENT"
)

const (
	// DefaultEnvironment is used when no environment is configured or
	// present in the process environment.
	DefaultEnvironment = "development"

	// DefaultAsyncBufferSize is the diode ring buffer capacity, in records.
	DefaultAsyncBufferSize = 4096

	// DefaultPollInterval is how often the async writer drains the ring.
	DefaultPollInterval = 10 * time.Millisecond
)

// F is a shorthand for a set of structured log fields.
type F = map[string]any

// Config contains configuration for a root Logger.
//
// Zero values are usable: New(Config{Service: "svc"}) yields a JSON logger
// on stdout at info level with default redaction.
type Config struct {
	// Service is the service name bound to every record.
	Service string

	// Environment is the deployment environment bound to every record.
	// Defaults from LANTERN_ENVIRONMENT, then ENVIRONMENT, then "development".
	Environment string

	// Level is the minimum log level ("trace", "debug", "info", "warn",
	// "error", "fatal"). Defaults from LANTERN_LEVEL, then "info".
	Level string

	// Pretty renders human-readable console output instead of JSON.
	// Defaults from LANTERN_PRETTY, then true in the development environment.
	Pretty *bool

	// Redact configures field redaction. Default sensitive keys are always
	// censored unless DisableDefaults is set.
	Redact RedactConfig

	// Async buffers writes through a diode ring so logging never blocks on
	// the destination. Defaults from LANTERN_ASYNC, then true in the
	// production environment. Ignored in pretty mode.
	Async *bool

	// AsyncBufferSize is the ring capacity in records. Default 4096.
	// A non-positive explicit value disables buffering.
	AsyncBufferSize int

	// PollInterval is the async drain interval. Default 10ms.
	PollInterval time.Duration

	// Fields are base fields bound to every record.
	Fields F

	// HandleCrashes installs a signal handler that logs, flushes and exits
	// on SIGINT/SIGTERM/SIGQUIT. Deregistered by Shutdown.
	HandleCrashes bool

	// ExitOnFatal terminates the process after a Fatal record or captured
	// panic. Default true; set NoExitOnFatal to suppress.
	NoExitOnFatal bool

	// Output is the destination writer. Default os.Stdout.
	// Ignored when File is set.
	Output io.Writer

	// File, when set, writes to a size-rotated log file instead of Output.
	File *FileConfig

	// ExtraWriters receive a copy of every serialized record, before any
	// pretty rendering. Used to attach secondary sinks such as an audit
	// recorder.
	ExtraWriters []io.Writer

	// Hooks are zerolog hooks run for every record, e.g. a metrics hook.
	Hooks []zerolog.Hook
}

// FileConfig configures rotating file output via lumberjack.
type FileConfig struct {
	// Path is the log file path.
	Path string

	// MaxSizeMB is the maximum size in megabytes before rotation. Default 100.
	MaxSizeMB int

	// MaxBackups is the maximum number of rotated files to keep.
	MaxBackups int

	// MaxAgeDays is the maximum age in days of rotated files.
	MaxAgeDays int

	// Compress gzips rotated files.
	Compress bool
}

// RedactConfig configures redaction of sensitive fields.
type RedactConfig struct {
	// Paths are dotted field paths to redact, e.g. "card.number" or
	// "*.authorization". A "*" segment matches any single key.
	Paths []string

	// Censor replaces redacted values. Default "[REDACTED]".
	Censor string

	// Remove drops redacted fields instead of censoring them.
	Remove bool

	// DisableDefaults turns off the built-in sensitive key list.
	DisableDefaults bool
}

// applyDefaults resolves environment-derived and implicit defaults.
func applyDefaults(cfg Config) Config {
	if cfg.Environment == "" {
		cfg.Environment = os.Getenv(EnvEnvironment)
	}
	if cfg.Environment == "" {
		cfg.Environment = os.Getenv(envEnvironmentFallback)
	}
	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}

	if cfg.Level == "" {
		cfg.Level = os.Getenv(EnvLevel)
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}

	if cfg.Pretty == nil {
		cfg.Pretty = boolDefault(EnvPretty, cfg.Environment == "development")
	}
	if cfg.Async == nil {
		cfg.Async = boolDefault(EnvAsync, cfg.Environment == "production")
	}

	if cfg.AsyncBufferSize == 0 {
		cfg.AsyncBufferSize = DefaultAsyncBufferSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	return cfg
}

// boolDefault reads a boolean environment variable, falling back to def when
// unset or unparseable.
func boolDefault(env string, def bool) *bool {
	v := def
	if raw := os.Getenv(env); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			v = parsed
		}
	}
	return &v
}

// Bool returns a pointer to b, for use in Config literals.
func Bool(b bool) *bool { return &b }
