package logger

import (
	"context"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// fieldNamesOnce applies our record field naming to zerolog's package-level
// configuration exactly once. The only change is the message key ("msg").
var fieldNamesOnce sync.Once

// Logger is a handle over a configured zerolog instance. Handles are cheap;
// child handles created via Domain, WithContext and Child share the root's
// destination, so lifecycle calls on any handle act on the whole tree.
type Logger struct {
	zl          atomic.Pointer[zerolog.Logger]
	redactor    *redactor
	dest        *destination
	exitOnFatal bool
	exitFn      func(int)
}

// New creates a root Logger from cfg. The returned error only reflects
// configuration problems (an unknown level); runtime write failures are
// never surfaced through the logger.
func New(cfg Config) (*Logger, error) {
	cfg = applyDefaults(cfg)

	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	fieldNamesOnce.Do(func() {
		zerolog.MessageFieldName = messageKey
	})

	red := newRedactor(cfg.Redact)
	dest := newDestination(cfg)

	zctx := zerolog.New(dest.w).With().Timestamp()
	if cfg.Service != "" {
		zctx = zctx.Str("service", cfg.Service)
	}
	zctx = zctx.Str("environment", cfg.Environment)
	if len(cfg.Fields) > 0 {
		zctx = zctx.Fields(map[string]any(normalizeErrors(red.apply(cfg.Fields))))
	}

	zl := zctx.Logger().Level(lvl)
	for _, h := range cfg.Hooks {
		zl = zl.Hook(h)
	}

	l := &Logger{
		redactor:    red,
		dest:        dest,
		exitOnFatal: !cfg.NoExitOnFatal,
		exitFn:      os.Exit,
	}
	l.zl.Store(&zl)

	if cfg.HandleCrashes {
		dest.crash = installCrashHandler(l)
	}

	return l, nil
}

// MustNew is New, panicking on configuration errors.
func MustNew(cfg Config) *Logger {
	l, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

// Trace logs at trace level. See Info for the accepted argument shapes.
func (l *Logger) Trace(args ...any) { l.log(zerolog.TraceLevel, args) }

// Debug logs at debug level. See Info for the accepted argument shapes.
func (l *Logger) Debug(args ...any) { l.log(zerolog.DebugLevel, args) }

// Info logs at info level. Accepted shapes:
//
//	Info("msg")
//	Info("msg", F{"k": v})
//	Info(F{"k": v})
//	Info(F{"k": v}, "msg")
//	Info("msg", "k1", v1, "k2", v2)
//
// All shapes emit the same merged record.
func (l *Logger) Info(args ...any) { l.log(zerolog.InfoLevel, args) }

// Warn logs at warn level. See Info for the accepted argument shapes.
func (l *Logger) Warn(args ...any) { l.log(zerolog.WarnLevel, args) }

// Error logs at error level. See Info for the accepted argument shapes.
func (l *Logger) Error(args ...any) { l.log(zerolog.ErrorLevel, args) }

// Fatal logs at fatal level, flushes, and terminates the process unless
// NoExitOnFatal was configured.
func (l *Logger) Fatal(args ...any) {
	l.log(zerolog.FatalLevel, args)
	l.Flush()
	if l.exitOnFatal {
		l.exitFn(1)
	}
}

func (l *Logger) log(lvl zerolog.Level, args []any) {
	zl := l.zl.Load()
	if !levelEnabled(zl.GetLevel(), lvl) {
		return
	}

	msg, fields := normalizeCall(args)
	if len(fields) > 0 {
		fields = normalizeErrors(l.redactor.apply(fields))
	}

	ev := zl.WithLevel(lvl)
	if len(fields) > 0 {
		ev = ev.Fields(map[string]any(fields))
	}
	ev.Msg(msg)
}

// Domain returns a child logger bound to a named subsystem. The domain is
// emitted on every record under the "domain" field.
func (l *Logger) Domain(name string) *Logger {
	return l.child(func(zctx zerolog.Context) zerolog.Context {
		return zctx.Str("domain", name)
	})
}

// Child returns a child logger with extra bound fields. Bindings pass
// through redaction the same way call-site fields do.
func (l *Logger) Child(fields F) *Logger {
	if len(fields) == 0 {
		return l
	}
	bound := normalizeErrors(l.redactor.apply(fields))
	return l.child(func(zctx zerolog.Context) zerolog.Context {
		return zctx.Fields(map[string]any(bound))
	})
}

// WithContext returns a child logger carrying the correlation fields found
// in ctx (correlation_id, user_id, tenant_id). Returns the receiver when
// ctx carries none.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.child(func(zctx zerolog.Context) zerolog.Context {
		return zctx.Fields(map[string]any(fields))
	})
}

// child derives a new handle that wraps a decorated engine instance and
// shares the parent's destination and redaction rules.
func (l *Logger) child(bind func(zerolog.Context) zerolog.Context) *Logger {
	parent := l.zl.Load()
	zl := bind(parent.With()).Logger()

	c := &Logger{
		redactor:    l.redactor,
		dest:        l.dest,
		exitOnFatal: l.exitOnFatal,
		exitFn:      l.exitFn,
	}
	c.zl.Store(&zl)
	return c
}

// Level returns the handle's current minimum level.
func (l *Logger) Level() string {
	return l.zl.Load().GetLevel().String()
}

// SetLevel changes the handle's minimum level at runtime.
func (l *Logger) SetLevel(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	zl := l.zl.Load().Level(lvl)
	l.zl.Store(&zl)
	return nil
}

// IsLevelEnabled reports whether a record at the given level would be
// emitted. Unknown level names report false.
func (l *Logger) IsLevelEnabled(level string) bool {
	lvl, err := parseLevel(level)
	if err != nil {
		return false
	}
	return levelEnabled(l.zl.Load().GetLevel(), lvl)
}

// BufferMetrics returns a snapshot of the shared destination's state.
func (l *Logger) BufferMetrics() BufferMetrics {
	return l.dest.metrics()
}

// levelEnabled reports whether a record at lvl passes a logger minimum.
func levelEnabled(minimum, lvl zerolog.Level) bool {
	if minimum == zerolog.Disabled || lvl == zerolog.Disabled {
		return false
	}
	return lvl >= minimum
}

// parseLevel maps a level name onto a zerolog level. The empty string means
// info; "warning" is accepted as an alias.
func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}
