package logger

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"gopkg.in/natefinch/lumberjack.v2"
)

// backpressureWindow is how long after a dropped record the destination is
// still reported as backpressured.
const backpressureWindow = time.Second

// BufferMetrics is a read-only snapshot of the destination's buffering state,
// computed on demand. In pretty mode the destination is rendered through an
// opaque console transport, so only the coarse Async/Pretty flags are
// available and MetricsAvailable is false.
type BufferMetrics struct {
	// Async reports whether writes go through the diode ring buffer.
	Async bool

	// Pretty reports whether output is rendered via the console writer.
	Pretty bool

	// MetricsAvailable reports whether the detail fields below are meaningful.
	MetricsAvailable bool

	// Backpressured reports whether the ring dropped records recently.
	Backpressured bool

	// Destroyed reports whether the destination has been shut down.
	Destroyed bool

	// Dropped is the total number of records dropped by the ring buffer.
	Dropped int64

	// DrainTimeouts counts shutdowns that hit the drain timeout.
	DrainTimeouts int64
}

// destination is the single write sink shared by a logger tree. The root
// logger creates it; children hold the same reference so that flush and
// shutdown on any handle act on the tree's one buffered writer.
type destination struct {
	// w is what zerolog serializes into: the diode writer, the console
	// writer, or the sink directly, possibly fanned out to extra writers.
	w io.Writer

	// sink is the final output under any buffering or rendering.
	sink io.Writer

	// sinkCloser closes sinks owned by the destination (rotated files).
	// Never set for caller-provided writers.
	sinkCloser io.Closer

	async        bool
	pretty       bool
	bufferSize   int
	pollInterval time.Duration

	dw *diode.Writer

	dropped       atomic.Int64
	lastDropNano  atomic.Int64
	drainTimeouts atomic.Int64
	destroyed     atomic.Bool
	shutdownOnce  sync.Once

	// crash is the installed crash-signal handler, nil when disabled.
	crash *crashHandler
}

// newDestination builds the write chain for a root logger.
func newDestination(cfg Config) *destination {
	d := &destination{
		sink:         cfg.Output,
		pretty:       *cfg.Pretty,
		async:        *cfg.Async && !*cfg.Pretty && cfg.AsyncBufferSize > 0,
		bufferSize:   cfg.AsyncBufferSize,
		pollInterval: cfg.PollInterval,
	}

	if cfg.File != nil && cfg.File.Path != "" {
		maxSize := cfg.File.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 100
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    maxSize,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		d.sink = lj
		d.sinkCloser = lj
	}

	switch {
	case d.pretty:
		d.w = zerolog.ConsoleWriter{Out: d.sink, TimeFormat: time.RFC3339}
	case d.async:
		// nopCloseWriter keeps diode.Close from closing a sink we do not
		// own; owned sinks are closed by the lifecycle coordinator.
		dw := diode.NewWriter(nopCloseWriter{d.sink}, d.bufferSize, d.pollInterval, func(missed int) {
			d.dropped.Add(int64(missed))
			d.lastDropNano.Store(time.Now().UnixNano())
		})
		d.dw = &dw
		d.w = d.dw
	default:
		d.w = d.sink
	}

	if len(cfg.ExtraWriters) > 0 {
		writers := append([]io.Writer{d.w}, cfg.ExtraWriters...)
		d.w = zerolog.MultiLevelWriter(writers...)
	}

	return d
}

// metrics returns the current snapshot.
func (d *destination) metrics() BufferMetrics {
	m := BufferMetrics{
		Async:  d.async,
		Pretty: d.pretty,
	}
	if d.pretty {
		return m
	}

	m.MetricsAvailable = d.async && d.bufferSize > 0
	m.Destroyed = d.destroyed.Load()
	m.Dropped = d.dropped.Load()
	m.DrainTimeouts = d.drainTimeouts.Load()
	if last := d.lastDropNano.Load(); last > 0 {
		m.Backpressured = time.Since(time.Unix(0, last)) <= backpressureWindow
	}
	return m
}

// nopCloseWriter hides an underlying writer's Close method.
type nopCloseWriter struct {
	io.Writer
}
