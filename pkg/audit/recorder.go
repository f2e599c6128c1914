package audit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"helios-hq/lantern/pkg/logger"
)

// Config contains configuration for the audit recorder.
type Config struct {
	// Enabled enables audit capture. Disabled recorders accept writes and
	// discard them.
	Enabled bool

	// MinLevel is the minimum level captured. Default: "error".
	MinLevel string

	// Buffer is the size of the async record channel. Default: 1000.
	Buffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds.
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MinLevel:     "error",
		Buffer:       1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder captures high-severity log records and persists them to a
// storage backend. Capture is asynchronous: the writer returned by Writer
// enqueues records and returns immediately, and a background worker drains
// the queue into storage. Records are dropped, never blocked on, when the
// queue is full.
type Recorder struct {
	storage    Storage
	config     *Config
	minLevel   zerolog.Level
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	closeOnce  sync.Once
	dropped    atomic.Uint64
	log        *logger.Logger
}

// NewRecorder creates an audit recorder over the given storage backend.
// log is used for the recorder's own diagnostics; it must not be a logger
// that writes into this recorder, and may be nil.
func NewRecorder(storage Storage, config *Config, log *logger.Logger) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Buffer <= 0 {
		config.Buffer = 1000
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}

	minLevel, err := zerolog.ParseLevel(config.MinLevel)
	if err != nil || config.MinLevel == "" {
		minLevel = zerolog.ErrorLevel
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		minLevel:   minLevel,
		recordChan: make(chan *Record, config.Buffer),
		done:       make(chan struct{}),
		log:        log,
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// Writer returns a destination for logger.Config.ExtraWriters. It filters
// by level without parsing the payload, so records below MinLevel cost a
// single comparison.
func (r *Recorder) Writer() io.Writer {
	return &auditWriter{recorder: r}
}

// Dropped returns the number of records discarded because the queue was
// full or the recorder was shutting down.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Close shuts down the recorder, draining queued records into storage
// before returning. It does not close the storage backend.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
	return nil
}

// capture parses a serialized log record and enqueues it. Called from the
// logging hot path, so it never blocks: a full queue drops the record.
func (r *Recorder) capture(line []byte) {
	record := parseRecord(line)

	select {
	case r.recordChan <- record:
	case <-r.done:
		r.dropped.Add(1)
	default:
		r.dropped.Add(1)
	}
}

// worker drains the record channel and writes records to storage. On
// shutdown it finishes whatever is still queued before exiting.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) writeRecord(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		if r.log != nil {
			r.log.Warn("failed to store audit record", logger.F{
				"record_id": record.ID,
				"error":     err,
			})
		}
	}
}

// parseRecord extracts the identifying fields from a serialized log line.
// Unparseable lines still produce a record carrying the raw payload.
func parseRecord(line []byte) *Record {
	record := &Record{
		ID:           uuid.NewString(),
		RecordedTime: time.Now().UTC(),
		Raw:          append([]byte(nil), line...),
	}

	var fields map[string]any
	if err := json.Unmarshal(line, &fields); err != nil {
		return record
	}

	take := func(key string) string {
		if v, ok := fields[key].(string); ok {
			delete(fields, key)
			return v
		}
		return ""
	}

	record.Level = take("level")
	record.Message = take("msg")
	record.Service = take("service")
	record.Environment = take("environment")
	record.Domain = take("domain")
	record.CorrelationID = take("correlation_id")

	if ts := take(zerolog.TimestampFieldName); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			record.Time = t
		}
	}
	if record.Time.IsZero() {
		record.Time = record.RecordedTime
	}

	if len(fields) > 0 {
		record.Fields = fields
	}
	return record
}

// auditWriter adapts a Recorder to zerolog's destination interfaces. It
// implements zerolog.LevelWriter so the multi-writer can hand it the record
// level directly.
type auditWriter struct {
	recorder *Recorder
}

func (w *auditWriter) Write(p []byte) (int, error) {
	// Level is unknown on this path; parse it out of the payload.
	var probe struct {
		Level string `json:"level"`
	}
	level := zerolog.InfoLevel
	if err := json.Unmarshal(p, &probe); err == nil {
		if parsed, err := zerolog.ParseLevel(probe.Level); err == nil {
			level = parsed
		}
	}
	return w.WriteLevel(level, p)
}

func (w *auditWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	r := w.recorder
	if r.config.Enabled && level >= r.minLevel && level < zerolog.NoLevel {
		r.capture(p)
	}
	return len(p), nil
}
