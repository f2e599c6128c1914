package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"helios-hq/lantern/pkg/logger"
)

// DefaultDebounceInterval is how long the watcher waits after a file event
// before reloading, so editors that write in several steps trigger one
// reload instead of a storm.
const DefaultDebounceInterval = 100 * time.Millisecond

// Watcher watches a configuration file and reloads it on change.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce *debouncer
	log      *logger.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewWatcher creates a watcher for the configuration file at path.
// Reload failures are reported through log, which may be nil.
func NewWatcher(path string, debounce time.Duration, log *logger.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:     path,
		watcher:  fs,
		debounce: newDebouncer(debounce),
		log:      log,
		stopCh:   make(chan struct{}),
	}, nil
}

// Watch blocks, invoking onChange with the freshly loaded configuration
// every time the file changes, until ctx is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onChange func(*Config)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory: editors replace files on save, which would
	// drop a watch registered on the file itself.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.stopCh:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.debounce.trigger(func() {
				cfg, err := LoadWithEnv(w.path)
				if err != nil {
					if w.log != nil {
						w.log.Warn("config reload failed", logger.F{"path": w.path, "error": err})
					}
					return
				}
				onChange(cfg)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.log != nil {
				w.log.Warn("config watcher error", logger.F{"error": err})
			}
		}
	}
}

// Stop terminates Watch and releases the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		close(w.stopCh)
		w.running = false
	}
	_ = w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// WatchLevel watches the configuration file and applies level changes to
// log at runtime. It blocks until ctx is cancelled.
func WatchLevel(ctx context.Context, path string, log *logger.Logger) error {
	w, err := NewWatcher(path, DefaultDebounceInterval, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Watch(ctx, func(cfg *Config) {
		if err := log.SetLevel(cfg.Level); err != nil {
			log.Warn("ignoring invalid level from config file", logger.F{"level": cfg.Level, "error": err})
			return
		}
		log.Info("log level updated from config file", logger.F{"level": cfg.Level, "path": path})
	})
}

// debouncer coalesces bursts of triggers into a single call after a quiet
// interval.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}
