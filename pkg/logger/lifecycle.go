package logger

import (
	"context"
	"errors"
	"time"
)

// ErrDrainTimeout is returned by Shutdown when the destination did not
// finish draining and closing within the shutdown bound. The caller is
// unblocked regardless; buffered records past the bound may be lost.
var ErrDrainTimeout = errors.New("logger: destination drain timed out")

// shutdownTimeout bounds how long Shutdown waits for drain-then-close.
const shutdownTimeout = 5 * time.Second

// Flush triggers a best-effort synchronous drain of the buffered
// destination. It is a no-op unless the logger writes asynchronously in
// non-pretty mode with a non-zero buffer. Flush never fails and never
// panics, whatever state the destination is in.
func (l *Logger) Flush() {
	defer func() {
		_ = recover()
	}()

	d := l.dest
	if d == nil || d.destroyed.Load() {
		return
	}
	if !d.async || d.pretty || d.bufferSize <= 0 {
		return
	}

	// The diode poller drains the ring every poll interval; waiting one
	// interval lets it observe everything written before this call.
	time.Sleep(d.pollInterval)

	if s, ok := d.sink.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

// Shutdown drains and closes the destination: it deregisters any installed
// crash handlers, performs a best-effort flush, then races the asynchronous
// drain-and-close against a fixed 5 second bound so a wedged destination can
// never block the caller forever. ctx may impose a tighter bound.
//
// Shutdown acts on the whole logger tree; calling it on a child is
// equivalent to calling it on the root. Only the first call does work, and
// only that call can return ErrDrainTimeout.
func (l *Logger) Shutdown(ctx context.Context) error {
	d := l.dest
	if d == nil {
		return nil
	}

	var err error
	d.shutdownOnce.Do(func() {
		d.crash.stop()
		l.Flush()

		done := make(chan struct{})
		go func() {
			defer close(done)
			defer func() {
				_ = recover()
			}()
			if d.dw != nil {
				_ = d.dw.Close()
			}
			if d.sinkCloser != nil {
				_ = d.sinkCloser.Close()
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			d.drainTimeouts.Add(1)
			err = ErrDrainTimeout
		case <-time.After(shutdownTimeout):
			d.drainTimeouts.Add(1)
			err = ErrDrainTimeout
		}

		d.destroyed.Store(true)
	})
	return err
}
