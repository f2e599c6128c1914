package logger

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

// crashHandler flushes buffered records when the process receives a
// termination signal, so async destinations do not silently lose the tail
// of the log. Installed by New when HandleCrashes is set; deregistered by
// Shutdown.
type crashHandler struct {
	ch       chan os.Signal
	done     chan struct{}
	stopOnce sync.Once
}

func installCrashHandler(l *Logger) *crashHandler {
	h := &crashHandler{
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(h.ch, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case sig := <-h.ch:
			l.Error("received termination signal", F{"signal": sig.String()})
			l.Flush()
			if l.exitOnFatal {
				l.exitFn(128 + signalNumber(sig))
			}
		case <-h.done:
		}
	}()

	return h
}

// stop deregisters the handler. Safe on a nil receiver and idempotent.
func (h *crashHandler) stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() {
		signal.Stop(h.ch)
		close(h.done)
	})
}

func signalNumber(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return int(s)
	}
	return 0
}

// CapturePanic is meant to be deferred at the top of a goroutine or main.
// A recovered panic is logged at fatal severity with its stack, buffered
// records are flushed, and the process exits unless NoExitOnFatal was
// configured, in which case the panic is re-raised.
//
// This path is unavoidably racy against process teardown and is best-effort
// only.
func (l *Logger) CapturePanic() {
	l.handlePanic(recover())
}

// CapturePanicContext is CapturePanic with the correlation fields found in
// ctx bound to the fatal record.
func (l *Logger) CapturePanicContext(ctx context.Context) {
	l.WithContext(ctx).handlePanic(recover())
}

func (l *Logger) handlePanic(r any) {
	if r == nil {
		return
	}

	l.log(zerolog.FatalLevel, []any{
		"panic recovered",
		F{"panic": fmt.Sprint(r), "stack": string(debug.Stack())},
	})
	l.Flush()

	if l.exitOnFatal {
		l.exitFn(1)
		return
	}
	panic(r)
}
