// Package logger provides structured logging for services built on rs/zerolog.
//
// # Overview
//
// The package wraps zerolog to provide:
//   - A flexible calling convention: leveled methods accept a message, a
//     field map, or both, in either order, as well as key-value pairs
//   - Domain, context and custom-binding child loggers sharing one destination
//   - Default redaction of sensitive fields (censor or remove)
//   - Asynchronous buffered writes via zerolog's diode ring buffer
//   - Best-effort Flush and bounded Shutdown lifecycle management
//   - Optional log file rotation and crash-signal capture
//
// # Usage
//
//	log, err := logger.New(logger.Config{
//	    Service: "billing",
//	    Level:   "info",
//	})
//	if err != nil {
//	    panic(err)
//	}
//	defer log.Shutdown(context.Background())
//
//	log.Info("invoice processed", logger.F{"invoice_id": id, "amount_cents": 1250})
//
//	// Child loggers
//	dbLog := log.Domain("storage")
//	reqLog := log.WithContext(ctx) // picks up correlation_id, user_id, tenant_id
//
// # Output
//
// Records are emitted as JSON with the fields service, environment, level,
// time and msg, plus any bound or caller-supplied fields. In pretty mode the
// stream is rendered human-readably through zerolog's console writer instead.
//
// # Lifecycle
//
// Flush and Shutdown are best-effort: logging must never crash the
// host application, so drain and close failures are swallowed. Shutdown is
// bounded by a fixed 5 second timeout; a destination that never completes its
// drain is reported as ErrDrainTimeout and counted in BufferMetrics.
package logger
