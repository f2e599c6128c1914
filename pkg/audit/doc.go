// Package audit provides durable retention of high-severity log records.
//
// The audit trail captures records at or above a configured level (error by
// default) and persists them to a storage backend so they survive log
// rotation and process restarts. Records are written asynchronously: the
// Recorder exposes a writer that is attached to a logger as an extra
// destination, filters by level without parsing, and hands matching records
// to a background worker for storage.
//
// Typical usage:
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{Path: "data/audit.db"})
//	recorder := audit.NewRecorder(store, nil, log)
//	appLog, err := logger.New(logger.Config{
//		Service:      "billing",
//		ExtraWriters: []io.Writer{recorder.Writer()},
//	})
//
// Retention is enforced by the retention subpackage, which prunes old
// records on a cron schedule.
package audit
