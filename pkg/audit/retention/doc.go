// Package retention enforces retention policies on stored audit records.
//
// The Pruner deletes records in two phases: age-based pruning removes
// records older than the configured retention period, and count-based
// pruning caps the total number of stored records. The Scheduler runs the
// pruner on a cron schedule.
package retention
