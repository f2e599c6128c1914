package audit

import (
	"context"
	"time"
)

// Record is a single persisted audit entry. It carries the identifying
// fields extracted from the log record plus the remaining structured fields
// and the original serialized line.
type Record struct {
	// Identity
	ID string `json:"id"` // UUID v4, assigned at capture time

	// Timestamps
	Time         time.Time `json:"time"`          // Record timestamp from the logger
	RecordedTime time.Time `json:"recorded_time"` // When the record was captured

	// Extracted fields
	Level         string `json:"level"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	Domain        string `json:"domain"`
	CorrelationID string `json:"correlation_id"`
	Message       string `json:"message"`

	// Fields holds the remaining structured fields of the record.
	Fields map[string]any `json:"fields,omitempty"`

	// Raw is the original serialized log line.
	Raw []byte `json:"raw,omitempty"`
}

// Filter selects records for Query. Zero values mean "no constraint".
type Filter struct {
	Level         string
	Domain        string
	CorrelationID string
	Since         time.Time
	Until         time.Time

	// Limit caps the number of returned records. 0 means no limit.
	Limit int
}

// Storage is the persistence interface for audit records. Implementations
// must be safe for concurrent use.
type Storage interface {
	// Store persists a single record.
	Store(ctx context.Context, record *Record) error

	// Query returns records matching the filter, newest first.
	Query(ctx context.Context, filter Filter) ([]*Record, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes records older than cutoff and returns the
	// number deleted.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the oldest records until at most keep remain,
	// returning the number deleted.
	DeleteOldest(ctx context.Context, keep int64) (int64, error)

	// Close releases the backend's resources.
	Close() error
}
