package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"helios-hq/lantern/pkg/audit"
)

// MemoryStorage implements audit.Storage using an in-memory map. It is
// intended for testing and should not be used in production.
type MemoryStorage struct {
	records map[string]*audit.Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*audit.Record),
	}
}

// Store persists an audit record to memory.
func (s *MemoryStorage) Store(_ context.Context, record *audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to avoid mutation by the caller.
	recordCopy := *record
	s.records[record.ID] = &recordCopy
	return nil
}

// Query retrieves audit records matching the filter, newest first.
func (s *MemoryStorage) Query(_ context.Context, filter audit.Filter) ([]*audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*audit.Record
	for _, record := range s.records {
		if matches(record, filter) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Time.After(results[j].Time)
	})

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

// Count returns the total number of stored records.
func (s *MemoryStorage) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// DeleteBefore removes records older than cutoff.
func (s *MemoryStorage) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if record.Time.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteOldest removes the oldest records until at most keep remain.
func (s *MemoryStorage) DeleteOldest(_ context.Context, keep int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	excess := int64(len(s.records)) - keep
	if excess <= 0 {
		return 0, nil
	}

	ordered := make([]*audit.Record, 0, len(s.records))
	for _, record := range s.records {
		ordered = append(ordered, record)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Time.Before(ordered[j].Time)
	})

	for _, record := range ordered[:excess] {
		delete(s.records, record.ID)
	}
	return excess, nil
}

// Close releases the backend. It is a no-op for memory storage.
func (s *MemoryStorage) Close() error {
	return nil
}

func matches(record *audit.Record, filter audit.Filter) bool {
	if filter.Level != "" && record.Level != filter.Level {
		return false
	}
	if filter.Domain != "" && record.Domain != filter.Domain {
		return false
	}
	if filter.CorrelationID != "" && record.CorrelationID != filter.CorrelationID {
		return false
	}
	if !filter.Since.IsZero() && record.Time.Before(filter.Since) {
		return false
	}
	if !filter.Until.IsZero() && record.Time.After(filter.Until) {
		return false
	}
	return true
}
