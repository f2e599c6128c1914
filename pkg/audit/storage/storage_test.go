package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"helios-hq/lantern/pkg/audit"

	"github.com/google/uuid"
)

// testRecord builds a record n minutes after the base time.
func testRecord(base time.Time, n int, level, domain string) *audit.Record {
	return &audit.Record{
		ID:            uuid.NewString(),
		Time:          base.Add(time.Duration(n) * time.Minute),
		RecordedTime:  base.Add(time.Duration(n) * time.Minute),
		Level:         level,
		Service:       "storage-test",
		Environment:   "test",
		Domain:        domain,
		CorrelationID: fmt.Sprintf("c-%d", n),
		Message:       fmt.Sprintf("record %d", n),
		Fields:        map[string]any{"seq": float64(n)},
		Raw:           []byte(`{"msg":"record"}`),
	}
}

// backends under test; both must satisfy the same contract.
func backends(t *testing.T) map[string]audit.Storage {
	t.Helper()

	sqlite, err := NewSQLiteStorage(&SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "audit.db"),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite storage: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]audit.Storage{
		"memory": NewMemoryStorage(),
		"sqlite": sqlite,
	}
}

func TestStorage_StoreAndQuery(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 0; i < 5; i++ {
				level := "error"
				if i%2 == 1 {
					level = "warn"
				}
				if err := store.Store(ctx, testRecord(base, i, level, "payments")); err != nil {
					t.Fatalf("Store() error = %v", err)
				}
			}

			all, err := store.Query(ctx, audit.Filter{})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(all) != 5 {
				t.Fatalf("got %d records, want 5", len(all))
			}
			for i := 1; i < len(all); i++ {
				if all[i].Time.After(all[i-1].Time) {
					t.Error("results should be ordered newest first")
				}
			}

			rec := all[0]
			if rec.Message != "record 4" || rec.Domain != "payments" {
				t.Errorf("unexpected newest record: %+v", rec)
			}
			if rec.Fields["seq"] != float64(4) {
				t.Errorf("fields not round-tripped: %+v", rec.Fields)
			}

			errors, err := store.Query(ctx, audit.Filter{Level: "error"})
			if err != nil {
				t.Fatalf("Query(level) error = %v", err)
			}
			if len(errors) != 3 {
				t.Errorf("got %d error records, want 3", len(errors))
			}

			byCorr, err := store.Query(ctx, audit.Filter{CorrelationID: "c-2"})
			if err != nil {
				t.Fatalf("Query(correlation) error = %v", err)
			}
			if len(byCorr) != 1 || byCorr[0].CorrelationID != "c-2" {
				t.Errorf("correlation filter returned %d records", len(byCorr))
			}

			windowed, err := store.Query(ctx, audit.Filter{
				Since: base.Add(1 * time.Minute),
				Until: base.Add(3 * time.Minute),
			})
			if err != nil {
				t.Fatalf("Query(window) error = %v", err)
			}
			if len(windowed) != 3 {
				t.Errorf("got %d records in window, want 3", len(windowed))
			}

			limited, err := store.Query(ctx, audit.Filter{Limit: 2})
			if err != nil {
				t.Fatalf("Query(limit) error = %v", err)
			}
			if len(limited) != 2 {
				t.Errorf("got %d records with limit 2", len(limited))
			}
		})
	}
}

func TestStorage_Count(t *testing.T) {
	base := time.Now().UTC()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if n, err := store.Count(ctx); err != nil || n != 0 {
				t.Fatalf("Count() = %d, %v; want 0, nil", n, err)
			}
			for i := 0; i < 3; i++ {
				if err := store.Store(ctx, testRecord(base, i, "error", "d")); err != nil {
					t.Fatalf("Store() error = %v", err)
				}
			}
			if n, err := store.Count(ctx); err != nil || n != 3 {
				t.Errorf("Count() = %d, %v; want 3, nil", n, err)
			}
		})
	}
}

func TestStorage_DeleteBefore(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 0; i < 6; i++ {
				if err := store.Store(ctx, testRecord(base, i, "error", "d")); err != nil {
					t.Fatalf("Store() error = %v", err)
				}
			}

			deleted, err := store.DeleteBefore(ctx, base.Add(3*time.Minute))
			if err != nil {
				t.Fatalf("DeleteBefore() error = %v", err)
			}
			if deleted != 3 {
				t.Errorf("deleted %d records, want 3", deleted)
			}
			if n, _ := store.Count(ctx); n != 3 {
				t.Errorf("remaining = %d, want 3", n)
			}
		})
	}
}

func TestStorage_DeleteOldest(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 0; i < 6; i++ {
				if err := store.Store(ctx, testRecord(base, i, "error", "d")); err != nil {
					t.Fatalf("Store() error = %v", err)
				}
			}

			deleted, err := store.DeleteOldest(ctx, 2)
			if err != nil {
				t.Fatalf("DeleteOldest() error = %v", err)
			}
			if deleted != 4 {
				t.Errorf("deleted %d records, want 4", deleted)
			}

			remaining, err := store.Query(ctx, audit.Filter{})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(remaining) != 2 {
				t.Fatalf("remaining = %d, want 2", len(remaining))
			}
			// The newest records survive.
			if remaining[0].Message != "record 5" || remaining[1].Message != "record 4" {
				t.Errorf("wrong survivors: %q, %q", remaining[0].Message, remaining[1].Message)
			}

			// Keeping more than exist is a no-op.
			if deleted, err := store.DeleteOldest(ctx, 100); err != nil || deleted != 0 {
				t.Errorf("DeleteOldest(100) = %d, %v; want 0, nil", deleted, err)
			}
		})
	}
}
