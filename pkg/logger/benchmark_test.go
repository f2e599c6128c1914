package logger

import (
	"bytes"
	"io"
	"testing"
)

// BenchmarkLogger_Info_Enabled measures the full emit path including
// normalization and redaction.
func BenchmarkLogger_Info_Enabled(b *testing.B) {
	l := MustNew(Config{
		Service: "bench",
		Level:   "info",
		Pretty:  Bool(false),
		Async:   Bool(false),
		Output:  io.Discard,
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l.Info("bench message", F{"key": "value", "count": i})
	}
}

// BenchmarkLogger_Debug_Disabled measures the early-out path when the level
// filters the record. Should be near-zero cost.
func BenchmarkLogger_Debug_Disabled(b *testing.B) {
	l := MustNew(Config{
		Service: "bench",
		Level:   "info",
		Pretty:  Bool(false),
		Async:   Bool(false),
		Output:  io.Discard,
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l.Debug("bench message", F{"key": "value", "count": i})
	}
}

// BenchmarkRedactor_Apply measures redaction over a typical field map.
func BenchmarkRedactor_Apply(b *testing.B) {
	r := newRedactor(RedactConfig{Paths: []string{"card.number", "*.session_key"}})
	fields := F{
		"a":        1,
		"password": "hunter2",
		"card":     F{"number": "4111", "brand": "visa"},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		r.apply(fields)
	}
}

// BenchmarkLogger_Child measures child handle creation.
func BenchmarkLogger_Child(b *testing.B) {
	buf := &bytes.Buffer{}
	l := MustNew(Config{
		Service: "bench",
		Pretty:  Bool(false),
		Async:   Bool(false),
		Output:  buf,
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		l.Child(F{"worker": i})
	}
}
