package metrics

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"helios-hq/lantern/pkg/config"
	"helios-hq/lantern/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "logging",
	}
}

// fakeSource returns a fixed buffer snapshot.
type fakeSource struct {
	m logger.BufferMetrics
}

func (f fakeSource) BufferMetrics() logger.BufferMetrics { return f.m }

func TestNewCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(testConfig(), registry)

	if collector.registry != registry {
		t.Error("collector should use the provided registry")
	}
	if collector.Registry() != registry {
		t.Error("Registry() should return the provided registry")
	}
}

func TestNewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{}
	collector := NewCollector(cfg, nil)

	if cfg.Namespace != "lantern" {
		t.Errorf("namespace = %q, want lantern default", cfg.Namespace)
	}
	if collector.registry == nil {
		t.Error("a fresh registry should be created when none is provided")
	}
}

func TestCollector_Hook(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	hook := collector.Hook()

	hook.Run(nil, zerolog.InfoLevel, "a")
	hook.Run(nil, zerolog.InfoLevel, "b")
	hook.Run(nil, zerolog.ErrorLevel, "c")
	hook.Run(nil, zerolog.NoLevel, "ignored")

	if got := testutil.ToFloat64(collector.recordsTotal.WithLabelValues("info")); got != 2 {
		t.Errorf("info records = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.recordsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("error records = %v, want 1", got)
	}
}

func TestCollector_HookCountsFilteredRecords(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	log, err := logger.New(logger.Config{
		Service: "metrics-test",
		Level:   "info",
		Output:  &bytes.Buffer{},
		Pretty:  logger.Bool(false),
		Async:   logger.Bool(false),
		Hooks:   []zerolog.Hook{collector.Hook()},
	})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	log.Info("kept")
	log.Debug("filtered")

	if got := testutil.ToFloat64(collector.recordsTotal.WithLabelValues("info")); got != 1 {
		t.Errorf("info records = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.recordsTotal.WithLabelValues("debug")); got != 0 {
		t.Errorf("debug records = %v, want 0 (below level)", got)
	}
}

func TestCollector_WatchBuffer(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.WatchBuffer(fakeSource{m: logger.BufferMetrics{
		Async:         true,
		Dropped:       7,
		DrainTimeouts: 1,
		Backpressured: true,
	}})

	families, err := collector.registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	want := map[string]float64{
		"test_logging_buffer_dropped_total":        7,
		"test_logging_buffer_drain_timeouts_total": 1,
		"test_logging_buffer_backpressured":        1,
		"test_logging_buffer_destroyed":            0,
	}
	for _, mf := range families {
		expect, ok := want[mf.GetName()]
		if !ok {
			continue
		}
		delete(want, mf.GetName())
		m := mf.GetMetric()[0]
		got := m.GetCounter().GetValue() + m.GetGauge().GetValue()
		if got != expect {
			t.Errorf("%s = %v, want %v", mf.GetName(), got, expect)
		}
	}
	if len(want) != 0 {
		t.Errorf("missing metric families: %v", want)
	}
}

func TestCollector_WatchBufferOnce(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.WatchBuffer(fakeSource{})
	// A second registration must not panic with duplicate collectors.
	collector.WatchBuffer(fakeSource{})
	collector.WatchBuffer(nil)
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.Hook().Run(nil, zerolog.InfoLevel, "")

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "test_logging_records_total") {
		t.Errorf("exposition missing records_total:\n%s", body)
	}
}
