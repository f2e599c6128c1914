package metrics

import (
	"sync"

	"helios-hq/lantern/pkg/config"
	"helios-hq/lantern/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// BufferSource exposes a snapshot of async write-buffer state. It is
// satisfied by *logger.Logger.
type BufferSource interface {
	BufferMetrics() logger.BufferMetrics
}

// Collector owns a Prometheus registry and the Lantern metric families.
//
// Record counts are fed synchronously through the zerolog hook returned by
// Hook. Buffer state (dropped records, drain timeouts, backpressure) is
// read lazily at scrape time from the BufferSource registered with
// WatchBuffer, so scrapes observe the buffer without adding work to the
// logging hot path.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	recordsTotal *prometheus.CounterVec

	mu      sync.Mutex
	watched bool
}

// NewCollector creates a metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "lantern"
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "records_total",
				Help:      "Total number of log records emitted, by level",
			},
			[]string{"level"},
		),
	}

	registry.MustRegister(c.recordsTotal)
	return c
}

// Registry returns the underlying Prometheus registry, for callers that
// want to register their own metrics alongside the logger's.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Hook returns a zerolog hook that counts emitted records by level. Install
// it through logger.Config.Hooks so only records that pass level filtering
// are counted.
func (c *Collector) Hook() zerolog.Hook {
	return recordCountHook{records: c.recordsTotal}
}

// WatchBuffer registers scrape-time collectors over src's buffer snapshot.
// Dropped and drain-timeout counts are exported as counters; backpressure
// and destroyed state as 0/1 gauges. Subsequent calls are no-ops: a
// collector watches at most one source.
func (c *Collector) WatchBuffer(src BufferSource) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watched || src == nil {
		return
	}
	c.watched = true

	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace: c.config.Namespace,
			Subsystem: c.config.Subsystem,
			Name:      name,
			Help:      help,
		}
	}

	c.registry.MustRegister(
		prometheus.NewCounterFunc(
			prometheus.CounterOpts(opts("buffer_dropped_total", "Total log records dropped by the async buffer under backpressure")),
			func() float64 { return float64(src.BufferMetrics().Dropped) },
		),
		prometheus.NewCounterFunc(
			prometheus.CounterOpts(opts("buffer_drain_timeouts_total", "Total shutdown drains that exceeded their deadline")),
			func() float64 { return float64(src.BufferMetrics().DrainTimeouts) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts(opts("buffer_backpressured", "Whether the async buffer dropped a record in the last observation window (0 or 1)")),
			func() float64 { return boolGauge(src.BufferMetrics().Backpressured) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts(opts("buffer_destroyed", "Whether the logger destination has been shut down (0 or 1)")),
			func() float64 { return boolGauge(src.BufferMetrics().Destroyed) },
		),
	)
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// recordCountHook increments the per-level record counter. It never touches
// the event itself.
type recordCountHook struct {
	records *prometheus.CounterVec
}

func (h recordCountHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel {
		return
	}
	h.records.WithLabelValues(level.String()).Inc()
}
