// Package metrics provides Prometheus instrumentation for Lantern loggers.
//
// The package exposes a Collector that owns a prometheus.Registry and
// registers two groups of metrics:
//
//   - Record metrics: counts of emitted log records by level, fed by a
//     zerolog hook installed on the logger.
//   - Buffer metrics: gauges and counters derived from the async write
//     buffer (dropped records, drain timeouts, backpressure state),
//     sampled lazily at scrape time from a BufferSource.
//
// Typical usage:
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	log, err := logger.New(logger.Config{
//		Service: "billing",
//		Hooks:   []zerolog.Hook{collector.Hook()},
//	})
//	collector.WatchBuffer(log)
//	http.Handle("/metrics", collector.Handler())
//
// All metrics are namespaced according to MetricsConfig (default
// "lantern"). The collector is safe for concurrent use.
package metrics
