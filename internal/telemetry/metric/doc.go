// Package metric provides Prometheus metrics for Strand.
//
// Metrics include:
//
//   - connection counters and an active-connection gauge
//   - per-command request counters and latency histograms
//   - request-level and protocol-level error counters
//   - a table size gauge
//
// Metrics are exposed at /metrics in Prometheus format when the metrics
// listener is enabled.
package metric
