package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics.
type Metrics struct {
	// ConnectionsTotal counts accepted connections.
	ConnectionsTotal prometheus.Counter
	// ConnectionsActive tracks currently open connections.
	ConnectionsActive prometheus.Gauge

	// CommandsTotal counts dispatched commands by name.
	CommandsTotal *prometheus.CounterVec
	// CommandDuration samples command execution latency by name.
	CommandDuration *prometheus.HistogramVec

	// RequestErrors counts request-level rejections (bad arguments,
	// unknown commands) that were reported to the client.
	RequestErrors prometheus.Counter
	// ProtocolErrors counts malformed requests that tore down their
	// connection.
	ProtocolErrors prometheus.Counter

	registry *prometheus.Registry
}

// New creates the metrics set on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		ConnectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "strand",
			Name:      "connections_total",
			Help:      "Accepted client connections.",
		}),
		ConnectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "strand",
			Name:      "connections_active",
			Help:      "Currently open client connections.",
		}),
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strand",
			Name:      "commands_total",
			Help:      "Dispatched commands by name.",
		}, []string{"command"}),
		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "strand",
			Name:      "command_duration_seconds",
			Help:      "Command execution latency by name.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"command"}),
		RequestErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "strand",
			Name:      "request_errors_total",
			Help:      "Requests rejected with an error reply.",
		}),
		ProtocolErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "strand",
			Name:      "protocol_errors_total",
			Help:      "Malformed requests that closed their connection.",
		}),
		registry: reg,
	}
}

// RegisterTableSize exposes the current number of table entries via the
// given callback.
func (m *Metrics) RegisterTableSize(size func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "strand",
		Name:      "table_entries",
		Help:      "Entries currently published in the table, expired or not.",
	}, func() float64 {
		return float64(size())
	}))
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
