package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates host metrics for export via /metrics.
type Metrics struct {
	RenderCycles     prometheus.Counter
	RenderDuration   prometheus.Histogram
	EditsEmitted     prometheus.Counter
	EventsDispatched prometheus.Counter
	EventsDropped    prometheus.Counter
	BytesSent        prometheus.Counter
	ActiveSessions   prometheus.Gauge
}

// NewMetrics registers the host metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RenderCycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "loom_render_cycles_total",
			Help: "Completed diff-and-apply render cycles.",
		}),
		RenderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "loom_render_duration_seconds",
			Help:    "Wall time of one render cycle, including encode and send.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		EditsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "loom_edits_emitted_total",
			Help: "Edit-script entries sent to clients.",
		}),
		EventsDispatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "loom_events_dispatched_total",
			Help: "Client events dispatched to a live handle.",
		}),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "loom_events_dropped_total",
			Help: "Client events that resolved to no live handle.",
		}),
		BytesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "loom_bytes_sent_total",
			Help: "Bytes written to WebSocket clients.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "loom_active_sessions",
			Help: "Currently connected sessions.",
		}),
	}
}
