package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	sessions prometheus.Gauge
	events   *prometheus.CounterVec
	refresh  prometheus.Histogram
}

// newMetrics registers the server's collectors with reg. A nil reg creates
// unregistered collectors.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "wordgrid",
			Subsystem: "remote",
			Name:      "sessions",
			Help:      "Number of connected interactive sessions.",
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordgrid",
			Subsystem: "remote",
			Name:      "events_total",
			Help:      "Client events handled, by event name.",
		}, []string{"event"}),
		refresh: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wordgrid",
			Subsystem: "remote",
			Name:      "refresh_seconds",
			Help:      "Time spent re-evaluating a session.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
}
