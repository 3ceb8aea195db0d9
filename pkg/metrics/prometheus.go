package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightMutations  *prometheus.CounterVec
	BroadcastsSent   *prometheus.CounterVec
	BroadcastErrors  *prometheus.CounterVec
	BroadcastLatency prometheus.Histogram
	ConnectionsOpen  prometheus.Gauge
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FlightMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_mutations_total",
			Help:      "The total number of flight mutations by operation",
		}, []string{"operation"}),
		BroadcastsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_sent_total",
			Help:      "The total number of events broadcast by event name",
		}, []string{"event"}),
		BroadcastErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_errors_total",
			Help:      "The total number of swallowed broadcast failures",
		}, []string{"event"}),
		BroadcastLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "broadcast_fanout_seconds",
			Help:      "Time taken to fan an event out to the transport",
			Buckets:   prometheus.DefBuckets,
		}),
		ConnectionsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hub_connections_open",
			Help:      "The number of currently attached hub connections",
		}),
	}
}
