package simulator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the simulator's Prometheus collectors.
type Metrics struct {
	FeedEmitted prometheus.Counter
	FeedUnread  prometheus.Gauge
	RosterTicks prometheus.Counter
	RedisErrors *prometheus.CounterVec
}

// NewMetrics registers the simulator collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FeedEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "axero_feed_entries_emitted_total",
			Help: "Feed entries generated by the simulator.",
		}),
		FeedUnread: factory.NewGauge(prometheus.GaugeOpts{
			Name: "axero_feed_unread_entries",
			Help: "Unread entries currently held in the simulated feed.",
		}),
		RosterTicks: factory.NewCounter(prometheus.CounterOpts{
			Name: "axero_roster_ticks_total",
			Help: "Roster ticks applied.",
		}),
		RedisErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "axero_redis_write_errors_total",
			Help: "Failed Redis mirror writes, by operation.",
		}, []string{"op"}),
	}
}
