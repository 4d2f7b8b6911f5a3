package database

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gateway's Prometheus collectors.
type Metrics struct {
	// AcquireAttempts counts every single acquisition attempt, retries included.
	AcquireAttempts prometheus.Counter

	// AcquireRetries counts attempts scheduled after a transient failure.
	AcquireRetries prometheus.Counter

	// AcquireFailures counts acquisitions that gave up, labeled by reason
	// (exhausted, unavailable, cancelled, other).
	AcquireFailures *prometheus.CounterVec

	// AcquireWait observes how long each attempt waited on the pool, in seconds.
	AcquireWait prometheus.Histogram
}

// NewMetrics creates the gateway collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AcquireAttempts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "liga",
			Subsystem: "db",
			Name:      "acquire_attempts_total",
			Help:      "Connection acquisition attempts, retries included.",
		}),
		AcquireRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "liga",
			Subsystem: "db",
			Name:      "acquire_retries_total",
			Help:      "Acquisition retries after a transient failure.",
		}),
		AcquireFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liga",
			Subsystem: "db",
			Name:      "acquire_failures_total",
			Help:      "Acquisitions that gave up, by reason.",
		}, []string{"reason"}),
		AcquireWait: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "liga",
			Subsystem: "db",
			Name:      "acquire_wait_seconds",
			Help:      "Time spent waiting on the pool per attempt.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
	}
}

// RegisterPoolStats exposes the gateway's pool statistics as gauges.
func (g *Gateway) RegisterPoolStats(reg prometheus.Registerer) error {
	gauges := []struct {
		name string
		help string
		read func(PoolStats) int32
	}{
		{"pool_total_conns", "Connections currently open.", func(s PoolStats) int32 { return s.TotalConns }},
		{"pool_acquired_conns", "Connections checked out.", func(s PoolStats) int32 { return s.AcquiredConns }},
		{"pool_idle_conns", "Idle connections.", func(s PoolStats) int32 { return s.IdleConns }},
		{"pool_constructing_conns", "Connections being established.", func(s PoolStats) int32 { return s.ConstructingConns }},
		{"pool_max_conns", "Pool size plus overflow.", func(s PoolStats) int32 { return s.MaxConns }},
	}

	for _, gauge := range gauges {
		read := gauge.read
		collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "liga",
			Subsystem: "db",
			Name:      gauge.name,
			Help:      gauge.help,
		}, func() float64 {
			return float64(read(g.source.Stat()))
		})
		if err := reg.Register(collector); err != nil {
			return err
		}
	}

	return nil
}
