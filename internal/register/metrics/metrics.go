package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the registration pipeline.
type Metrics struct {
	RegistrationsTotal *prometheus.CounterVec
	RegisterDuration   prometheus.Histogram
	GameServerAttempts prometheus.Counter
	GameServerFailures *prometheus.CounterVec
	QueueFailures      prometheus.Counter
}

// New registers and returns registration metrics collectors.
func New() *Metrics {
	return &Metrics{
		RegistrationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "apifather_registrations_total",
			Help: "Registration attempts by outcome (ok or error kind)",
		}, []string{"outcome"}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "apifather_register_duration_seconds",
			Help:    "End-to-end registration pipeline latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		GameServerAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "apifather_game_server_attempts_total",
			Help: "ADDUSER commands sent to the legacy game server",
		}),
		GameServerFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "apifather_game_server_failures_total",
			Help: "Failed ADDUSER outcomes by kind",
		}, []string{"kind"}),
		QueueFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "apifather_queue_failures_total",
			Help: "Registration events that could not be enqueued",
		}),
	}
}
