package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RegistrationsTotal counts registration workflow outcomes.
	RegistrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campus",
		Name:      "registrations_total",
		Help:      "Registration workflow outcomes",
	}, []string{"outcome"})

	// ReconcilesTotal counts snapshot rebuilds.
	ReconcilesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "campus",
		Name:      "reconciles_total",
		Help:      "Full state reconciles performed",
	})

	// ChangeNotificationsTotal counts change feed deliveries by table.
	ChangeNotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campus",
		Name:      "change_notifications_total",
		Help:      "Change feed notifications received",
	}, []string{"table"})

	// HTTPRequestDuration observes request latency by route and status.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campus",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(
		RegistrationsTotal,
		ReconcilesTotal,
		ChangeNotificationsTotal,
		HTTPRequestDuration,
	)
}
