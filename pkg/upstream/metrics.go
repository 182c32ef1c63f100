// Package upstream holds shared instrumentation for the provider clients.
package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks upstream requests by provider and outcome.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "f1_upstream_requests_total",
		Help: "Total upstream provider requests by provider and status",
	}, []string{"provider", "status"})

	// RequestDuration tracks upstream request duration by provider.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "f1_upstream_request_duration_seconds",
		Help:    "Upstream provider request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"provider"})
)
