// Package metrics provides the centralized Prometheus registry reference
// for the F1 data service. All metrics are defined in their respective
// packages (cache, upstream) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the service.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - f1_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - f1_cache_misses_total (Counter): Cache misses
//   - f1_cache_errors_total{operation} (Counter): Cache operation errors
//   - f1_cache_corrupted_total (Counter): Entries failing both decode paths
//
// Upstream Metrics (pkg/upstream):
//   - f1_upstream_requests_total{provider, status} (Counter): Provider
//     requests by provider (ergast, sessions) and HTTP status
//   - f1_upstream_request_duration_seconds{provider} (Histogram):
//     Provider request duration
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(f1_cache_hits_total[5m])) /
//   (sum(rate(f1_cache_hits_total[5m])) + sum(rate(f1_cache_misses_total[5m])))
//
//   # Upstream Error Rate
//   rate(f1_upstream_requests_total{status!~"2.."}[5m])
//
//   # P95 Upstream Latency
//   histogram_quantile(0.95, rate(f1_upstream_request_duration_seconds_bucket[5m]))
