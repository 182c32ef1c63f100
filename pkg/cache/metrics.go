package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by layer (redis)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f1_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"layer"}, // "redis"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "f1_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f1_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "exists", "ttl", "scan"
	)

	// CacheCorrupted tracks entries that failed both decode paths
	CacheCorrupted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "f1_cache_corrupted_total",
			Help: "Total number of cache entries that failed both decode paths",
		},
	)
)
