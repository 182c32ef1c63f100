// Package cache provides the Redis-backed read-through cache store for
// the F1 data service.
//
// The store is deliberately thin: string keys, encoded string values, a
// TTL per key. Redis owns expiry via SETEX; there is no eviction policy
// beyond that and no size bound.
//
// # Degrade-on-failure
//
// Every store operation absorbs connectivity failures instead of
// propagating them: Get reports a miss, Set reports failure, purge and
// stats report zero. Callers must never assume the cache is present;
// with Redis down the service stays correct but uncached.
//
// # Encoding
//
// Values are encoded with a JSON-first codec. Payloads that resist JSON
// fall back to gob wrapped in base64. Decode tries JSON first and then
// the fallback; a value that fails both is a corruption error and is
// treated as a miss by the fetchers, to be overwritten on the next
// write-through.
//
// # Keys
//
// Key strings are pure functions of resource kind and discriminating
// parameters and reproduce the namespace of existing deployments sharing
// the store (driver_standings_{year}_{round}, race_schedule_{year}, ...).
//
// # TTL policy
//
// Fixed TTLs cover immutable artifacts (results, 30 days) and slow-moving
// ones (schedule, 1 week; session windows, 1 hour). Standings use a
// dynamic TTL that expires at the next event's start date, clamped to
// [1 hour, 1 week], because that is the moment new data is published.
//
// # Metrics
//
// The store exports Prometheus metrics:
//
//   - f1_cache_hits_total{layer="redis"} - Cache hits
//   - f1_cache_misses_total - Cache misses
//   - f1_cache_errors_total{operation} - Cache operation errors
//   - f1_cache_corrupted_total - Entries that failed both decode paths
package cache
