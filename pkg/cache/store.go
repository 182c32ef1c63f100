package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/f1dash/f1-data-service/pkg/logging"
)

// TTLState classifies the result of a TTL lookup.
type TTLState int

const (
	// TTLSet means the key exists and carries an expiry.
	TTLSet TTLState = iota

	// TTLNone means the key exists without an expiry.
	TTLNone

	// TTLMissing means the key is absent, or the store was unreachable.
	TTLMissing
)

// Store is a thin persistent key/value store on Redis.
//
// All operations degrade on connectivity failure instead of returning
// errors: Get reports a miss, Set reports failure. The service stays
// correct-but-uncached when Redis is down.
type Store struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewStore creates a cache store with a Redis backend. The Redis client
// is injected and its lifecycle belongs to the caller.
func NewStore(redisClient *redis.Client) *Store {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &Store{
		redis:  redisClient,
		logger: logging.NewLogger("cache"),
	}
}

// Get retrieves the encoded value for key. The second return value is
// false on a miss or when the store is unreachable.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			CacheErrors.WithLabelValues("get").Inc()
			s.logger.Warn().Err(err).Str("key", key).Msg("Cache get failed, treating as miss")
		}
		CacheMisses.Inc()
		return "", false
	}

	CacheHits.WithLabelValues("redis").Inc()
	return val, true
}

// Set stores an encoded value under key with the given TTL. Writes with
// a non-positive TTL are rejected. Returns false on failure; callers
// ignore failures because the store already degrades safely.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if ttl <= 0 {
		s.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("Rejecting write with non-positive TTL")
		return false
	}

	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache set failed")
		return false
	}

	s.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("Cached value")
	return true
}

// Delete removes a key. Returns true if the key existed.
func (s *Store) Delete(ctx context.Context, key string) bool {
	n, err := s.redis.Del(ctx, key).Result()
	if err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache delete failed")
		return false
	}
	return n > 0
}

// DeleteMatching removes every key matching the glob pattern and returns
// the number of keys deleted.
func (s *Store) DeleteMatching(ctx context.Context, pattern string) int {
	keys := s.scanKeys(ctx, pattern)
	if len(keys) == 0 {
		return 0
	}

	n, err := s.redis.Del(ctx, keys...).Result()
	if err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		s.logger.Warn().Err(err).Str("pattern", pattern).Msg("Cache pattern delete failed")
		return 0
	}
	return int(n)
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) bool {
	n, err := s.redis.Exists(ctx, key).Result()
	if err != nil {
		CacheErrors.WithLabelValues("exists").Inc()
		return false
	}
	return n > 0
}

// TTLRemaining returns the remaining lifetime of key and its TTL state.
// The duration is only meaningful when the state is TTLSet.
func (s *Store) TTLRemaining(ctx context.Context, key string) (time.Duration, TTLState) {
	d, err := s.redis.TTL(ctx, key).Result()
	if err != nil {
		CacheErrors.WithLabelValues("ttl").Inc()
		return 0, TTLMissing
	}

	// go-redis passes through the Redis sentinels -1 (no expiry) and
	// -2 (absent) as raw negative durations.
	switch {
	case d == time.Duration(-2):
		return 0, TTLMissing
	case d == time.Duration(-1):
		return 0, TTLNone
	case d < 0:
		return 0, TTLMissing
	default:
		return d, TTLSet
	}
}

// scanKeys collects all keys matching pattern using SCAN, so large
// namespaces don't block Redis the way KEYS would.
func (s *Store) scanKeys(ctx context.Context, pattern string) []string {
	var keys []string
	iter := s.redis.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		CacheErrors.WithLabelValues("scan").Inc()
		s.logger.Warn().Err(err).Str("pattern", pattern).Msg("Cache scan failed")
		return nil
	}
	return keys
}
