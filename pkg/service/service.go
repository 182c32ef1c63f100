// Package service implements the read-through fetchers of the F1 data
// service: check cache, on miss call the upstream provider, transform
// into the typed domain model, write through with a policy-computed TTL,
// return. Callers are oblivious to hit or miss.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/f1dash/f1-data-service/pkg/cache"
	"github.com/f1dash/f1-data-service/pkg/logging"
	"github.com/f1dash/f1-data-service/pkg/upstream/ergast"
	"github.com/f1dash/f1-data-service/pkg/upstream/sessions"
)

// Earliest season the standings provider covers.
const minYear = 1950

// Service bundles the fetchers with their injected collaborators. All
// shared state (the store, the provider clients) is constructed at
// process start and passed in; there are no globals.
type Service struct {
	store     *cache.Store
	ttl       *cache.TTLPolicy
	standings *ergast.Client
	sessions  *sessions.Client
	logger    zerolog.Logger
	now       func() time.Time
}

// Config holds the collaborators of a Service.
type Config struct {
	Store     *cache.Store
	Standings *ergast.Client
	Sessions  *sessions.Client
}

// New creates a Service. The TTL policy reads event dates through the
// cached schedule fetcher, so computing a dynamic TTL rarely costs an
// extra upstream call.
func New(cfg Config) *Service {
	s := &Service{
		store:     cfg.Store,
		standings: cfg.Standings,
		sessions:  cfg.Sessions,
		logger:    logging.NewLogger("service"),
		now:       time.Now,
	}
	s.ttl = cache.NewTTLPolicy(scheduleEventSource{s})
	return s
}

// currentYear is the default season when a request names none.
func (s *Service) currentYear() int {
	return s.now().Year()
}

// validYear bounds requests to the provider's plausible range, allowing
// next year for future schedules.
func (s *Service) validYear(year int) bool {
	return year >= minYear && year <= s.currentYear()+1
}

// readThrough is the generic fetcher skeleton. On a hit the decoded
// value returns immediately with zero upstream calls. On a miss, fetch
// runs, the TTL is computed after the fetch succeeds, and the encoded
// value is written through; a failed write is ignored because the store
// degrades safely. Errors are never cached. A corrupted entry is logged
// and treated as a miss, to be overwritten by the write-through.
func readThrough[T any](
	ctx context.Context,
	s *Service,
	key string,
	ttl func(ctx context.Context) time.Duration,
	fetch func(ctx context.Context) (T, error),
) (T, error) {
	var zero T

	if encoded, ok := s.store.Get(ctx, key); ok {
		var v T
		if err := cache.Decode(encoded, &v); err == nil {
			s.logger.Debug().Str("key", key).Msg("Cache hit")
			return v, nil
		} else if errors.Is(err, cache.ErrCorruptedEntry) {
			s.logger.Warn().Err(err).Str("key", key).Msg("Corrupted cache entry, treating as miss")
		}
	}

	s.logger.Info().Str("key", key).Msg("Cache miss, fetching upstream")
	v, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	encoded, err := cache.Encode(v)
	if err != nil {
		// Should not happen for the typed models; serve the value anyway.
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to encode value for caching")
		return v, nil
	}

	d := ttl(ctx)
	if !s.store.Set(ctx, key, encoded, d) {
		s.logger.Debug().Str("key", key).Msg("Cache write-through failed, serving uncached")
	}
	return v, nil
}

// fixedTTL adapts a constant duration to the readThrough signature.
func fixedTTL(d time.Duration) func(context.Context) time.Duration {
	return func(context.Context) time.Duration { return d }
}

// PurgeCache deletes all keys under the known prefixes. Administrative.
func (s *Service) PurgeCache(ctx context.Context) int {
	return s.store.PurgeAll(ctx)
}

// CacheStats counts keys per known prefix. Administrative.
func (s *Service) CacheStats(ctx context.Context) cache.Stats {
	return s.store.CollectStats(ctx)
}
