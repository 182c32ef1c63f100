package cache

import "context"

// Stats reports how many keys each known prefix currently holds.
type Stats struct {
	Prefixes map[string]int `json:"prefixes"`
	Total    int            `json:"total"`
}

// PurgeAll deletes every key under the known prefixes and returns the
// number of keys deleted. With the store unreachable it reports zero.
func (s *Store) PurgeAll(ctx context.Context) int {
	total := 0
	for _, prefix := range KnownPrefixes {
		total += s.DeleteMatching(ctx, prefix+"*")
	}
	s.logger.Info().Int("deleted", total).Msg("Purged cache")
	return total
}

// CollectStats counts keys per known prefix. With the store unreachable
// every count is zero rather than an error.
func (s *Store) CollectStats(ctx context.Context) Stats {
	stats := Stats{Prefixes: make(map[string]int, len(KnownPrefixes))}
	for _, prefix := range KnownPrefixes {
		n := len(s.scanKeys(ctx, prefix+"*"))
		stats.Prefixes[prefix] = n
		stats.Total += n
	}
	return stats
}
