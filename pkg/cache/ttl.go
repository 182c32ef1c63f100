package cache

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/f1dash/f1-data-service/pkg/logging"
)

// Fixed TTLs per resource kind. Completed artifacts are immutable, so
// they get a long sanity cap rather than an accuracy-driven expiry.
const (
	// TTLCompleted covers race/qualifying/practice results and
	// highlights of completed sessions.
	TTLCompleted = 30 * 24 * time.Hour

	// TTLSchedule covers season schedules and the available-years list.
	TTLSchedule = 7 * 24 * time.Hour

	// TTLSessionWindow covers session start-time computations; published
	// start times receive minor corrections.
	TTLSessionWindow = time.Hour

	// TTLCircuit covers circuit information, which changes roughly never.
	TTLCircuit = 365 * 24 * time.Hour
)

// Clamp bounds for the dynamic until-next-event TTL.
const (
	minEventTTL = time.Hour
	maxEventTTL = 7 * 24 * time.Hour
)

// EventSource yields the event start dates of a season, in any order.
type EventSource interface {
	EventDates(ctx context.Context, year int) ([]time.Time, error)
}

// TTLPolicy computes cache expiry from domain state. Artifacts about
// future events go stale the moment the next event starts; rather than a
// fixed constant, the policy expires them at that date.
type TTLPolicy struct {
	events EventSource
	now    func() time.Time
	logger zerolog.Logger
}

// NewTTLPolicy creates a TTL policy backed by the given event source.
func NewTTLPolicy(events EventSource) *TTLPolicy {
	return &TTLPolicy{
		events: events,
		now:    time.Now,
		logger: logging.NewLogger("ttl-policy"),
	}
}

// UntilNextEvent returns the time until the next event of the season
// starts, clamped to [1 hour, 1 week]. When the season has no remaining
// events it looks at next year's first event; when the lookup fails or
// nothing is found it falls back to 1 week. It never returns an error.
func (p *TTLPolicy) UntilNextEvent(ctx context.Context, year int) time.Duration {
	now := p.now()

	next, ok := p.nextEventAfter(ctx, year, now)
	if !ok {
		next, ok = p.nextEventAfter(ctx, year+1, now)
	}
	if !ok {
		p.logger.Debug().Int("year", year).Msg("No upcoming event found, using 1-week TTL")
		return maxEventTTL
	}

	ttl := next.Sub(now)
	if ttl < minEventTTL {
		return minEventTTL
	}
	if ttl > maxEventTTL {
		return maxEventTTL
	}
	return ttl
}

// nextEventAfter finds the first event of the season starting strictly
// after now. Dates are unique per event, so no tie-break is needed.
func (p *TTLPolicy) nextEventAfter(ctx context.Context, year int, now time.Time) (time.Time, bool) {
	dates, err := p.events.EventDates(ctx, year)
	if err != nil {
		p.logger.Warn().Err(err).Int("year", year).Msg("Event date lookup failed for TTL computation")
		return time.Time{}, false
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	for _, d := range sorted {
		if d.After(now) {
			return d, true
		}
	}
	return time.Time{}, false
}
