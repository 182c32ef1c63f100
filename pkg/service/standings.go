package service

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/f1dash/f1-data-service/pkg/cache"
	"github.com/f1dash/f1-data-service/pkg/model"
	"github.com/f1dash/f1-data-service/pkg/upstream/ergast"
)

// maxStandings bounds the table served to the dashboard.
const maxStandings = 10

// snapshotFetch fetches one standings snapshot; round 0 resolves to the
// latest round of the season.
type snapshotFetch func(ctx context.Context, year, round int) (*ergast.Snapshot, error)

// DriverStandings returns the ranked driver championship table for
// (year, round) with per-entrant position and points deltas against the
// previous round. Year 0 defaults to the current season; round 0
// resolves to the latest round the provider knows.
func (s *Service) DriverStandings(ctx context.Context, year, round int) (*model.Standings, error) {
	return s.standingsTable(ctx, year, round, cache.DriverStandingsKey, s.standings.DriverStandings)
}

// ConstructorStandings is the constructor variant of DriverStandings.
func (s *Service) ConstructorStandings(ctx context.Context, year, round int) (*model.Standings, error) {
	return s.standingsTable(ctx, year, round, cache.ConstructorStandingsKey, s.standings.ConstructorStandings)
}

func (s *Service) standingsTable(
	ctx context.Context,
	year, round int,
	keyFn func(year, round int) string,
	fetch snapshotFetch,
) (*model.Standings, error) {
	if year == 0 {
		year = s.currentYear()
	}
	if !s.validYear(year) {
		return nil, invalidParamf("year %d out of range", year)
	}
	if round < 0 {
		return nil, invalidParamf("round %d out of range", round)
	}

	if round == 0 {
		latest, err := s.standings.LatestRound(ctx, year)
		if err != nil {
			return nil, mapUpstreamErr(err)
		}
		round = latest
	}

	return readThrough(ctx, s, keyFn(year, round),
		func(ctx context.Context) time.Duration { return s.ttl.UntilNextEvent(ctx, year) },
		func(ctx context.Context) (*model.Standings, error) {
			return s.diffStandings(ctx, year, round, fetch)
		})
}

// diffStandings fetches the current snapshot and, for rounds past the
// first, the immediately-prior snapshot, then computes per-entrant
// deltas. Both snapshots are independent read-only fetches, so they are
// issued concurrently; the join waits for both before diffing.
//
// A previous-round failure degrades to default deltas rather than
// failing the request; a current-round failure is fatal. Any entrant
// without a previous entry (round 1, a degraded fetch, or a mid-season
// substitute) gets previous points zero, so the change equals the full
// total, and previous position equal to current, so the position delta
// is zero.
func (s *Service) diffStandings(
	ctx context.Context,
	year, round int,
	fetch snapshotFetch,
) (*model.Standings, error) {
	var current, previous *ergast.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := fetch(gctx, year, round)
		if err != nil {
			return mapUpstreamErr(err)
		}
		current = snap
		return nil
	})
	if round > 1 {
		g.Go(func() error {
			snap, err := fetch(gctx, year, round-1)
			if err != nil {
				s.logger.Warn().Err(err).
					Int("year", year).
					Int("round", round-1).
					Msg("Previous round standings unavailable, using default deltas")
				return nil
			}
			previous = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Top N by position ascending. The provider guarantees a total
	// order, so no tie-break is needed.
	entries := make([]ergast.Entry, len(current.Entries))
	copy(entries, current.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
	if len(entries) > maxStandings {
		entries = entries[:maxStandings]
	}

	// Previous-round lookups keyed on the stable entrant ID, never the
	// display name. With no previous snapshot the maps stay nil and
	// every entrant takes the defaults.
	var prevPoints map[string]float64
	var prevPositions map[string]int
	if previous != nil {
		prevPoints = lo.SliceToMap(previous.Entries, func(e ergast.Entry) (string, float64) {
			return e.EntrantID, e.Points
		})
		prevPositions = lo.SliceToMap(previous.Entries, func(e ergast.Entry) (string, int) {
			return e.EntrantID, e.Position
		})
	}

	table := lo.Map(entries, func(e ergast.Entry, _ int) model.StandingEntry {
		prevPts := prevPoints[e.EntrantID] // zero when absent

		prevPos, ok := prevPositions[e.EntrantID]
		if !ok {
			prevPos = e.Position // yields a zero delta
		}

		return model.StandingEntry{
			Position:      e.Position,
			Name:          e.Name,
			Points:        e.Points,
			PointsChange:  e.Points - prevPts,
			PositionDelta: prevPos - e.Position,
		}
	})

	return &model.Standings{
		Data: table,
		Meta: model.StandingsMeta{Year: year, Round: round, RaceName: current.RaceName},
	}, nil
}
