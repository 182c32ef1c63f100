package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/f1dash/f1-data-service/pkg/cache"
	"github.com/f1dash/f1-data-service/pkg/model"
	"github.com/f1dash/f1-data-service/pkg/upstream/sessions"
)

// RaceResults returns the full race classification for (year, round).
// Completed races are immutable, so the result caches for 30 days.
func (s *Service) RaceResults(ctx context.Context, year, round int) (*model.RaceResults, error) {
	if err := s.checkEventParams(year, round); err != nil {
		return nil, err
	}

	return readThrough(ctx, s, cache.RaceResultsKey(year, round), fixedTTL(cache.TTLCompleted),
		func(ctx context.Context) (*model.RaceResults, error) {
			event, err := s.eventByRound(ctx, year, round)
			if err != nil {
				return nil, err
			}

			rows, err := s.sessions.SessionResults(ctx, year, round, "R")
			if err != nil {
				return nil, mapUpstreamErr(err)
			}

			return &model.RaceResults{
				RaceInfo: raceInfoOf(event),
				Results:  transformRaceRows(rows),
			}, nil
		})
}

// QualifyingResults returns the qualifying classification with Q1/Q2/Q3
// segment bests.
func (s *Service) QualifyingResults(ctx context.Context, year, round int) ([]model.QualifyingEntry, error) {
	if err := s.checkEventParams(year, round); err != nil {
		return nil, err
	}

	return readThrough(ctx, s, cache.QualifyingKey(year, round), fixedTTL(cache.TTLCompleted),
		func(ctx context.Context) ([]model.QualifyingEntry, error) {
			rows, err := s.sessions.SessionResults(ctx, year, round, "Q")
			if err != nil {
				return nil, mapUpstreamErr(err)
			}

			return lo.Map(rows, func(row sessions.ResultRow, _ int) model.QualifyingEntry {
				return model.QualifyingEntry{
					Position: row.Position,
					Driver:   row.Driver,
					Team:     row.Team,
					Q1:       formatOptLap(row.Q1Seconds),
					Q2:       formatOptLap(row.Q2Seconds),
					Q3:       formatOptLap(row.Q3Seconds),
					Laps:     row.Laps,
				}
			}), nil
		})
}

// PracticeResults returns a practice or sprint-qualifying session ranked
// by best lap with gaps to the overall fastest. Session S is a race-like
// classification; use SprintResults for it.
func (s *Service) PracticeResults(ctx context.Context, year, round int, session string) ([]model.PracticeEntry, error) {
	if err := s.checkEventParams(year, round); err != nil {
		return nil, err
	}
	switch session {
	case "FP1", "FP2", "FP3", "SQ":
	default:
		return nil, invalidParamf("session %q is not a practice session", session)
	}

	return readThrough(ctx, s, cache.PracticeKey(year, round, session), fixedTTL(cache.TTLCompleted),
		func(ctx context.Context) ([]model.PracticeEntry, error) {
			rows, err := s.sessions.SessionResults(ctx, year, round, session)
			if err != nil {
				return nil, mapUpstreamErr(err)
			}

			// Overall fastest lap of the session sets the gap baseline.
			var fastest *float64
			for _, row := range rows {
				if row.BestLapSeconds == nil {
					continue
				}
				if fastest == nil || *row.BestLapSeconds < *fastest {
					fastest = row.BestLapSeconds
				}
			}

			return lo.Map(rows, func(row sessions.ResultRow, idx int) model.PracticeEntry {
				entry := model.PracticeEntry{
					// Practice rows carry no official position; the
					// provider's ordering is the ranking.
					Position: idx + 1,
					Driver:   row.Driver,
					Team:     row.Team,
					Time:     formatOptLap(row.BestLapSeconds),
					Laps:     row.Laps,
				}
				if row.BestLapSeconds != nil && fastest != nil && *row.BestLapSeconds > *fastest {
					if gap := model.FormatGap(*row.BestLapSeconds - *fastest); gap != "" {
						entry.Gap = &gap
					}
				}
				return entry
			}), nil
		})
}

// SprintResults returns the sprint classification. Sprints transform
// like races (gap reconstruction, points, status) and share the practice
// key namespace under session code S.
func (s *Service) SprintResults(ctx context.Context, year, round int) ([]model.RaceResultEntry, error) {
	if err := s.checkEventParams(year, round); err != nil {
		return nil, err
	}

	return readThrough(ctx, s, cache.PracticeKey(year, round, "S"), fixedTTL(cache.TTLCompleted),
		func(ctx context.Context) ([]model.RaceResultEntry, error) {
			rows, err := s.sessions.SessionResults(ctx, year, round, "S")
			if err != nil {
				return nil, mapUpstreamErr(err)
			}
			return transformRaceRows(rows), nil
		})
}

// RaceSummary probes every possible session of a weekend and lists the
// ones with result data.
func (s *Service) RaceSummary(ctx context.Context, year, round int) (*model.RaceSummary, error) {
	if err := s.checkEventParams(year, round); err != nil {
		return nil, err
	}

	return readThrough(ctx, s, cache.SummaryKey(year, round), fixedTTL(cache.TTLSchedule),
		func(ctx context.Context) (*model.RaceSummary, error) {
			event, err := s.eventByRound(ctx, year, round)
			if err != nil {
				return nil, err
			}

			var available []model.SessionAvailable
			for _, code := range model.SessionCodes {
				// A probe failure means the session wasn't held or has
				// no data yet; skip it.
				if _, err := s.sessions.SessionResults(ctx, year, round, code); err != nil {
					continue
				}
				name := model.SessionName(code)
				available = append(available, model.SessionAvailable{
					Session: code,
					Name:    name,
					Key:     sessionKeyOf(name),
				})
			}

			return &model.RaceSummary{
				RaceInfo:          raceInfoOf(event),
				SessionsAvailable: available,
			}, nil
		})
}

// RaceHighlights returns the winner, pole position and fastest lap of a
// race weekend. Each section degrades independently: a failed sub-lookup
// leaves its section nil instead of failing the request.
func (s *Service) RaceHighlights(ctx context.Context, year, round int) (*model.RaceHighlights, error) {
	if err := s.checkEventParams(year, round); err != nil {
		return nil, err
	}

	return readThrough(ctx, s, cache.HighlightsKey(year, round), fixedTTL(cache.TTLCompleted),
		func(ctx context.Context) (*model.RaceHighlights, error) {
			highlights := &model.RaceHighlights{}

			raceRows, raceErr := s.sessions.SessionResults(ctx, year, round, "R")
			if raceErr != nil {
				s.logger.Warn().Err(raceErr).Int("year", year).Int("round", round).
					Msg("Race results unavailable for highlights")
			} else {
				highlights.RaceWinner = raceWinnerOf(raceRows)
				highlights.FastestLap = fastestLapOf(raceRows)
			}

			qualiRows, qualiErr := s.sessions.SessionResults(ctx, year, round, "Q")
			if qualiErr != nil {
				s.logger.Warn().Err(qualiErr).Int("year", year).Int("round", round).
					Msg("Qualifying results unavailable for highlights")
			} else {
				highlights.PolePosition = polePositionOf(qualiRows)
			}

			return highlights, nil
		})
}

func (s *Service) checkEventParams(year, round int) error {
	if !s.validYear(year) {
		return invalidParamf("year %d out of range", year)
	}
	if round < 1 {
		return invalidParamf("round %d out of range", round)
	}
	return nil
}

// transformRaceRows turns provider race rows into the domain model,
// applying the time display rules: the winner shows the full elapsed
// time with no gap; everyone else shows the gap to the winner and a
// reconstructed full time (winner time plus delta), because the provider
// only reports deltas for non-winners.
func transformRaceRows(rows []sessions.ResultRow) []model.RaceResultEntry {
	var winnerSeconds *float64
	for _, row := range rows {
		if row.Position != nil && *row.Position == 1 {
			winnerSeconds = row.TimeSeconds
			break
		}
	}

	return lo.Map(rows, func(row sessions.ResultRow, _ int) model.RaceResultEntry {
		entry := model.RaceResultEntry{
			Position: row.Position,
			Driver:   row.Driver,
			Team:     row.Team,
			Points:   row.Points,
			Status:   inferStatus(row),
			Laps:     row.Laps,
		}

		switch {
		case row.Position != nil && *row.Position == 1 && row.TimeSeconds != nil:
			entry.Time = model.FormatRaceTime(durationOf(*row.TimeSeconds))
		case row.Position != nil && *row.Position > 1 && row.TimeSeconds != nil:
			if gap := model.FormatGap(*row.TimeSeconds); gap != "" {
				entry.Gap = &gap
			}
			if winnerSeconds != nil {
				entry.Time = model.FormatRaceTime(durationOf(*winnerSeconds + *row.TimeSeconds))
			}
		}

		return entry
	})
}

// inferStatus preserves the upstream status whenever present. The blank
// fallback is a best-effort guess, not authoritative: classified inside
// the top 20 reads as Finished, everything else as DNF.
func inferStatus(row sessions.ResultRow) string {
	if row.Status != "" {
		return row.Status
	}
	if row.Position != nil && *row.Position <= 20 {
		return "Finished"
	}
	return "DNF"
}

func raceWinnerOf(rows []sessions.ResultRow) *model.RaceWinner {
	for _, row := range rows {
		if row.Position == nil || *row.Position != 1 {
			continue
		}
		winner := &model.RaceWinner{DriverName: row.Driver}
		if row.TimeSeconds != nil {
			winner.RaceTime = model.FormatRaceTime(durationOf(*row.TimeSeconds))
		}
		return winner
	}
	return nil
}

// polePositionOf reads the pole sitter's best segment time, preferring
// Q3 over Q2 over Q1.
func polePositionOf(rows []sessions.ResultRow) *model.PolePosition {
	for _, row := range rows {
		if row.Position == nil || *row.Position != 1 {
			continue
		}
		pole := &model.PolePosition{DriverName: row.Driver}
		for _, segment := range []*float64{row.Q3Seconds, row.Q2Seconds, row.Q1Seconds} {
			if segment != nil {
				pole.QualifyingTime = model.FormatLapTime(durationOf(*segment))
				break
			}
		}
		return pole
	}
	return nil
}

func fastestLapOf(rows []sessions.ResultRow) *model.FastestLap {
	var best *sessions.ResultRow
	for i := range rows {
		row := &rows[i]
		if row.BestLapSeconds == nil {
			continue
		}
		if best == nil || *row.BestLapSeconds < *best.BestLapSeconds {
			best = row
		}
	}
	if best == nil {
		return nil
	}
	return &model.FastestLap{
		DriverName: best.Driver,
		LapNumber:  best.BestLapNumber,
		LapTime:    model.FormatLapTime(durationOf(*best.BestLapSeconds)),
	}
}

func formatOptLap(seconds *float64) *string {
	if seconds == nil {
		return nil
	}
	return model.FormatLapTime(durationOf(*seconds))
}

func durationOf(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// sessionKeyOf turns a display name into a stable lowercase key, e.g.
// "Sprint Qualifying" -> "sprint_qualifying".
func sessionKeyOf(name string) string {
	key := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r == ' ':
			key = append(key, '_')
		case r >= 'A' && r <= 'Z':
			key = append(key, r+('a'-'A'))
		default:
			key = append(key, r)
		}
	}
	return string(key)
}
