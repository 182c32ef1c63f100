package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/f1dash/f1-data-service/pkg/cache"
	"github.com/f1dash/f1-data-service/pkg/model"
	"github.com/f1dash/f1-data-service/pkg/upstream/sessions"
)

// firstYear is the earliest season exposed to the dashboard.
const firstYear = 2023

const dateLayout = "2006-01-02"

// AvailableYears returns the seasons the dashboard can select.
func (s *Service) AvailableYears(ctx context.Context) ([]int, error) {
	return readThrough(ctx, s, cache.AvailableYearsKey(), fixedTTL(cache.TTLSchedule),
		func(context.Context) ([]int, error) {
			years := make([]int, 0, s.currentYear()-firstYear+1)
			for y := firstYear; y <= s.currentYear(); y++ {
				years = append(years, y)
			}
			return years, nil
		})
}

// Schedule returns the full season schedule, ordered by round. Year 0
// defaults to the current season.
func (s *Service) Schedule(ctx context.Context, year int) (*model.Schedule, error) {
	if year == 0 {
		year = s.currentYear()
	}
	if !s.validYear(year) {
		return nil, invalidParamf("year %d out of range", year)
	}

	return readThrough(ctx, s, cache.ScheduleKey(year), fixedTTL(cache.TTLSchedule),
		func(ctx context.Context) (*model.Schedule, error) {
			events, err := s.sessions.Schedule(ctx, year)
			if err != nil {
				return nil, mapUpstreamErr(err)
			}

			entries := lo.Map(events, func(ev sessions.Event, _ int) model.ScheduleEntry {
				format := ev.Format
				if format == "" {
					format = "Conventional"
				}
				return model.ScheduleEntry{
					Round:    ev.Round,
					RaceName: ev.Name,
					Location: ev.Location,
					Country:  ev.Country,
					Date:     ev.Date.Format(dateLayout),
					Format:   format,
				}
			})
			return &model.Schedule{Year: year, Data: entries}, nil
		})
}

// NextRace returns the first event with a date strictly in the future.
// Not cached: it reads through the cached schedule anyway.
func (s *Service) NextRace(ctx context.Context, year int) (*model.NextRace, error) {
	if year == 0 {
		year = s.currentYear()
	}

	schedule, err := s.Schedule(ctx, year)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, entry := range schedule.Data {
		date, err := time.Parse(dateLayout, entry.Date)
		if err != nil {
			continue
		}
		if date.After(now) {
			return &model.NextRace{
				RaceName: entry.RaceName,
				Date:     entry.Date,
				Location: entry.Location,
				Country:  entry.Country,
			}, nil
		}
	}
	return nil, mapNoData("no upcoming races in %d", year)
}

// WeekendSchedule returns the detailed session schedule of one race
// weekend with per-session status. Round 0 resolves to the next upcoming
// event, falling back to the season's last event.
func (s *Service) WeekendSchedule(ctx context.Context, year, round int) (*model.WeekendSchedule, error) {
	year, round, err := s.resolveEvent(ctx, year, round)
	if err != nil {
		return nil, err
	}

	return readThrough(ctx, s, cache.WeekendScheduleKey(year, round), fixedTTL(cache.TTLSessionWindow),
		func(ctx context.Context) (*model.WeekendSchedule, error) {
			event, err := s.eventByRound(ctx, year, round)
			if err != nil {
				return nil, err
			}

			now := s.now()
			windows := make([]model.SessionWindow, 0, len(event.Sessions))
			for _, sess := range event.Sessions {
				end := sess.Start.Add(model.SessionDuration(sess.Code))
				windows = append(windows, model.SessionWindow{
					Name:            model.SessionName(sess.Code),
					Code:            sess.Code,
					Date:            sess.Start.Format(dateLayout),
					Time:            sess.Start.Format("15:04"),
					Start:           sess.Start,
					End:             end,
					EndTime:         end.Format("15:04"),
					Status:          model.StatusAt(sess.Start, end, now),
					DurationMinutes: int(model.SessionDuration(sess.Code).Minutes()),
				})
			}

			return &model.WeekendSchedule{
				RaceInfo: raceInfoOf(event),
				Sessions: windows,
				Circuit: model.CircuitInfo{
					Name:     event.Circuit,
					Location: event.Location,
					Country:  event.Country,
				},
			}, nil
		})
}

// resolveEvent applies the year default and resolves a missing round to
// the next upcoming event (event date on or after today), else the last
// event of the season.
func (s *Service) resolveEvent(ctx context.Context, year, round int) (int, int, error) {
	if year == 0 {
		year = s.currentYear()
	}
	if !s.validYear(year) {
		return 0, 0, invalidParamf("year %d out of range", year)
	}
	if round > 0 {
		return year, round, nil
	}

	events, err := s.sessions.Schedule(ctx, year)
	if err != nil {
		return 0, 0, mapUpstreamErr(err)
	}

	today := s.now().Truncate(24 * time.Hour)
	for _, ev := range events {
		if !ev.Date.Before(today) {
			return year, ev.Round, nil
		}
	}
	return year, events[len(events)-1].Round, nil
}

// eventByRound finds one event in the season schedule.
func (s *Service) eventByRound(ctx context.Context, year, round int) (*sessions.Event, error) {
	events, err := s.sessions.Schedule(ctx, year)
	if err != nil {
		return nil, mapUpstreamErr(err)
	}

	ev, ok := lo.Find(events, func(ev sessions.Event) bool { return ev.Round == round })
	if !ok {
		return nil, mapNoData("no event for %d round %d", year, round)
	}
	return &ev, nil
}

func raceInfoOf(event *sessions.Event) model.RaceInfo {
	official := event.OfficialName
	if official == "" {
		official = event.Name
	}
	return model.RaceInfo{
		Round:        event.Round,
		RaceName:     event.Name,
		Location:     event.Location,
		Country:      event.Country,
		Date:         event.Date.Format(dateLayout),
		OfficialName: official,
	}
}

// scheduleEventSource feeds the TTL policy with event dates via the
// cached schedule fetcher.
type scheduleEventSource struct {
	s *Service
}

func (src scheduleEventSource) EventDates(ctx context.Context, year int) ([]time.Time, error) {
	schedule, err := src.s.Schedule(ctx, year)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(schedule.Data))
	for _, entry := range schedule.Data {
		d, err := time.Parse(dateLayout, entry.Date)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}
