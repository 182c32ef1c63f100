// Package ergast is the client for the standings provider, an
// Ergast-compatible JSON API. Raw provider records are parsed into typed
// snapshots here; loosely-typed payloads never leave this package.
package ergast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/f1dash/f1-data-service/pkg/logging"
	"github.com/f1dash/f1-data-service/pkg/upstream"
)

// ErrNoData indicates the provider was reached but returned no standings
// for the requested year/round.
var ErrNoData = errors.New("no standings data")

// StatusError is returned for non-200 provider responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("standings provider returned status %d for %s", e.StatusCode, e.URL)
}

// Entry is one parsed standings row.
type Entry struct {
	// Position in the table, 1-based. The provider guarantees a total
	// order, so positions are unique.
	Position int

	// EntrantID is the provider's stable identity key (driverId or
	// constructorId). Display names are not stable across rounds, so
	// delta computation must use this.
	EntrantID string

	// Name is the display name.
	Name string

	// Points is the cumulative points total.
	Points float64
}

// Snapshot is a parsed standings table for one (year, round).
type Snapshot struct {
	Year  int
	Round int

	// RaceName is the name of the race the table is current as of.
	// Empty when the provider omits it.
	RaceName string

	Entries []Entry
}

// Client talks to the standings provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a standings provider client. The timeout bounds each
// request; the provider is treated as a black box.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewLogger("ergast"),
	}
}

// DriverStandings fetches the driver standings for (year, round).
// Pass round 0 to fetch the latest known round of the season; the
// returned snapshot carries the round the provider resolved.
func (c *Client) DriverStandings(ctx context.Context, year, round int) (*Snapshot, error) {
	return c.standings(ctx, year, round, "driverStandings")
}

// ConstructorStandings fetches the constructor standings for (year,
// round). Round 0 resolves to the latest known round.
func (c *Client) ConstructorStandings(ctx context.Context, year, round int) (*Snapshot, error) {
	return c.standings(ctx, year, round, "constructorStandings")
}

// LatestRound resolves the most recent round of a season by asking for
// standings without a round filter and reading back the round the
// provider reports.
func (c *Client) LatestRound(ctx context.Context, year int) (int, error) {
	snap, err := c.DriverStandings(ctx, year, 0)
	if err != nil {
		return 0, err
	}
	return snap.Round, nil
}

func (c *Client) standings(ctx context.Context, year, round int, resource string) (*Snapshot, error) {
	var url string
	if round > 0 {
		url = fmt.Sprintf("%s/%d/%d/%s.json", c.baseURL, year, round, resource)
	} else {
		url = fmt.Sprintf("%s/%d/%s.json", c.baseURL, year, resource)
	}

	var payload standingsResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	lists := payload.MRData.StandingsTable.StandingsLists
	if len(lists) == 0 {
		return nil, fmt.Errorf("%w: %s %d round %d", ErrNoData, resource, year, round)
	}

	return parseSnapshot(lists[0], resource)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	start := time.Now()
	defer func() {
		upstream.RequestDuration.WithLabelValues("ergast").Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstream.RequestsTotal.WithLabelValues("ergast", "network_error").Inc()
		c.logger.Error().Err(err).Str("url", url).Msg("Standings provider request failed")
		return fmt.Errorf("standings provider request: %w", err)
	}
	defer resp.Body.Close()

	upstream.RequestsTotal.WithLabelValues("ergast", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("Standings provider returned error status")
		return &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode standings provider response: %w", err)
	}
	return nil
}

// Wire types for the provider's MRData envelope. Numeric fields arrive
// as strings and are parsed fallibly below.

type standingsResponse struct {
	MRData struct {
		StandingsTable struct {
			StandingsLists []standingsList `json:"StandingsLists"`
		} `json:"StandingsTable"`
	} `json:"MRData"`
}

type standingsList struct {
	Season               string                `json:"season"`
	Round                string                `json:"round"`
	RaceName             string                `json:"raceName"`
	DriverStandings      []driverStanding      `json:"DriverStandings"`
	ConstructorStandings []constructorStanding `json:"ConstructorStandings"`
}

type driverStanding struct {
	Position string `json:"position"`
	Points   string `json:"points"`
	Driver   struct {
		DriverID   string `json:"driverId"`
		GivenName  string `json:"givenName"`
		FamilyName string `json:"familyName"`
	} `json:"Driver"`
}

type constructorStanding struct {
	Position    string `json:"position"`
	Points      string `json:"points"`
	Constructor struct {
		ConstructorID string `json:"constructorId"`
		Name          string `json:"name"`
	} `json:"Constructor"`
}

func parseSnapshot(list standingsList, resource string) (*Snapshot, error) {
	year, err := strconv.Atoi(list.Season)
	if err != nil {
		return nil, fmt.Errorf("parse season %q: %w", list.Season, err)
	}
	round, err := strconv.Atoi(list.Round)
	if err != nil {
		return nil, fmt.Errorf("parse round %q: %w", list.Round, err)
	}

	snap := &Snapshot{Year: year, Round: round, RaceName: list.RaceName}

	if resource == "driverStandings" {
		for _, s := range list.DriverStandings {
			entry, err := parseEntry(s.Position, s.Points, s.Driver.DriverID,
				s.Driver.GivenName+" "+s.Driver.FamilyName)
			if err != nil {
				return nil, err
			}
			snap.Entries = append(snap.Entries, entry)
		}
		return snap, nil
	}

	for _, s := range list.ConstructorStandings {
		entry, err := parseEntry(s.Position, s.Points, s.Constructor.ConstructorID, s.Constructor.Name)
		if err != nil {
			return nil, err
		}
		snap.Entries = append(snap.Entries, entry)
	}
	return snap, nil
}

func parseEntry(position, points, entrantID, name string) (Entry, error) {
	pos, err := strconv.Atoi(position)
	if err != nil {
		return Entry{}, fmt.Errorf("parse position %q: %w", position, err)
	}
	pts, err := strconv.ParseFloat(points, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parse points %q: %w", points, err)
	}
	return Entry{Position: pos, EntrantID: entrantID, Name: name, Points: pts}, nil
}
