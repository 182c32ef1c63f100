// Package sessions is the client for the event-schedule/session-results
// provider. It returns, per year, the ordered event list with per-session
// start timestamps, and per (year, round, session) the classified result
// rows. The provider is a black box; its records are parsed into typed
// structs here.
package sessions

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

// ErrNoData indicates the provider was reached but has no data for the
// requested resource (404, or an empty event/result list).
var ErrNoData = errors.New("no session data")

// StatusError is returned for unexpected provider status codes.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sessions provider returned status %d for %s", e.StatusCode, e.URL)
}

// Session is one scheduled session of an event.
type Session struct {
	// Code is one of FP1, FP2, FP3, SQ, S, Q, R.
	Code string `json:"code"`

	// Start is the officially published session start time.
	Start time.Time `json:"start"`
}

// Event is one event of a season schedule.
type Event struct {
	Round        int       `json:"round"`
	Name         string    `json:"name"`
	OfficialName string    `json:"official_name"`
	Location     string    `json:"location"`
	Country      string    `json:"country"`
	Circuit      string    `json:"circuit"`
	Date         time.Time `json:"date"`
	Format       string    `json:"format"`
	Sessions     []Session `json:"sessions"`
}

// ResultRow is one classified entry of a session result.
type ResultRow struct {
	// Position is nil for unclassified entries.
	Position *int `json:"position"`

	Driver     string `json:"driver"`
	DriverCode string `json:"driver_code"`
	Team       string `json:"team"`

	// Status is the official classification status; may be empty when
	// the provider has none.
	Status string  `json:"status"`
	Points float64 `json:"points"`
	Laps   int     `json:"laps"`

	// TimeSeconds is the full elapsed time for the winner and the delta
	// to the winner for everyone else. Nil when no time was recorded.
	TimeSeconds *float64 `json:"time_seconds"`

	// Qualifying segment bests, nil when the driver did not set a time.
	Q1Seconds *float64 `json:"q1_seconds"`
	Q2Seconds *float64 `json:"q2_seconds"`
	Q3Seconds *float64 `json:"q3_seconds"`

	// BestLapSeconds is the driver's fastest lap of the session.
	BestLapSeconds *float64 `json:"best_lap_seconds"`
	BestLapNumber  int      `json:"best_lap_number"`
}

// Client talks to the sessions provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a sessions provider client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewLogger("sessions"),
	}
}

// Schedule fetches the ordered event list for a season.
func (c *Client) Schedule(ctx context.Context, year int) ([]Event, error) {
	url := fmt.Sprintf("%s/schedule/%d", c.baseURL, year)

	var payload struct {
		Events []Event `json:"events"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload.Events) == 0 {
		return nil, fmt.Errorf("%w: schedule %d", ErrNoData, year)
	}
	return payload.Events, nil
}

// SessionResults fetches the classified result rows of one session.
// Rows arrive ordered by classification; for sessions without positions
// (practice) the order is by best lap.
func (c *Client) SessionResults(ctx context.Context, year, round int, code string) ([]ResultRow, error) {
	url := fmt.Sprintf("%s/results/%d/%d/%s", c.baseURL, year, round, code)

	var payload struct {
		Entries []ResultRow `json:"entries"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload.Entries) == 0 {
		return nil, fmt.Errorf("%w: %d round %d session %s", ErrNoData, year, round, code)
	}
	return payload.Entries, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	start := time.Now()
	defer func() {
		upstream.RequestDuration.WithLabelValues("sessions").Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstream.RequestsTotal.WithLabelValues("sessions", "network_error").Inc()
		c.logger.Error().Err(err).Str("url", url).Msg("Sessions provider request failed")
		return fmt.Errorf("sessions provider request: %w", err)
	}
	defer resp.Body.Close()

	upstream.RequestsTotal.WithLabelValues("sessions", strconv.Itoa(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNoData, url)
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("Sessions provider returned error status")
		return &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode sessions provider response: %w", err)
	}
	return nil
}
