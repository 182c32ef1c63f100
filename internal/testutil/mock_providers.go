// Package testutil provides testing utilities for the F1 data service.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockProvider is a configurable mock upstream server. Both the
// standings provider and the sessions provider are plain JSON-over-HTTP,
// so one mock serves either role.
type MockProvider struct {
	server *httptest.Server

	mu        sync.RWMutex
	responses map[string]mockResponse
	counts    map[string]int

	// RequestCount is the total number of requests received.
	RequestCount int
}

type mockResponse struct {
	statusCode int
	body       string
}

// NewMockProvider creates a mock provider server. Unconfigured paths
// return 404.
func NewMockProvider() *MockProvider {
	mock := &MockProvider{
		responses: make(map[string]mockResponse),
		counts:    make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.counts[r.URL.Path]++
		resp, exists := mock.responses[r.URL.Path]
		mock.mu.Unlock()

		if !exists {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.statusCode)
		fmt.Fprint(w, resp.body)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockProvider) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockProvider) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.counts = make(map[string]int)
}

// CallCount returns how often a path was requested.
func (m *MockProvider) CallCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[path]
}

// Respond configures a 200 response for a path.
func (m *MockProvider) Respond(path, body string) {
	m.RespondStatus(path, http.StatusOK, body)
}

// RespondStatus configures an arbitrary response for a path.
func (m *MockProvider) RespondStatus(path string, statusCode int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = mockResponse{statusCode: statusCode, body: body}
}

// StandingRow is one row of a canned standings response.
type StandingRow struct {
	Position  int
	EntrantID string
	Name      string
	Points    float64
}

// DriverStandingsBody builds an Ergast-shaped driver standings payload.
func DriverStandingsBody(year, round int, rows []StandingRow) string {
	return DriverStandingsBodyForRace(year, round, "", rows)
}

// DriverStandingsBodyForRace is DriverStandingsBody with the standings
// list's raceName set.
func DriverStandingsBodyForRace(year, round int, raceName string, rows []StandingRow) string {
	var standings []string
	for _, row := range rows {
		given, family := splitName(row.Name)
		standings = append(standings, fmt.Sprintf(
			`{"position":"%d","points":"%g","Driver":{"driverId":"%s","givenName":"%s","familyName":"%s"}}`,
			row.Position, row.Points, row.EntrantID, given, family))
	}
	return standingsEnvelope(year, round, raceName, "DriverStandings", standings)
}

// ConstructorStandingsBody builds an Ergast-shaped constructor standings
// payload.
func ConstructorStandingsBody(year, round int, rows []StandingRow) string {
	var standings []string
	for _, row := range rows {
		standings = append(standings, fmt.Sprintf(
			`{"position":"%d","points":"%g","Constructor":{"constructorId":"%s","name":"%s"}}`,
			row.Position, row.Points, row.EntrantID, row.Name))
	}
	return standingsEnvelope(year, round, "", "ConstructorStandings", standings)
}

// EmptyStandingsBody builds an Ergast payload with no standings lists,
// as the provider returns for unknown rounds.
func EmptyStandingsBody() string {
	return `{"MRData":{"StandingsTable":{"StandingsLists":[]}}}`
}

func standingsEnvelope(year, round int, raceName, field string, standings []string) string {
	name := ""
	if raceName != "" {
		name = fmt.Sprintf(`"raceName":"%s",`, raceName)
	}
	return fmt.Sprintf(
		`{"MRData":{"StandingsTable":{"StandingsLists":[{"season":"%d","round":"%d",%s"%s":[%s]}]}}}`,
		year, round, name, field, strings.Join(standings, ","))
}

func splitName(name string) (given, family string) {
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}
