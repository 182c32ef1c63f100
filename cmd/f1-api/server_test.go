package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/f1dash/f1-data-service/internal/testutil"
	"github.com/f1dash/f1-data-service/pkg/cache"
	"github.com/f1dash/f1-data-service/pkg/service"
	"github.com/f1dash/f1-data-service/pkg/upstream/ergast"
	"github.com/f1dash/f1-data-service/pkg/upstream/sessions"
)

// newTestHandler wires the HTTP surface against mock providers and an
// unreachable cache store.
func newTestHandler(t *testing.T) (http.Handler, *testutil.MockProvider, *testutil.MockProvider) {
	t.Helper()

	standings := testutil.NewMockProvider()
	t.Cleanup(standings.Close)
	sess := testutil.NewMockProvider()
	t.Cleanup(sess.Close)

	store := cache.NewStore(redis.NewClient(&redis.Options{
		Addr:        "localhost:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))

	svc := service.New(service.Config{
		Store:     store,
		Standings: ergast.NewClient(standings.URL(), 5*time.Second),
		Sessions:  sessions.NewClient(sess.URL(), 5*time.Second),
	})

	return newServer(svc).routes(), standings, sess
}

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestYearsEndpoint(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/years")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var years []int
	if err := json.Unmarshal(rec.Body.Bytes(), &years); err != nil {
		t.Fatalf("response is not a JSON year list: %v", err)
	}
	if len(years) == 0 || years[0] != 2023 {
		t.Errorf("years = %v", years)
	}
}

func TestErrorMapping(t *testing.T) {
	handler, _, sess := newTestHandler(t)

	// A real schedule so round lookups reach the results stage.
	sess.Respond("/schedule/2026", `{"events":[
		{"round":1,"name":"Bahrain Grand Prix","location":"Sakhir","country":"Bahrain",
		 "circuit":"Bahrain International Circuit","date":"2026-03-08T00:00:00Z",
		 "format":"Conventional","sessions":[{"code":"R","start":"2026-03-08T15:00:00Z"}]}
	]}`)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "malformed year query", target: "/api/schedule?year=abc", want: http.StatusBadRequest},
		{name: "malformed round path", target: "/api/races/2026/x/results", want: http.StatusBadRequest},
		{name: "year out of range", target: "/api/races/1899/1/results", want: http.StatusBadRequest},
		{name: "invalid practice session", target: "/api/races/2026/1/practice?session=R", want: http.StatusBadRequest},
		{name: "no result data", target: "/api/races/2026/1/results", want: http.StatusNotFound},
		{name: "unknown route", target: "/api/nope", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodGet, tt.target)
			if rec.Code != tt.want {
				t.Errorf("GET %s = %d, want %d", tt.target, rec.Code, tt.want)
			}
		})
	}
}

func TestUpstreamDownMapsToBadGateway(t *testing.T) {
	handler, _, sess := newTestHandler(t)
	// Kill the sessions provider so the schedule fetch fails outright.
	sess.Close()

	rec := doRequest(t, handler, http.MethodGet, "/api/schedule?year=2026")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if payload["error"] == "" {
		t.Error("error body missing the error field")
	}
}

func TestScheduleEndpoint(t *testing.T) {
	handler, _, sess := newTestHandler(t)

	sess.Respond("/schedule/2026", `{"events":[
		{"round":1,"name":"Bahrain Grand Prix","location":"Sakhir","country":"Bahrain",
		 "circuit":"Bahrain International Circuit","date":"2026-03-08T00:00:00Z",
		 "format":"Conventional","sessions":[]}
	]}`)

	rec := doRequest(t, handler, http.MethodGet, "/api/schedule?year=2026")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var schedule struct {
		Year int `json:"year"`
		Data []struct {
			Round    int    `json:"round"`
			RaceName string `json:"race_name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &schedule); err != nil {
		t.Fatalf("decode schedule: %v", err)
	}
	if schedule.Year != 2026 || len(schedule.Data) != 1 || schedule.Data[0].RaceName != "Bahrain Grand Prix" {
		t.Errorf("schedule = %+v", schedule)
	}
}

func TestAdminEndpoints(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	// With the store unreachable both endpoints still answer, reporting
	// zeroes instead of errors.
	rec := doRequest(t, handler, http.MethodDelete, "/api/admin/cache")
	if rec.Code != http.StatusOK {
		t.Errorf("purge status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/admin/cache/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", rec.Code)
	}
	var stats struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("total = %d, want 0", stats.Total)
	}
}
