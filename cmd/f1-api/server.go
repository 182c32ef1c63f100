package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/f1dash/f1-data-service/pkg/logging"
	"github.com/f1dash/f1-data-service/pkg/service"
)

// server is the thin HTTP boundary: path/query binding, typed-error to
// status-code mapping, nothing else. All semantics live in pkg/service.
type server struct {
	svc    *service.Service
	logger zerolog.Logger
}

func newServer(svc *service.Service) *server {
	return &server{
		svc:    svc,
		logger: logging.NewLogger("http"),
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/years", s.handleYears)
	mux.HandleFunc("GET /api/schedule", s.handleSchedule)
	mux.HandleFunc("GET /api/schedule/next", s.handleNextRace)
	mux.HandleFunc("GET /api/schedule/weekend", s.handleWeekendSchedule)
	mux.HandleFunc("GET /api/circuit", s.handleCircuitInfo)

	mux.HandleFunc("GET /api/standings/drivers", s.handleDriverStandings)
	mux.HandleFunc("GET /api/standings/constructors", s.handleConstructorStandings)

	mux.HandleFunc("GET /api/races/{year}/{round}/results", s.handleRaceResults)
	mux.HandleFunc("GET /api/races/{year}/{round}/qualifying", s.handleQualifying)
	mux.HandleFunc("GET /api/races/{year}/{round}/practice", s.handlePractice)
	mux.HandleFunc("GET /api/races/{year}/{round}/summary", s.handleSummary)
	mux.HandleFunc("GET /api/races/{year}/{round}/highlights", s.handleHighlights)

	mux.HandleFunc("DELETE /api/admin/cache", s.handlePurge)
	mux.HandleFunc("GET /api/admin/cache/stats", s.handleStats)

	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *server) handleYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.svc.AvailableYears(r.Context())
	s.respond(w, years, err)
}

func (s *server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		s.respondError(w, err)
		return
	}
	schedule, err := s.svc.Schedule(r.Context(), year)
	s.respond(w, schedule, err)
}

func (s *server) handleNextRace(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		s.respondError(w, err)
		return
	}
	next, err := s.svc.NextRace(r.Context(), year)
	s.respond(w, next, err)
}

func (s *server) handleWeekendSchedule(w http.ResponseWriter, r *http.Request) {
	year, round, err := queryYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	weekend, err := s.svc.WeekendSchedule(r.Context(), year, round)
	s.respond(w, weekend, err)
}

func (s *server) handleCircuitInfo(w http.ResponseWriter, r *http.Request) {
	year, round, err := queryYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	circuit, err := s.svc.CircuitInfo(r.Context(), year, round)
	s.respond(w, circuit, err)
}

func (s *server) handleDriverStandings(w http.ResponseWriter, r *http.Request) {
	year, round, err := queryYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	standings, err := s.svc.DriverStandings(r.Context(), year, round)
	s.respond(w, standings, err)
}

func (s *server) handleConstructorStandings(w http.ResponseWriter, r *http.Request) {
	year, round, err := queryYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	standings, err := s.svc.ConstructorStandings(r.Context(), year, round)
	s.respond(w, standings, err)
}

func (s *server) handleRaceResults(w http.ResponseWriter, r *http.Request) {
	year, round, err := pathYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	results, err := s.svc.RaceResults(r.Context(), year, round)
	s.respond(w, results, err)
}

func (s *server) handleQualifying(w http.ResponseWriter, r *http.Request) {
	year, round, err := pathYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	results, err := s.svc.QualifyingResults(r.Context(), year, round)
	s.respond(w, results, err)
}

func (s *server) handlePractice(w http.ResponseWriter, r *http.Request) {
	year, round, err := pathYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	session := r.URL.Query().Get("session")
	if session == "" {
		session = "FP1"
	}

	// Sprints share the practice endpoint but transform like races.
	if session == "S" {
		results, err := s.svc.SprintResults(r.Context(), year, round)
		s.respond(w, results, err)
		return
	}

	results, err := s.svc.PracticeResults(r.Context(), year, round, session)
	s.respond(w, results, err)
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, round, err := pathYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	summary, err := s.svc.RaceSummary(r.Context(), year, round)
	s.respond(w, summary, err)
}

func (s *server) handleHighlights(w http.ResponseWriter, r *http.Request) {
	year, round, err := pathYearRound(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	highlights, err := s.svc.RaceHighlights(r.Context(), year, round)
	s.respond(w, highlights, err)
}

func (s *server) handlePurge(w http.ResponseWriter, r *http.Request) {
	deleted := s.svc.PurgeCache(r.Context())
	s.respond(w, map[string]int{"deleted": deleted}, nil)
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.svc.CacheStats(r.Context()), nil)
}

func (s *server) respond(w http.ResponseWriter, v any, err error) {
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write response")
	}
}

// respondError maps the service error taxonomy to status codes. This is
// the only place typed errors become transport-level responses.
func (s *server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidParameter):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNoDataAvailable):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}

	s.logger.Debug().Err(err).Int("status", status).Msg("Request failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s %q", service.ErrInvalidParameter, name, raw)
	}
	return v, nil
}

func queryYearRound(r *http.Request) (year, round int, err error) {
	if year, err = queryInt(r, "year"); err != nil {
		return 0, 0, err
	}
	if round, err = queryInt(r, "round"); err != nil {
		return 0, 0, err
	}
	return year, round, nil
}

func pathYearRound(r *http.Request) (year, round int, err error) {
	year, err = strconv.Atoi(r.PathValue("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year %q", service.ErrInvalidParameter, r.PathValue("year"))
	}
	round, err = strconv.Atoi(r.PathValue("round"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: round %q", service.ErrInvalidParameter, r.PathValue("round"))
	}
	return year, round, nil
}
