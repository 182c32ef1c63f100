package sessions

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/f1dash/f1-data-service/internal/testutil"
)

func testClient(mock *testutil.MockProvider) *Client {
	return NewClient(mock.URL(), 5*time.Second)
}

func TestSchedule(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.Respond("/schedule/2026", `{"events":[
		{"round":1,"name":"Bahrain Grand Prix","official_name":"Formula 1 Bahrain Grand Prix 2026",
		 "location":"Sakhir","country":"Bahrain","circuit":"Bahrain International Circuit",
		 "date":"2026-03-08T00:00:00Z","format":"Conventional",
		 "sessions":[{"code":"FP1","start":"2026-03-06T11:30:00Z"},{"code":"R","start":"2026-03-08T15:00:00Z"}]},
		{"round":2,"name":"Saudi Arabian Grand Prix","location":"Jeddah","country":"Saudi Arabia",
		 "circuit":"Jeddah Corniche Circuit","date":"2026-03-15T00:00:00Z","format":"","sessions":[]}
	]}`)

	events, err := testClient(mock).Schedule(context.Background(), 2026)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	first := events[0]
	if first.Round != 1 || first.Name != "Bahrain Grand Prix" || first.Country != "Bahrain" {
		t.Errorf("first event = %+v", first)
	}
	if len(first.Sessions) != 2 || first.Sessions[0].Code != "FP1" {
		t.Errorf("first event sessions = %+v", first.Sessions)
	}
	wantStart := time.Date(2026, 3, 6, 11, 30, 0, 0, time.UTC)
	if !first.Sessions[0].Start.Equal(wantStart) {
		t.Errorf("FP1 start = %v, want %v", first.Sessions[0].Start, wantStart)
	}
}

func TestSchedule_EmptyIsNoData(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.Respond("/schedule/2026", `{"events":[]}`)

	_, err := testClient(mock).Schedule(context.Background(), 2026)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestSessionResults(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.Respond("/results/2026/5/R", `{"entries":[
		{"position":1,"driver":"Max Verstappen","team":"Red Bull Racing","status":"Finished",
		 "points":25,"laps":57,"time_seconds":5445.2,"best_lap_seconds":92.1,"best_lap_number":44},
		{"position":2,"driver":"Lando Norris","team":"McLaren","status":"Finished",
		 "points":18,"laps":57,"time_seconds":3.5,"best_lap_seconds":91.8,"best_lap_number":50},
		{"position":null,"driver":"Lance Stroll","team":"Aston Martin","status":"Accident",
		 "points":0,"laps":12,"time_seconds":null}
	]}`)

	rows, err := testClient(mock).SessionResults(context.Background(), 2026, 5, "R")
	if err != nil {
		t.Fatalf("SessionResults failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	winner := rows[0]
	if winner.Position == nil || *winner.Position != 1 {
		t.Errorf("winner position = %v", winner.Position)
	}
	if winner.TimeSeconds == nil || *winner.TimeSeconds != 5445.2 {
		t.Errorf("winner time = %v", winner.TimeSeconds)
	}
	if winner.BestLapNumber != 44 {
		t.Errorf("winner best lap number = %d, want 44", winner.BestLapNumber)
	}
	dnf := rows[2]
	if dnf.Position != nil {
		t.Errorf("unclassified position = %v, want nil", *dnf.Position)
	}
	if dnf.TimeSeconds != nil {
		t.Errorf("unclassified time = %v, want nil", *dnf.TimeSeconds)
	}
}

func TestSessionResults_NotFoundIsNoData(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	// Unconfigured paths return 404.
	_, err := testClient(mock).SessionResults(context.Background(), 2026, 5, "FP3")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestSessionResults_EmptyIsNoData(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.Respond("/results/2026/5/SQ", `{"entries":[]}`)

	_, err := testClient(mock).SessionResults(context.Background(), 2026, 5, "SQ")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestSessionResults_StatusError(t *testing.T) {
	mock := testutil.NewMockProvider()
	defer mock.Close()

	mock.RespondStatus("/results/2026/5/R", http.StatusInternalServerError, "boom")

	_, err := testClient(mock).SessionResults(context.Background(), 2026, 5, "R")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", statusErr.StatusCode)
	}
}
