package model

import (
	"testing"
	"time"
)

func TestStatusAt(t *testing.T) {
	start := time.Date(2026, 5, 3, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want SessionStatus
	}{
		{name: "one minute before start", now: start.Add(-time.Minute), want: StatusUpcoming},
		{name: "exactly at start", now: start, want: StatusLive},
		{name: "thirty minutes in", now: start.Add(30 * time.Minute), want: StatusLive},
		{name: "exactly at end", now: end, want: StatusLive},
		{name: "one minute after end", now: end.Add(time.Minute), want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusAt(start, end, tt.now); got != tt.want {
				t.Errorf("StatusAt(now=%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestStatusAt_MixedZones(t *testing.T) {
	// A session published in a local zone must compare correctly against
	// a UTC clock.
	cet := time.FixedZone("CET", 3600)
	start := time.Date(2026, 5, 3, 15, 0, 0, 0, cet) // 14:00 UTC
	end := start.Add(time.Hour)

	now := time.Date(2026, 5, 3, 14, 30, 0, 0, time.UTC)
	if got := StatusAt(start, end, now); got != StatusLive {
		t.Errorf("StatusAt across zones = %q, want %q", got, StatusLive)
	}
}

func TestSessionName(t *testing.T) {
	if got := SessionName("FP1"); got != "Practice 1" {
		t.Errorf("SessionName(FP1) = %q", got)
	}
	if got := SessionName("SQ"); got != "Sprint Qualifying" {
		t.Errorf("SessionName(SQ) = %q", got)
	}
	// Unknown codes fall back to the code itself.
	if got := SessionName("XX"); got != "XX" {
		t.Errorf("SessionName(XX) = %q", got)
	}
}

func TestSessionDuration(t *testing.T) {
	tests := []struct {
		code string
		want time.Duration
	}{
		{"FP1", 90 * time.Minute},
		{"FP2", 90 * time.Minute},
		{"FP3", 60 * time.Minute},
		{"SQ", 60 * time.Minute},
		{"S", 60 * time.Minute},
		{"Q", 60 * time.Minute},
		{"R", 120 * time.Minute},
		{"XX", time.Hour},
	}

	for _, tt := range tests {
		if got := SessionDuration(tt.code); got != tt.want {
			t.Errorf("SessionDuration(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestValidSessionCode(t *testing.T) {
	for _, code := range SessionCodes {
		if !ValidSessionCode(code) {
			t.Errorf("ValidSessionCode(%s) = false", code)
		}
	}
	if ValidSessionCode("FP4") {
		t.Error("ValidSessionCode(FP4) = true")
	}
}
