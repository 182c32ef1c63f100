package model

import "time"

// SessionStatus is the lifecycle state of a scheduled session.
type SessionStatus string

const (
	StatusUpcoming  SessionStatus = "upcoming"
	StatusLive      SessionStatus = "live"
	StatusCompleted SessionStatus = "completed"
)

// SessionCodes lists every session a race weekend can hold, in the
// order they run.
var SessionCodes = []string{"FP1", "FP2", "FP3", "SQ", "S", "Q", "R"}

// SessionNames maps session codes to display names.
var SessionNames = map[string]string{
	"FP1": "Practice 1",
	"FP2": "Practice 2",
	"FP3": "Practice 3",
	"SQ":  "Sprint Qualifying",
	"S":   "Sprint",
	"Q":   "Qualifying",
	"R":   "Race",
}

// SessionDurations maps session codes to their scheduled length. Used
// to compute the end of a session window from its published start.
var SessionDurations = map[string]time.Duration{
	"FP1": 90 * time.Minute,
	"FP2": 90 * time.Minute,
	"FP3": 60 * time.Minute,
	"SQ":  60 * time.Minute,
	"S":   60 * time.Minute,
	"Q":   60 * time.Minute,
	"R":   120 * time.Minute,
}

// SessionName returns the display name of a session code, falling back
// to the code itself.
func SessionName(code string) string {
	if name, ok := SessionNames[code]; ok {
		return name
	}
	return code
}

// SessionDuration returns the scheduled length of a session, defaulting
// to an hour for unknown codes.
func SessionDuration(code string) time.Duration {
	if d, ok := SessionDurations[code]; ok {
		return d
	}
	return time.Hour
}

// ValidSessionCode reports whether code is a known session code.
func ValidSessionCode(code string) bool {
	_, ok := SessionNames[code]
	return ok
}

// StatusAt computes the status of a session window at a given instant.
// All three timestamps are normalized to UTC before comparison, so
// inputs in mixed zones compare correctly. The session is live from its
// start up to and including its end.
func StatusAt(start, end, now time.Time) SessionStatus {
	n := now.UTC()
	switch {
	case n.After(end.UTC()):
		return StatusCompleted
	case !n.Before(start.UTC()):
		return StatusLive
	default:
		return StatusUpcoming
	}
}
