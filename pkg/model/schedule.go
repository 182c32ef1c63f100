package model

import "time"

// ScheduleEntry is one event of a season schedule.
type ScheduleEntry struct {
	Round    int    `json:"round"`
	RaceName string `json:"race_name"`
	Location string `json:"location"`
	Country  string `json:"country"`

	// Date is the race date as YYYY-MM-DD.
	Date string `json:"date"`

	// Format is the weekend format, e.g. Conventional or Sprint.
	Format string `json:"format"`
}

// Schedule is the full season schedule, ordered by round.
type Schedule struct {
	Year int             `json:"year"`
	Data []ScheduleEntry `json:"data"`
}

// RaceInfo identifies one event, shared by results and summaries.
type RaceInfo struct {
	Round        int    `json:"round"`
	RaceName     string `json:"race_name"`
	Location     string `json:"location"`
	Country      string `json:"country"`
	Date         string `json:"date"`
	OfficialName string `json:"official_name"`
}

// NextRace is the first event with a date in the future.
type NextRace struct {
	RaceName string `json:"race_name"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Country  string `json:"country"`
}

// SessionWindow is one session of a race weekend with its computed time
// window and live status.
type SessionWindow struct {
	// Name is the display name, e.g. "Practice 1".
	Name string `json:"name"`

	// Code is the short session code, e.g. FP1.
	Code string `json:"code"`

	// Date and Time are the session start formatted for display.
	Date string `json:"date"`
	Time string `json:"time"`

	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	EndTime string    `json:"end_time"`

	Status          SessionStatus `json:"status"`
	DurationMinutes int           `json:"duration_minutes"`
}

// CircuitInfo describes the circuit hosting an event. ImageURL is empty
// when no circuit map is known for the venue.
type CircuitInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Round    int    `json:"round,omitempty"`
	RaceName string `json:"race_name,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// WeekendSchedule is the detailed session schedule of one race weekend.
type WeekendSchedule struct {
	RaceInfo RaceInfo        `json:"race_info"`
	Sessions []SessionWindow `json:"sessions"`
	Circuit  CircuitInfo     `json:"circuit"`
}
