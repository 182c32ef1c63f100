package model

// RaceResultEntry is one classified row of a race or sprint result.
// Time and Gap follow the display rules: the winner carries the full
// elapsed time and no gap, everyone else carries the gap to the winner
// and a reconstructed full time. Both are nil when no time was recorded.
type RaceResultEntry struct {
	// Position is nil for unclassified entries.
	Position *int `json:"position"`

	Driver string `json:"driver"`
	Team   string `json:"team"`

	Time *string `json:"time"`
	Gap  *string `json:"gap"`

	Points float64 `json:"points"`
	Status string  `json:"status"`
	Laps   int     `json:"laps"`
}

// RaceResults is the full classification of one race.
type RaceResults struct {
	RaceInfo RaceInfo          `json:"race_info"`
	Results  []RaceResultEntry `json:"results"`
}

// QualifyingEntry is one row of a qualifying classification. Segment
// times are nil when the driver set no time in that segment.
type QualifyingEntry struct {
	Position *int    `json:"position"`
	Driver   string  `json:"driver"`
	Team     string  `json:"team"`
	Q1       *string `json:"q1"`
	Q2       *string `json:"q2"`
	Q3       *string `json:"q3"`
	Laps     int     `json:"laps"`
}

// PracticeEntry is one row of a practice or sprint-qualifying result,
// ranked by best lap. Gap is the delta to the session's overall fastest
// lap, nil for the fastest driver.
type PracticeEntry struct {
	Position int     `json:"position"`
	Driver   string  `json:"driver"`
	Team     string  `json:"team"`
	Time     *string `json:"time"`
	Gap      *string `json:"gap"`
	Laps     int     `json:"laps"`
}

// SessionAvailable names one session of a weekend that has result data.
type SessionAvailable struct {
	// Session is the short code, e.g. FP1.
	Session string `json:"session"`

	// Name is the display name, Key its stable lowercase form.
	Name string `json:"name"`
	Key  string `json:"key"`
}

// RaceSummary lists the sessions of a weekend with available results.
type RaceSummary struct {
	RaceInfo          RaceInfo           `json:"race_info"`
	SessionsAvailable []SessionAvailable `json:"sessions_available"`
}

// RaceWinner is the race winner highlight.
type RaceWinner struct {
	DriverName string  `json:"driver_name"`
	RaceTime   *string `json:"race_time"`
}

// PolePosition is the pole sitter highlight with the best qualifying
// segment time.
type PolePosition struct {
	DriverName     string  `json:"driver_name"`
	QualifyingTime *string `json:"qualifying_time"`
}

// FastestLap is the fastest race lap highlight.
type FastestLap struct {
	DriverName string  `json:"driver_name"`
	LapNumber  int     `json:"lap_number"`
	LapTime    *string `json:"lap_time"`
}

// RaceHighlights aggregates the headline facts of a race weekend. Each
// section is nil when its source data is unavailable.
type RaceHighlights struct {
	RaceWinner   *RaceWinner   `json:"race_winner"`
	PolePosition *PolePosition `json:"pole_position"`
	FastestLap   *FastestLap   `json:"fastest_lap"`
}
