// Package model defines the typed domain models served by the F1 data
// service. Everything crossing the cache or the HTTP boundary is one of
// these structs; loosely-typed provider payloads never appear here.
package model

// StandingEntry is one ranked row of a championship table.
type StandingEntry struct {
	// Position in the championship, 1-based.
	Position int `json:"pos"`

	// Name is the display name of the driver or constructor.
	Name string `json:"name"`

	// Points is the cumulative points total.
	Points float64 `json:"points"`

	// PointsChange is the points gained since the previous round. When
	// no previous entry exists for the entrant it equals the full points
	// total.
	PointsChange float64 `json:"points_change"`

	// PositionDelta is previous position minus current position, so a
	// positive value means the entrant moved up the table.
	PositionDelta int `json:"evo"`
}

// StandingsMeta identifies the snapshot a standings table belongs to.
// RaceName is the provider's name for the race the table is current as
// of; empty when the provider omits it.
type StandingsMeta struct {
	Year     int    `json:"year"`
	Round    int    `json:"round"`
	RaceName string `json:"race_name,omitempty"`
}

// Standings is a ranked championship table with its snapshot metadata.
type Standings struct {
	Data []StandingEntry `json:"data"`
	Meta StandingsMeta   `json:"meta"`
}
