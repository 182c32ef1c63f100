package cache

import "fmt"

// Cache key builders. Keys are pure functions of the resource kind and
// its discriminating parameters, and reproduce the namespace of any
// existing deployment sharing the store byte for byte.

// DriverStandingsKey keys the driver championship snapshot for a round.
func DriverStandingsKey(year, round int) string {
	return fmt.Sprintf("driver_standings_%d_%d", year, round)
}

// ConstructorStandingsKey keys the constructor championship snapshot.
func ConstructorStandingsKey(year, round int) string {
	return fmt.Sprintf("constructor_standings_%d_%d", year, round)
}

// ScheduleKey keys the season schedule.
func ScheduleKey(year int) string {
	return fmt.Sprintf("race_schedule_%d", year)
}

// RaceResultsKey keys the race classification.
func RaceResultsKey(year, round int) string {
	return fmt.Sprintf("race_results_%d_%d", year, round)
}

// QualifyingKey keys the qualifying classification.
func QualifyingKey(year, round int) string {
	return fmt.Sprintf("race_qualifying_%d_%d", year, round)
}

// PracticeKey keys one practice, sprint-qualifying or sprint session.
func PracticeKey(year, round int, session string) string {
	return fmt.Sprintf("race_practice_%d_%d_%s", year, round, session)
}

// SummaryKey keys the race-weekend session availability summary.
func SummaryKey(year, round int) string {
	return fmt.Sprintf("race_summary_%d_%d", year, round)
}

// HighlightsKey keys the race highlights.
func HighlightsKey(year, round int) string {
	return fmt.Sprintf("race_highlights_%d_%d", year, round)
}

// WeekendScheduleKey keys the detailed race-weekend schedule.
func WeekendScheduleKey(year, round int) string {
	return fmt.Sprintf("race_weekend_schedule_%d_%d", year, round)
}

// CircuitInfoKey keys the circuit information for an event.
func CircuitInfoKey(year, round int) string {
	return fmt.Sprintf("circuit_info_%d_%d", year, round)
}

// AvailableYearsKey keys the list of seasons the service can serve.
func AvailableYearsKey() string {
	return "available_years"
}

// KnownPrefixes lists every key prefix the service writes. The
// administrative purge and stats operations iterate exactly this set.
var KnownPrefixes = []string{
	"driver_standings",
	"constructor_standings",
	"race_schedule",
	"race_results",
	"race_qualifying",
	"race_practice",
	"race_summary",
	"race_highlights",
	"race_weekend_schedule",
	"circuit_info",
	"available_years",
}
