package model

import (
	"fmt"
	"math"
	"time"
)

// FormatLapTime renders a lap time as MM:SS.mmm, e.g. "01:23.456".
// Returns nil for zero or negative durations.
func FormatLapTime(d time.Duration) *string {
	if d <= 0 {
		return nil
	}
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	s := fmt.Sprintf("%02d:%06.3f", minutes, seconds)
	return &s
}

// FormatRaceTime renders a total race time as H:MM:SS.mmm, dropping the
// hour part for races under an hour. Whole days are stripped first; the
// provider occasionally reports times offset by full days. Returns nil
// for zero or negative durations.
func FormatRaceTime(d time.Duration) *string {
	if d <= 0 {
		return nil
	}
	d %= 24 * time.Hour

	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	seconds := (d % time.Minute).Seconds()

	var s string
	if hours > 0 {
		s = fmt.Sprintf("%d:%02d:%06.3f", hours, minutes, seconds)
	} else {
		s = fmt.Sprintf("%02d:%06.3f", minutes, seconds)
	}
	return &s
}

// FormatGap renders a gap in seconds as "+1.234s". Non-positive or NaN
// gaps render empty.
func FormatGap(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return ""
	}
	return fmt.Sprintf("+%.3fs", seconds)
}
