// Package timeutil provides helpers for presenting whole-second durations.
package timeutil

import (
	"fmt"
	"math"
)

const (
	secondsInAMinute = 60
	minutesInAnHour  = 60
)

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val float64) (mins, secs int) {
	total := Round(val)

	return total / secondsInAMinute, total % secondsInAMinute
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// Clock formats whole seconds as MM:SS.
func Clock(seconds int) string {
	m, s := SecsToMinsAndSecs(float64(seconds))

	return fmt.Sprintf("%02d:%02d", m, s)
}

// Humanize formats whole seconds as e.g. "1h 05m 09s", dropping leading zero
// units.
func Humanize(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	m, s := SecsToMinsAndSecs(float64(seconds))
	h, m := MinsToHoursAndMins(m)

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
