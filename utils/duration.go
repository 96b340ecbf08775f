package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	bareMinutesRe  = regexp.MustCompile(`^\d+$`)
	hoursPartRe    = regexp.MustCompile(`(?i)(\d+)\s*h`)
	minutesPartRe  = regexp.MustCompile(`(?i)(\d+)\s*m`)
	maxParsedValue = 1 << 30
)

// ParseDurationToMinutes converts a duration text into whole minutes.
//
// Recognized forms, in order: a bare integer ("135"), then hour and minute groups
// extracted independently and summed ("2h 30m", "2h", "45m", "2 hours 5 min").
// Anything else yields 0. The result is never negative.
func ParseDurationToMinutes(value string) int {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	if bareMinutesRe.MatchString(s) {
		return atoiBounded(s)
	}

	total := 0
	if m := hoursPartRe.FindStringSubmatch(s); len(m) == 2 {
		total += atoiBounded(m[1]) * 60
	}
	if m := minutesPartRe.FindStringSubmatch(s); len(m) == 2 {
		total += atoiBounded(m[1])
	}
	if total < 0 {
		return 0
	}
	return total
}

// MinutesFromNumber converts a numeric minute count from loosely typed JSON.
// Negative and non-finite values yield 0.
func MinutesFromNumber(v float64) int {
	if v != v || v <= 0 || v > float64(maxParsedValue) {
		return 0
	}
	return int(v + 0.5)
}

// FormatDuration renders minutes as "Xh Ym", "Xh" or "Ym".
// The hour unit is omitted below 60 minutes and the minute unit is omitted when it is
// exactly zero. Zero and negative input render as "0m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// CanonicalDuration reparses a duration text and renders it in canonical form.
func CanonicalDuration(value string) string {
	return FormatDuration(ParseDurationToMinutes(value))
}

func atoiBounded(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > maxParsedValue {
		return 0
	}
	return n
}
