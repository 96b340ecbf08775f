package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SentinelTime is returned by FormatTimeWithAMPM for any input it cannot interpret.
const SentinelTime = "12:00 PM"

var (
	meridiemRe   = regexp.MustCompile(`(?i)([ap])\.?m\.?`)
	zoneSuffixRe = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)
)

// FormatTimeWithAMPM renders an upstream time value as "H:MM AM" / "H:MM PM".
//
// Accepted inputs include "14:05", "14:05:30", "2025-07-10 14:05", RFC 3339 timestamps and
// strings that already carry a meridiem ("2:05 pm", "2:05 PM PM"). Inputs containing the
// literal token "undefined", and every other malformed value, yield SentinelTime.
func FormatTimeWithAMPM(raw string) string {
	m, ok := ClockMinutes(raw)
	if !ok {
		return SentinelTime
	}
	return formatClock(m)
}

// ClockMinutes parses a time value (any form accepted by FormatTimeWithAMPM) into minutes
// after midnight. ok is false when the value is unusable.
func ClockMinutes(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(strings.ToLower(s), "undefined") {
		return 0, false
	}

	s = timeOfDayPart(s)

	meridiem := ""
	if m := meridiemRe.FindAllStringSubmatch(s, -1); len(m) > 0 {
		// repeated markers ("PM PM") collapse to the first one
		meridiem = strings.ToUpper(m[0][1])
		s = strings.TrimSpace(meridiemRe.ReplaceAllString(s, ""))
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	// parts[2], when present, holds seconds and is dropped.
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	if meridiem != "" && hour <= 12 {
		hour %= 12
		if meridiem == "P" {
			hour += 12
		}
	}
	return hour*60 + minute, true
}

// DayOffset flags an arrival that lands on a later calendar day than the departure.
//
// It reconstructs the implied arrival from departure + duration and returns the number of
// days crossed together with a label such as "+1 day" or "+2 days". When the reconstruction
// stays on the same day but the stated arrival clock is earlier than the departure clock and
// the flight is longer than six hours, one day is assumed. This is a heuristic: it works on
// local clock strings and knows nothing about time zones.
func DayOffset(departure, arrival string, durationMinutes int) (int, string) {
	dep, ok := ClockMinutes(departure)
	if !ok {
		return 0, ""
	}
	days := 0
	if durationMinutes > 0 {
		days = (dep + durationMinutes) / (24 * 60)
	}
	if days == 0 {
		if arr, ok := ClockMinutes(arrival); ok && arr < dep && durationMinutes > 6*60 {
			days = 1
		}
	}
	return days, DayOffsetLabel(days)
}

// DayOffsetLabel renders a day count as "+1 day" / "+N days"; zero renders as "".
func DayOffsetLabel(days int) string {
	switch {
	case days <= 0:
		return ""
	case days == 1:
		return "+1 day"
	default:
		return fmt.Sprintf("+%d days", days)
	}
}

func formatClock(minutesOfDay int) string {
	hour := minutesOfDay / 60
	minute := minutesOfDay % 60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

// timeOfDayPart drops a leading date ("2025-07-10 14:05", "2025-07-10T14:05:00Z"), a
// trailing zone designator and fractional seconds.
func timeOfDayPart(s string) string {
	if i := strings.IndexAny(s, "T "); i >= 0 && strings.Count(s[:i], "-") >= 2 {
		s = strings.TrimSpace(s[i+1:])
	}
	if !meridiemRe.MatchString(s) {
		s = zoneSuffixRe.ReplaceAllString(s, "")
		if i := strings.Index(s, "."); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
