package utils_test

import (
	"testing"

	"github.com/theoremus-urban-solutions/flight-normalizer/utils"
)

func TestFormatTimeWithAMPM(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "afternoon", input: "14:05", expected: "2:05 PM"},
		{name: "morning", input: "09:30", expected: "9:30 AM"},
		{name: "midnight", input: "00:15", expected: "12:15 AM"},
		{name: "noon", input: "12:00", expected: "12:00 PM"},
		{name: "seconds stripped", input: "14:05:59", expected: "2:05 PM"},
		{name: "date and time", input: "2025-07-10 14:05", expected: "2:05 PM"},
		{name: "rfc3339", input: "2025-07-10T06:45:00Z", expected: "6:45 AM"},
		{name: "rfc3339 with offset", input: "2025-07-10T18:20:00-05:00", expected: "6:20 PM"},
		{name: "fractional seconds", input: "2025-07-10T18:20:00.000Z", expected: "6:20 PM"},
		{name: "already meridiem", input: "2:05 PM", expected: "2:05 PM"},
		{name: "lowercase meridiem", input: "7:10 am", expected: "7:10 AM"},
		{name: "dotted meridiem", input: "7:10 p.m.", expected: "7:10 PM"},
		{name: "no space meridiem", input: "11:45PM", expected: "11:45 PM"},
		{name: "duplicate meridiem", input: "2:05 PM PM", expected: "2:05 PM"},
		{name: "twelve am", input: "12:30 AM", expected: "12:30 AM"},
		{name: "twelve pm", input: "12:30 PM", expected: "12:30 PM"},
		{name: "24h with stray meridiem", input: "14:05 PM", expected: "2:05 PM"},
		{name: "undefined pair", input: "undefined:undefined", expected: utils.SentinelTime},
		{name: "undefined minutes", input: "14:undefined", expected: utils.SentinelTime},
		{name: "empty", input: "", expected: utils.SentinelTime},
		{name: "no colon", input: "1405", expected: utils.SentinelTime},
		{name: "hour out of range", input: "25:00", expected: utils.SentinelTime},
		{name: "minute out of range", input: "10:75", expected: utils.SentinelTime},
		{name: "garbage", input: "tomorrow", expected: utils.SentinelTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.FormatTimeWithAMPM(tt.input); got != tt.expected {
				t.Errorf("FormatTimeWithAMPM(%q): expected %q, got %q", tt.input, tt.expected, got)
			}
		})
	}
}

func TestFormatTimeWithAMPM_Idempotent(t *testing.T) {
	for m := 0; m < 24*60; m += 7 {
		first := utils.FormatTimeWithAMPM(clock24(m))
		if second := utils.FormatTimeWithAMPM(first); second != first {
			t.Fatalf("formatting %q again gave %q", first, second)
		}
	}
}

func TestDayOffset(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		arrival   string
		duration  int
		wantDays  int
		wantLabel string
	}{
		{name: "same day", departure: "8:00 AM", arrival: "10:00 AM", duration: 120},
		{name: "crosses midnight", departure: "10:00 PM", arrival: "6:00 AM", duration: 480, wantDays: 1, wantLabel: "+1 day"},
		{name: "several days", departure: "23:00", arrival: "11:00", duration: 3000, wantDays: 3, wantLabel: "+3 days"},
		{name: "earlier arrival on long flight", departure: "08:00", arrival: "06:00", duration: 400, wantDays: 1, wantLabel: "+1 day"},
		{name: "earlier arrival on short flight", departure: "08:00", arrival: "07:30", duration: 60},
		{name: "unparsable departure", departure: "undefined", arrival: "07:30", duration: 900},
		{name: "no duration", departure: "22:00", arrival: "02:00", duration: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, label := utils.DayOffset(tt.departure, tt.arrival, tt.duration)
			if days != tt.wantDays || label != tt.wantLabel {
				t.Errorf("expected (%d, %q), got (%d, %q)", tt.wantDays, tt.wantLabel, days, label)
			}
		})
	}
}

func clock24(m int) string {
	h := m / 60
	mm := m % 60
	return string([]byte{byte('0' + h/10), byte('0' + h%10), ':', byte('0' + mm/10), byte('0' + mm%10)})
}
