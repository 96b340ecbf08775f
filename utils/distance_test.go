package utils_test

import (
	"testing"

	"github.com/theoremus-urban-solutions/flight-normalizer/utils"
)

func TestGreatCircleKM(t *testing.T) {
	tests := []struct {
		name   string
		lat1   float64
		lon1   float64
		lat2   float64
		lon2   float64
		wantOK bool
		minKM  float64
		maxKM  float64
	}{
		{name: "DEN to JFK", lat1: 39.8561, lon1: -104.6737, lat2: 40.6413, lon2: -73.7781, wantOK: true, minKM: 2550, maxKM: 2700},
		{name: "LAX to JFK", lat1: 33.9416, lon1: -118.4085, lat2: 40.6413, lon2: -73.7781, wantOK: true, minKM: 3900, maxKM: 4050},
		{name: "same point", lat1: 39.8561, lon1: -104.6737, lat2: 39.8561, lon2: -104.6737, wantOK: true, minKM: 0, maxKM: 0},
		{name: "missing coordinates", lat1: 0, lon1: 0, lat2: 40.6413, lon2: -73.7781},
		{name: "latitude out of range", lat1: 95, lon1: 10, lat2: 40.6413, lon2: -73.7781},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, ok := utils.GreatCircleKM(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if km < tt.minKM || km > tt.maxKM {
				t.Errorf("expected %.0f..%.0f km, got %.1f", tt.minKM, tt.maxKM, km)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v        float64
		digits   int
		expected float64
	}{
		{v: 2618.449, digits: 1, expected: 2618.4},
		{v: 2618.45, digits: 0, expected: 2618},
		{v: 0.125, digits: 2, expected: 0.13},
		{v: 1.23, digits: -1, expected: 1.23},
	}

	for _, tt := range tests {
		if got := utils.RoundTo(tt.v, tt.digits); got != tt.expected {
			t.Errorf("RoundTo(%v, %d): expected %v, got %v", tt.v, tt.digits, tt.expected, got)
		}
	}
}
