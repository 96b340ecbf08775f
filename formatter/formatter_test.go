package formatter_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/flight-normalizer/converter"
	"github.com/theoremus-urban-solutions/flight-normalizer/flight"
	"github.com/theoremus-urban-solutions/flight-normalizer/formatter"
)

func f64(v float64) *float64 { return &v }

func sampleFlights() []flight.Flight {
	return []flight.Flight{
		{
			ID: "a", FlightNumber: "UA123", Airline: flight.Airline{Name: "United Airlines", Code: "UA"},
			Departure: flight.Endpoint{Airport: "LAX", Time: "8:00 AM"},
			Arrival:   flight.Endpoint{Airport: "JFK", Time: "4:30 PM"},
			Duration:  flight.Duration{Minutes: 330, Text: "5h 30m"},
			RiskLevel: "low",
			RiskFactors: flight.RiskFactors{
				ConnectionRisk: "low", DelayProbability: f64(0.15), CancellationRate: f64(2),
			},
			Price: f64(450), OnTimeRate: f64(82),
		},
		{
			ID: "b", FlightNumber: "DL10", Airline: flight.Airline{Name: "Delta Air Lines", Code: "DL"},
			Departure: flight.Endpoint{Airport: "ATL", Time: "10:00 PM"},
			Arrival:   flight.Endpoint{Airport: "SEA", Time: "6:00 AM", DayOffset: "+1 day"},
			Duration:  flight.Duration{Minutes: 600, Text: "10h"},
			RiskLevel: "high", Stops: 1,
			RiskFactors: flight.RiskFactors{ConnectionRisk: "unknown"},
			Connections: []flight.Connection{{
				Departure:      flight.Endpoint{Airport: "ATL"},
				Arrival:        flight.Endpoint{Airport: "DEN"},
				ConnectionRisk: "unknown",
				LayoverInfo:    &flight.LayoverInfo{Airport: "DEN", Duration: "1h 35m", DurationMinutes: 95},
			}},
			InsuranceRecommendation: &flight.InsuranceRecommendation{Recommended: true, Reason: "overall risk is high"},
		},
		{
			ID: "c", FlightNumber: "AA9", Airline: flight.Airline{Name: "American Airlines", Code: "AA"},
			Departure: flight.Endpoint{Airport: "ORD"}, Arrival: flight.Endpoint{Airport: "MIA"},
			RiskLevel: "unknown", Stops: 2,
		},
	}
}

func TestSummarize_AnalysisFailedMarker(t *testing.T) {
	flights := sampleFlights()

	good := formatter.Summarize(flights[0])
	if good.DelayProbability != "15%" || good.CancellationRate != "2%" {
		t.Errorf("unexpected probabilities %q / %q", good.DelayProbability, good.CancellationRate)
	}
	if good.Price != "$450.00" || good.OnTimeRate != "82%" || good.Stops != "Nonstop" {
		t.Errorf("unexpected card %+v", good)
	}
	if good.Route != "LAX → JFK" || good.Title != "UA123 LAX → JFK" {
		t.Errorf("unexpected route/title %q / %q", good.Route, good.Title)
	}

	missing := formatter.Summarize(flights[1])
	for name, got := range map[string]string{
		"delay":        missing.DelayProbability,
		"cancellation": missing.CancellationRate,
		"historical":   missing.HistoricalDelays,
	} {
		if got != formatter.AnalysisFailed {
			t.Errorf("%s: expected %q, got %q", name, formatter.AnalysisFailed, got)
		}
		if strings.Contains(got, "0%") {
			t.Errorf("%s must never render as 0%%", name)
		}
	}
	if missing.Arrival != "6:00 AM +1 day" {
		t.Errorf("expected day offset on arrival, got %q", missing.Arrival)
	}
	if len(missing.Layovers) != 1 || missing.Layovers[0] != "DEN 1h 35m (connection risk: unknown)" {
		t.Errorf("unexpected layovers %v", missing.Layovers)
	}
	if missing.Insurance != "Recommended: overall risk is high" {
		t.Errorf("unexpected insurance %q", missing.Insurance)
	}
	if missing.Price != "Price unavailable" {
		t.Errorf("unexpected price %q", missing.Price)
	}
}

func TestFilterFlights(t *testing.T) {
	flights := sampleFlights()

	tests := []struct {
		name   string
		filter formatter.Filter
		want   []string
	}{
		{name: "no filter", filter: formatter.Filter{MaxStops: -1}, want: []string{"a", "b", "c"}},
		{name: "airline code", filter: formatter.Filter{Airline: "dl", MaxStops: -1}, want: []string{"b"}},
		{name: "airline name fragment", filter: formatter.Filter{Airline: "american", MaxStops: -1}, want: []string{"c"}},
		{name: "nonstop only", filter: formatter.Filter{MaxStops: 0}, want: []string{"a"}},
		{name: "layover airport", filter: formatter.Filter{Airport: "den", MaxStops: -1}, want: []string{"b"}},
		{name: "risk ceiling excludes unknown", filter: formatter.Filter{MaxRisk: "medium", MaxStops: -1}, want: []string{"a"}},
		{name: "nothing matches", filter: formatter.Filter{Airport: "HND", MaxStops: -1}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.FilterFlights(flights, tt.filter)
			ids := []string{}
			for _, f := range got {
				ids = append(ids, f.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, ids)
			}
		})
	}
}

func TestWrapFlightsAndBuildJSON(t *testing.T) {
	res := converter.BatchResult{
		Flights: sampleFlights()[:1],
		Dropped: []*converter.ConversionError{{Index: 4, RecordID: "x4", Stage: converter.StageDecode, Err: errors.New("bad json")}},
	}
	at := time.Date(2025, 7, 10, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	resp := formatter.WrapFlights(res, "route", at)

	if resp.Count != 1 || resp.ResponseTimestamp != "2025-07-10T17:00:00Z" {
		t.Errorf("unexpected envelope %+v", resp)
	}
	if len(resp.Dropped) != 1 || resp.Dropped[0].Reason != "bad json" || resp.Dropped[0].Stage != "decode" {
		t.Errorf("unexpected dropped %+v", resp.Dropped)
	}

	b, err := formatter.NewResponseBuilder().BuildJSON(resp)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["searchType"] != "route" {
		t.Errorf("unexpected searchType %v", decoded["searchType"])
	}

	pretty, err := formatter.NewPrettyResponseBuilder().BuildJSON(resp)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pretty), "\n  \"count\": 1") {
		t.Errorf("expected indented output, got %s", pretty)
	}

	empty := formatter.WrapFlights(converter.BatchResult{}, "", at)
	b, _ = formatter.NewResponseBuilder().BuildJSON(empty)
	if !strings.Contains(string(b), `"flights":[]`) {
		t.Errorf("empty result should serialize as an empty list, got %s", b)
	}
}
