package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/theoremus-urban-solutions/flight-normalizer/converter"
	"github.com/theoremus-urban-solutions/flight-normalizer/formatter"
	"github.com/theoremus-urban-solutions/flight-normalizer/reference"
	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
)

const payload = `{"search_type": "direct", "results": [
	{"id": "d1", "airline": "Delta Air Lines", "flight_number": "DL10", "origin": "ATL", "destination": "SEA",
	 "departure_time": "22:00", "arrival_time": "06:00", "total_duration": "11h"},
	{"id": "bad", "origin": "ATL"}
]}`

func TestOneshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	client := upstream.NewClient(0, "", "")
	noFilter := formatter.Filter{MaxStops: -1}

	out, err := oneshot(context.Background(), client, reference.Default(), converter.NopTracer{}, 2, path, "", noFilter, false)
	if err != nil {
		t.Fatalf("oneshot: %v", err)
	}
	var resp formatter.FlightResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Flights[0].Arrival.DayOffset != "+1 day" {
		t.Errorf("unexpected flights %+v", resp.Flights)
	}
	if len(resp.Dropped) != 1 || resp.Dropped[0].RecordID != "bad" || resp.Dropped[0].Stage != "validate" {
		t.Errorf("unexpected dropped %+v", resp.Dropped)
	}

	out, err = oneshot(context.Background(), client, reference.Default(), converter.NopTracer{}, 2, path, "", noFilter, true)
	if err != nil {
		t.Fatalf("oneshot cards: %v", err)
	}
	var cards []formatter.Card
	if err := json.Unmarshal(out, &cards); err != nil {
		t.Fatalf("decode cards: %v", err)
	}
	if len(cards) != 1 || cards[0].DelayProbability != formatter.AnalysisFailed {
		t.Errorf("unexpected cards %+v", cards)
	}

	if _, err := oneshot(context.Background(), client, reference.Default(), nil, 2, "", "", noFilter, false); err == nil {
		t.Error("empty input should fail")
	}
}
