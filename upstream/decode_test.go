package upstream_test

import (
	"errors"
	"testing"

	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		hint     upstream.SearchType
		expected upstream.SearchType
	}{
		{name: "flat record", raw: `{"origin":"LAX","destination":"JFK"}`, expected: upstream.SearchDirect},
		{name: "flights present", raw: `{"flights":[]}`, expected: upstream.SearchRoute},
		{name: "layovers present", raw: `{"layovers":[{"airport":"DEN"}]}`, expected: upstream.SearchRoute},
		{name: "null flights ignored", raw: `{"flights":null}`, expected: upstream.SearchDirect},
		{name: "explicit search type", raw: `{"search_type":"route"}`, expected: upstream.SearchRoute},
		{name: "search type suffix", raw: `{"search_type":"DIRECT_SEARCH","flights":[]}`, expected: upstream.SearchDirect},
		{name: "hint wins", raw: `{"search_type":"direct"}`, hint: upstream.SearchRoute, expected: upstream.SearchRoute},
		{name: "invalid hint ignored", raw: `{"flights":[]}`, hint: "bogus", expected: upstream.SearchRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := upstream.Detect([]byte(tt.raw), tt.hint)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDecodeRecord_Shapes(t *testing.T) {
	direct := `{
		"airline": "United Airlines",
		"flight_number": 1234,
		"origin": "LAX",
		"destination": "JFK",
		"total_duration": "5h 30m",
		"price": "$1,234.50",
		"connections": [
			{"flight_number": "UA1", "departure": {"airport": "LAX", "time": "08:00"},
			 "arrival": {"airport": "DEN", "time": "11:30"}, "duration": 150,
			 "layoverInfo": {"airport": "DEN", "duration": "1h 35m", "weatherRisk": "low",
			   "airportComplexity": {"level": "medium", "concerns": ["construction"]}}}
		]
	}`

	rec, err := upstream.DecodeRecord([]byte(direct), "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	d, ok := rec.(*upstream.DirectSearchRecord)
	if !ok {
		t.Fatalf("expected *DirectSearchRecord, got %T", rec)
	}
	if d.FlightNumber != "1234" {
		t.Errorf("numeric flight number should keep its spelling, got %q", d.FlightNumber)
	}
	if d.TotalMinutes() != 330 {
		t.Errorf("expected 330 minutes, got %d", d.TotalMinutes())
	}
	if !d.Price.Valid || d.Price.Value != 1234.5 {
		t.Errorf("expected price 1234.5, got %+v", d.Price)
	}
	if len(d.Connections) != 1 || d.Connections[0].LayoverInfo == nil {
		t.Fatalf("expected one connection with layover, got %+v", d.Connections)
	}
	li := d.Connections[0].LayoverInfo
	if li.Duration.Value != 95 || li.WeatherRisk.Level != "low" || li.AirportComplexity.Level != "medium" {
		t.Errorf("unexpected layover analysis %+v", li)
	}
	if len(li.AirportComplexity.Concerns) != 1 {
		t.Errorf("expected concerns to decode, got %v", li.AirportComplexity.Concerns)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}

	route := `{
		"origin": "LAX", "destination": "JFK", "total_duration": 360,
		"flights": [
			{"departure_airport": "LAX", "arrival_airport": "DEN", "duration": "2h 30m"},
			{"departure_airport": "DEN", "arrival_airport": "JFK", "duration": 95}
		],
		"layovers": [{"airport": "DEN", "layover_duration_minutes": 95, "duration": "2h"}]
	}`
	rec, err = upstream.DecodeRecord([]byte(route), "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, ok := rec.(*upstream.RouteSearchRecord)
	if !ok {
		t.Fatalf("expected *RouteSearchRecord, got %T", rec)
	}
	if r.Kind() != upstream.SearchRoute || r.Base().Origin != "LAX" {
		t.Errorf("unexpected kind/base: %s %q", r.Kind(), r.Base().Origin)
	}
	if r.Flights[0].Duration.Value != 150 {
		t.Errorf("expected 150, got %d", r.Flights[0].Duration.Value)
	}
	if got := r.Layovers[0].Minutes(); got != 95 {
		t.Errorf("explicit minutes should win over text, got %d", got)
	}
}

func TestDecodeRecord_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantIs  error
		decodes bool
	}{
		{name: "empty", raw: "  ", wantIs: upstream.ErrEmptyPayload},
		{name: "null", raw: "null", wantIs: upstream.ErrEmptyPayload},
		{name: "array", raw: `[{"origin":"LAX"}]`, wantIs: upstream.ErrUnknownShape},
		{name: "string", raw: `"LAX"`, wantIs: upstream.ErrUnknownShape},
		{name: "truncated", raw: `{"origin":`},
		{name: "object where array expected", raw: `{"origin":"LAX","destination":"JFK","layovers":{"airport":"DEN"}}`},
		{name: "object where string expected", raw: `{"origin":{"code":"LAX"}}`},
		{name: "array where number expected", raw: `{"origin":"LAX","price":[1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := upstream.DecodeRecord([]byte(tt.raw), "")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected %v, got %v", tt.wantIs, err)
			}
		})
	}
}

func TestValidate_RequiresEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "codes", raw: `{"origin":"LAX","destination":"JFK"}`},
		{name: "cities only", raw: `{"origin_city":"Los Angeles","destination_city":"New York"}`},
		{name: "missing origin", raw: `{"destination":"JFK"}`, wantErr: true},
		{name: "missing destination on route", raw: `{"origin":"LAX","flights":[]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := upstream.DecodeRecord([]byte(tt.raw), "")
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if err := rec.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		hint      upstream.SearchType
		wantCount int
		wantType  upstream.SearchType
		wantErr   error
	}{
		{name: "bare array", body: `[{"origin":"LAX"},{"origin":"SFO"}]`, wantCount: 2},
		{name: "envelope", body: `{"search_type":"route","results":[{"origin":"LAX"}]}`, wantCount: 1, wantType: upstream.SearchRoute},
		{name: "envelope hint override", body: `{"search_type":"route","results":[]}`, hint: upstream.SearchDirect, wantCount: 0, wantType: upstream.SearchDirect},
		{name: "single record", body: `{"origin":"LAX","destination":"JFK"}`, wantCount: 1},
		{name: "empty", body: "", wantErr: upstream.ErrEmptyPayload},
		{name: "scalar", body: `42`, wantErr: upstream.ErrUnknownShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := upstream.DecodeResponse([]byte(tt.body), tt.hint)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(resp.Records) != tt.wantCount {
				t.Errorf("expected %d records, got %d", tt.wantCount, len(resp.Records))
			}
			if resp.SearchType != tt.wantType {
				t.Errorf("expected search type %q, got %q", tt.wantType, resp.SearchType)
			}
		})
	}
}
