package formatter

import (
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/flight-normalizer/converter"
	"github.com/theoremus-urban-solutions/flight-normalizer/flight"
	"github.com/theoremus-urban-solutions/flight-normalizer/risk"
)

// FlightResponse is the envelope returned to clients.
type FlightResponse struct {
	ResponseTimestamp string          `json:"responseTimestamp"`
	SearchType        string          `json:"searchType,omitempty"`
	Count             int             `json:"count"`
	Flights           []flight.Flight `json:"flights"`
	Dropped           []DroppedRecord `json:"dropped,omitempty"`
}

// DroppedRecord reports an upstream record excluded from the result.
type DroppedRecord struct {
	Index    int    `json:"index"`
	RecordID string `json:"recordId,omitempty"`
	Stage    string `json:"stage"`
	Reason   string `json:"reason"`
}

// WrapFlights wraps a batch result in a response envelope
func WrapFlights(res converter.BatchResult, searchType string, at time.Time) *FlightResponse {
	flights := res.Flights
	if flights == nil {
		flights = []flight.Flight{}
	}
	out := &FlightResponse{
		ResponseTimestamp: at.UTC().Format(time.RFC3339),
		SearchType:        searchType,
		Count:             len(flights),
		Flights:           flights,
	}
	for _, d := range res.Dropped {
		if d == nil {
			continue
		}
		reason := ""
		if d.Err != nil {
			reason = d.Err.Error()
		}
		out.Dropped = append(out.Dropped, DroppedRecord{
			Index:    d.Index,
			RecordID: d.RecordID,
			Stage:    string(d.Stage),
			Reason:   reason,
		})
	}
	return out
}

// Filter narrows a flight list. Zero fields do not filter; MaxStops below zero means
// any number of stops.
type Filter struct {
	Airline  string
	Airport  string
	MaxStops int
	MaxRisk  string
}

// FilterFlights applies filters to a flight list, keeping order
func FilterFlights(flights []flight.Flight, f Filter) []flight.Flight {
	airline := strings.ToLower(strings.TrimSpace(f.Airline))
	airport := strings.ToUpper(strings.TrimSpace(f.Airport))
	maxRisk := risk.Normalize(f.MaxRisk)

	filtered := []flight.Flight{}
	for _, fl := range flights {
		// Filter by airline code or name
		if airline != "" && strings.ToLower(fl.Airline.Code) != airline &&
			!strings.Contains(strings.ToLower(fl.Airline.Name), airline) {
			continue
		}

		// Filter by stop count
		if f.MaxStops >= 0 && fl.Stops > f.MaxStops {
			continue
		}

		// Filter by overall risk; unknown never passes a risk ceiling
		if maxRisk.Known() {
			level := risk.Normalize(fl.RiskLevel)
			if !level.Known() || level.Severity() > maxRisk.Severity() {
				continue
			}
		}

		// Filter by airport (endpoints or layovers)
		if airport != "" && !touchesAirport(fl, airport) {
			continue
		}

		filtered = append(filtered, fl)
	}
	return filtered
}

func touchesAirport(fl flight.Flight, code string) bool {
	if fl.Departure.Airport == code || fl.Arrival.Airport == code {
		return true
	}
	if fl.LayoverInfo != nil && fl.LayoverInfo.Airport == code {
		return true
	}
	for _, c := range fl.Connections {
		if c.Departure.Airport == code || c.Arrival.Airport == code {
			return true
		}
		if c.LayoverInfo != nil && c.LayoverInfo.Airport == code {
			return true
		}
	}
	return false
}
