package converter

import "github.com/theoremus-urban-solutions/flight-normalizer/reference"

// Options contains everything a Converter needs besides the reference data.
// The zero value is usable.
type Options struct {
	// Workers bounds the number of records converted in parallel by ConvertAll.
	// Values below 1 mean DefaultWorkers.
	Workers int

	// Tracer receives decision events. Nil means NopTracer.
	Tracer Tracer
}

// DefaultWorkers is used when Options.Workers is not set.
const DefaultWorkers = 4

// Resolver is the read-only reference lookup the converter depends on.
// *reference.Index implements it. The Match methods report which rule fired so
// substring guesses can be traced; airport codes only ever go through AirportByCode.
type Resolver interface {
	MatchAirline(query string) (reference.Airline, reference.Match)
	MatchAircraft(query string) (reference.Aircraft, reference.Match)
	MatchAirport(query string) (reference.Airport, reference.Match)
	AirportByCode(code string) (reference.Airport, bool)
}
