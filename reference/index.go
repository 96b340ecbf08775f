package reference

import (
	"strings"
)

// DefaultSubstringMinLength is the shortest query eligible for substring matching.
const DefaultSubstringMinLength = 3

// Index stores the reference tables in memory for fast lookups
type Index struct {
	airlines []Airline
	aircraft []Aircraft
	airports []Airport

	airlineKeys  keyIndex
	aircraftKeys keyIndex
	airportKeys  keyIndex

	substringMin int
}

// keyIndex maps normalized codes and names to table positions.
type keyIndex struct {
	byCode map[string]int // upper-cased code -> position
	byName map[string]int // lower-cased name -> position
	names  []string       // lower-cased names in table order
}

// Option configures an Index
type Option func(*Index)

// WithSubstringMinLength sets the minimum query length for substring matching.
// Values below 1 disable substring matching.
func WithSubstringMinLength(n int) Option {
	return func(x *Index) { x.substringMin = n }
}

// NewIndex builds an index over the given tables. The tables are copied.
func NewIndex(t Tables, opts ...Option) *Index {
	x := &Index{
		airlines:     append([]Airline(nil), t.Airlines...),
		aircraft:     append([]Aircraft(nil), t.Aircraft...),
		airports:     append([]Airport(nil), t.Airports...),
		substringMin: DefaultSubstringMinLength,
	}
	for _, opt := range opts {
		opt(x)
	}

	x.airlineKeys = newKeyIndex(len(x.airlines))
	for i, a := range x.airlines {
		x.airlineKeys.add(i, a.Name, a.Code, a.ICAO)
	}
	x.aircraftKeys = newKeyIndex(len(x.aircraft))
	for i, a := range x.aircraft {
		x.aircraftKeys.add(i, a.Name, a.Code)
	}
	x.airportKeys = newKeyIndex(len(x.airports))
	for i, a := range x.airports {
		x.airportKeys.add(i, a.Name, a.Code, a.ICAO)
	}
	return x
}

// MatchAirline resolves an airline by code, name or name fragment.
func (x *Index) MatchAirline(query string) (Airline, Match) {
	i, m := x.airlineKeys.lookup(query, x.substringMin)
	if m == MatchNone {
		return Airline{}, MatchNone
	}
	return x.airlines[i], m
}

// ResolveAirline is MatchAirline without the rule detail.
func (x *Index) ResolveAirline(query string) (Airline, bool) {
	a, m := x.MatchAirline(query)
	return a, m != MatchNone
}

// AirlineCode returns the canonical code for an airline, or the input unchanged when it
// does not resolve.
func (x *Index) AirlineCode(query string) string {
	if a, ok := x.ResolveAirline(query); ok {
		return a.Code
	}
	return query
}

// MatchAircraft resolves an aircraft type by designator, name or name fragment.
func (x *Index) MatchAircraft(query string) (Aircraft, Match) {
	i, m := x.aircraftKeys.lookup(query, x.substringMin)
	if m == MatchNone {
		return Aircraft{}, MatchNone
	}
	return x.aircraft[i], m
}

// ResolveAircraft is MatchAircraft without the rule detail.
func (x *Index) ResolveAircraft(query string) (Aircraft, bool) {
	a, m := x.MatchAircraft(query)
	return a, m != MatchNone
}

// MatchAirport resolves an airport by code, name or name fragment.
func (x *Index) MatchAirport(query string) (Airport, Match) {
	i, m := x.airportKeys.lookup(query, x.substringMin)
	if m == MatchNone {
		return Airport{}, MatchNone
	}
	return x.airports[i], m
}

// AirportByCode resolves an airport by IATA or ICAO code only. Codes never fall through
// to name matching.
func (x *Index) AirportByCode(code string) (Airport, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return Airport{}, false
	}
	i, ok := x.airportKeys.byCode[c]
	if !ok {
		return Airport{}, false
	}
	return x.airports[i], true
}

// ResolveAirport is MatchAirport without the rule detail.
func (x *Index) ResolveAirport(query string) (Airport, bool) {
	a, m := x.MatchAirport(query)
	return a, m != MatchNone
}

// Accessor methods
func (x *Index) Airlines() []Airline { return append([]Airline(nil), x.airlines...) }
func (x *Index) Aircraft() []Aircraft { return append([]Aircraft(nil), x.aircraft...) }
func (x *Index) Airports() []Airport { return append([]Airport(nil), x.airports...) }
func (x *Index) SubstringMinLength() int { return x.substringMin }

func newKeyIndex(n int) keyIndex {
	return keyIndex{
		byCode: make(map[string]int, n*2),
		byName: make(map[string]int, n),
		names:  make([]string, 0, n),
	}
}

func (k *keyIndex) add(pos int, name string, codes ...string) {
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, exists := k.byCode[c]; !exists {
			k.byCode[c] = pos
		}
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if _, exists := k.byName[n]; !exists && n != "" {
		k.byName[n] = pos
	}
	k.names = append(k.names, n)
}

func (k *keyIndex) lookup(query string, substringMin int) (int, Match) {
	q := strings.TrimSpace(query)
	if q == "" {
		return 0, MatchNone
	}
	if i, ok := k.byCode[strings.ToUpper(q)]; ok {
		return i, MatchCode
	}
	lq := strings.ToLower(q)
	if i, ok := k.byName[lq]; ok {
		return i, MatchName
	}
	if substringMin < 1 || len(lq) < substringMin {
		return 0, MatchNone
	}
	for i, name := range k.names {
		if name == "" {
			continue
		}
		if strings.Contains(name, lq) || strings.Contains(lq, name) {
			return i, MatchSubstring
		}
	}
	return 0, MatchNone
}
