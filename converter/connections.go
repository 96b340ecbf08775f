package converter

import (
	"strings"

	"github.com/theoremus-urban-solutions/flight-normalizer/flight"
	"github.com/theoremus-urban-solutions/flight-normalizer/risk"
	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
	"github.com/theoremus-urban-solutions/flight-normalizer/utils"
)

// itinerary is what the connection builder produces for one record. At most one of
// connections and layover is set.
type itinerary struct {
	connections []flight.Connection
	layover     *flight.LayoverInfo
	layoverRisk risk.Level
	final       *flight.Duration
	stops       int
}

// CalculateTotalLayoverTime sums the layover minutes of a flattened layover list,
// independently of how the layovers correlate with segments.
func CalculateTotalLayoverTime(layovers []upstream.Layover) int {
	total := 0
	for _, l := range layovers {
		total += l.Minutes()
	}
	return total
}

// analysisLookup finds per-airport detail in a record's connection analysis and in a
// pre-assembled connections array.
type analysisLookup struct {
	analysis    []upstream.ConnectionAnalysis
	connections []upstream.Connection
}

func (l analysisLookup) forAirport(code string) *upstream.ConnectionAnalysis {
	for i := range l.analysis {
		if sameAirport(l.analysis[i].Airport.String(), code) {
			return &l.analysis[i]
		}
	}
	return nil
}

func (l analysisLookup) layoverFor(code string) *upstream.LayoverAnalysis {
	for i := range l.connections {
		li := l.connections[i].LayoverInfo
		if li == nil {
			continue
		}
		at := li.Airport.Or(l.connections[i].Arrival.Airport.String())
		if sameAirport(at, code) {
			return li
		}
	}
	return nil
}

// fromPreassembled passes a connections array through, normalizing durations and times
// and filling per-leg risk defaults.
func (c *Converter) fromPreassembled(conns []upstream.Connection, look analysisLookup, fallbackAirline string, tr recordTrace) itinerary {
	var it itinerary
	if len(conns) == 0 {
		return it
	}
	it.connections = make([]flight.Connection, 0, len(conns))
	withLayover := 0

	for i, conn := range conns {
		fc := flight.Connection{
			FlightNumber: conn.FlightNumber.String(),
			Airline:      conn.Airline.Or(fallbackAirline),
			Departure:    c.endpoint(conn.Departure.Airport.String(), "", "", conn.Departure.Time.String(), tr),
			Arrival:      c.endpoint(conn.Arrival.Airport.String(), "", "", conn.Arrival.Time.String(), tr),
			Duration:     durationOf(conn.Duration.Value),
		}
		_, fc.Arrival.DayOffset = utils.DayOffset(conn.Departure.Time.String(), conn.Arrival.Time.String(), conn.Duration.Value)
		fc.DistanceKm = c.distance(fc.Departure.Airport, fc.Arrival.Airport)

		level := risk.Unknown
		if li := conn.LayoverInfo; li != nil {
			airport := li.Airport.Or(conn.Arrival.Airport.String())
			ca := look.forAirport(airport)
			info := c.layoverInfo(layoverInput{
				airport:       airport,
				airportName:   li.AirportName.String(),
				city:          li.City.String(),
				minutes:       li.Duration.Value,
				arrivalTime:   li.ArrivalTime.String(),
				departureTime: li.DepartureTime.String(),
				weather:       li.WeatherRisk,
				complexity:    li.AirportComplexity,
			}, ca, tr)
			if info == nil {
				tr.emit(EventLayoverUnlocated, "", "pre-assembled connection "+fc.FlightNumber)
			} else {
				fc.LayoverInfo = info
				level = connectionRisk(li.ConnectionRisk.String(), ca)
			}
		}
		// a closing leg without a layover has no connection to assess
		if i == len(conns)-1 && conn.LayoverInfo == nil {
			it.connections = append(it.connections, fc)
			continue
		}
		if level == risk.Unknown {
			tr.emit(EventConnectionRiskMiss, fc.Arrival.Airport, "")
		}
		fc.ConnectionRisk = level.String()
		it.connections = append(it.connections, fc)
		if fc.LayoverInfo != nil {
			withLayover++
		}
	}
	// the array usually ends with the final leg, which is not followed by a stop
	it.stops = max(len(it.connections)-1, withLayover)
	return it
}

// fromFlattened correlates route segments with layovers by arrival airport.
//
// Every segment but the last becomes a Connection carrying the first unused layover at
// its arrival airport. Layovers nothing claims are dropped. The final segment's travel
// time is the total minus every preceding segment and layover, floored at zero. With
// fewer than two segments the first layover becomes the flight's single LayoverInfo.
func (c *Converter) fromFlattened(r *upstream.RouteSearchRecord, look analysisLookup, total int, haveTotal bool, fallbackAirline string, tr recordTrace) itinerary {
	var it itinerary
	segments, layovers := r.Flights, r.Layovers

	if len(segments) < 2 {
		if len(layovers) == 0 {
			return it
		}
		for i, l := range layovers {
			if i == 0 {
				continue
			}
			tr.emit(EventLayoverUnmatched, l.Airport.String(), "single layover form keeps only the first")
		}
		first := layovers[0]
		ca := look.forAirport(first.Airport.String())
		it.layover = c.flattenedLayover(first, look, ca, tr)
		if it.layover == nil {
			tr.emit(EventLayoverUnlocated, "", "")
			return it
		}
		it.stops = 1
		it.layoverRisk = feasibilityRisk(first, look, ca)
		if it.layoverRisk == risk.Unknown {
			tr.emit(EventConnectionRiskMiss, it.layover.Airport, "")
		}
		return it
	}

	used := make([]bool, len(layovers))
	consumed := 0
	it.connections = make([]flight.Connection, 0, len(segments)-1)

	for _, seg := range segments[:len(segments)-1] {
		fc := c.segmentConnection(seg, fallbackAirline, tr)
		consumed += seg.Duration.Value

		j := matchLayover(layovers, used, seg.ArrivalAirport.String())
		level := risk.Unknown
		if j >= 0 {
			used[j] = true
			l := layovers[j]
			consumed += l.Minutes()
			ca := look.forAirport(l.Airport.String())
			fc.LayoverInfo = c.flattenedLayover(l, look, ca, tr)
			level = feasibilityRisk(l, look, ca)
			tr.emit(EventLayoverMatched, l.Airport.String(), utils.FormatDuration(l.Minutes()))
		} else {
			tr.emit(EventSegmentNoLayover, seg.ArrivalAirport.String(), fc.FlightNumber)
		}
		if level == risk.Unknown {
			tr.emit(EventConnectionRiskMiss, fc.Arrival.Airport, "")
		}
		fc.ConnectionRisk = level.String()
		it.connections = append(it.connections, fc)
	}

	it.stops = len(it.connections)

	for j, l := range layovers {
		if !used[j] {
			tr.emit(EventLayoverUnmatched, l.Airport.String(), "no segment arrives there")
		}
	}

	if haveTotal {
		remaining := total - consumed
		if remaining < 0 {
			tr.emit(EventFinalSegmentFloor, "", utils.FormatDuration(-remaining)+" over total")
			remaining = 0
		}
		d := durationOf(remaining)
		it.final = &d
	}
	return it
}

func (c *Converter) segmentConnection(seg upstream.Segment, fallbackAirline string, tr recordTrace) flight.Connection {
	fc := flight.Connection{
		FlightNumber: seg.FlightNumber.String(),
		Airline:      seg.Airline.Or(fallbackAirline),
		Departure:    c.endpoint(seg.DepartureAirport.String(), "", "", seg.DepartureTime.String(), tr),
		Arrival:      c.endpoint(seg.ArrivalAirport.String(), "", "", seg.ArrivalTime.String(), tr),
		Duration:     durationOf(seg.Duration.Value),
	}
	_, fc.Arrival.DayOffset = utils.DayOffset(seg.DepartureTime.String(), seg.ArrivalTime.String(), seg.Duration.Value)
	fc.DistanceKm = c.distance(fc.Departure.Airport, fc.Arrival.Airport)
	return fc
}

func (c *Converter) flattenedLayover(l upstream.Layover, look analysisLookup, ca *upstream.ConnectionAnalysis, tr recordTrace) *flight.LayoverInfo {
	in := layoverInput{
		airport:       l.Airport.String(),
		airportName:   l.AirportName.String(),
		city:          l.City.String(),
		minutes:       l.Minutes(),
		arrivalTime:   l.ArrivalTime.String(),
		departureTime: l.DepartureTime.String(),
	}
	// a mirrored pre-assembled layover carries the richer weather and complexity detail
	if li := look.layoverFor(in.airport); li != nil {
		in.weather = li.WeatherRisk
		in.complexity = li.AirportComplexity
	}
	return c.layoverInfo(in, ca, tr)
}

type layoverInput struct {
	airport       string
	airportName   string
	city          string
	minutes       int
	arrivalTime   string
	departureTime string
	weather       upstream.RiskSignal
	complexity    upstream.RiskSignal
}

// layoverInfo builds a canonical layover. It returns nil when neither an airport nor a
// city can be established.
func (c *Converter) layoverInfo(in layoverInput, ca *upstream.ConnectionAnalysis, tr recordTrace) *flight.LayoverInfo {
	ep := c.endpoint(in.airport, in.airportName, in.city, "", tr)
	if ep.Airport == "" && ep.City == "" {
		return nil
	}

	weather, complexity := in.weather, in.complexity
	if ca != nil {
		if !weather.Present() {
			weather = ca.WeatherRisk
		}
		if !complexity.Present() {
			complexity = ca.AirportComplexity
		}
	}

	return &flight.LayoverInfo{
		Airport:           ep.Airport,
		AirportName:       ep.AirportName,
		City:              ep.City,
		Duration:          utils.FormatDuration(in.minutes),
		DurationMinutes:   max(in.minutes, 0),
		ArrivalTime:       displayTime(in.arrivalTime),
		DepartureTime:     displayTime(in.departureTime),
		WeatherRisk:       assessment(weather),
		AirportComplexity: assessment(complexity),
	}
}

// matchLayover returns the first unused layover at airport, or -1.
func matchLayover(layovers []upstream.Layover, used []bool, airport string) int {
	if strings.TrimSpace(airport) == "" {
		return -1
	}
	for j, l := range layovers {
		if !used[j] && sameAirport(l.Airport.String(), airport) {
			return j
		}
	}
	return -1
}

// feasibilityRisk reads connection risk for a flattened layover: its own feasibility,
// then a mirrored pre-assembled layover, then the connection analysis.
func feasibilityRisk(l upstream.Layover, look analysisLookup, ca *upstream.ConnectionAnalysis) risk.Level {
	if l.Feasibility != nil && l.Feasibility.RiskLevel != "" {
		return risk.Normalize(l.Feasibility.RiskLevel.String())
	}
	var mirrored string
	if li := look.layoverFor(l.Airport.String()); li != nil {
		mirrored = li.ConnectionRisk.String()
	}
	return connectionRisk(mirrored, ca)
}

func connectionRisk(explicit string, ca *upstream.ConnectionAnalysis) risk.Level {
	if strings.TrimSpace(explicit) != "" {
		return risk.Normalize(explicit)
	}
	if ca != nil && ca.LayoverFeasibility != nil {
		return risk.Normalize(ca.LayoverFeasibility.RiskLevel.String())
	}
	return risk.Unknown
}

func assessment(s upstream.RiskSignal) flight.Assessment {
	a := flight.Assessment{
		Level:       risk.Normalize(s.Level).String(),
		Description: s.Description,
	}
	if len(s.Concerns) > 0 {
		a.Concerns = append([]string(nil), s.Concerns...)
	}
	return a
}

func durationOf(minutes int) flight.Duration {
	minutes = max(minutes, 0)
	return flight.Duration{Minutes: minutes, Text: utils.FormatDuration(minutes)}
}

func sameAirport(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
