package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/flight-normalizer/flight"
	"github.com/theoremus-urban-solutions/flight-normalizer/reference"
	"github.com/theoremus-urban-solutions/flight-normalizer/risk"
	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
	"github.com/theoremus-urban-solutions/flight-normalizer/utils"
)

// flightIDNamespace seeds generated flight IDs.
var flightIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/theoremus-urban-solutions/flight-normalizer/flight"))

// Converter turns raw upstream records into canonical flights
type Converter struct {
	ref     Resolver
	tracer  Tracer
	workers int
}

// NewConverter creates a new converter. A nil resolver means the embedded reference dataset.
func NewConverter(ref Resolver, opts Options) *Converter {
	if ref == nil {
		ref = reference.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = NopTracer{}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Converter{ref: ref, tracer: tracer, workers: workers}
}

// Convert decodes, validates and assembles one raw record.
//
// It never panics. On failure it returns a nil flight and a *ConversionError; callers
// skip the record and keep the rest of the result list.
func (c *Converter) Convert(raw []byte, index int, hint upstream.SearchType) (f *flight.Flight, err error) {
	var recordID string
	defer func() {
		if r := recover(); r != nil {
			f = nil
			err = &ConversionError{Index: index, RecordID: recordID, Stage: StagePanic, Err: fmt.Errorf("%v", r)}
		}
		if err != nil {
			c.tracer.Trace(Event{Kind: EventRecordDropped, Index: index, RecordID: recordID, Detail: err.Error()})
		}
	}()

	rec, derr := upstream.DecodeRecord(raw, hint)
	if derr != nil {
		return nil, &ConversionError{Index: index, Stage: StageDecode, Err: derr}
	}
	recordID = rec.Base().ID.String()
	return c.convertRecord(rec, index)
}

// ConvertRecord validates and assembles an already decoded record with the same failure
// contract as Convert.
func (c *Converter) ConvertRecord(rec upstream.Record, index int) (f *flight.Flight, err error) {
	var recordID string
	defer func() {
		if r := recover(); r != nil {
			f = nil
			err = &ConversionError{Index: index, RecordID: recordID, Stage: StagePanic, Err: fmt.Errorf("%v", r)}
		}
		if err != nil {
			c.tracer.Trace(Event{Kind: EventRecordDropped, Index: index, RecordID: recordID, Detail: err.Error()})
		}
	}()

	if rec == nil {
		return nil, &ConversionError{Index: index, Stage: StageDecode, Err: upstream.ErrEmptyPayload}
	}
	recordID = rec.Base().ID.String()
	return c.convertRecord(rec, index)
}

func (c *Converter) convertRecord(rec upstream.Record, index int) (*flight.Flight, error) {
	id := rec.Base().ID.String()
	if err := rec.Validate(); err != nil {
		return nil, &ConversionError{Index: index, RecordID: id, Stage: StageValidate, Err: err}
	}
	f, err := c.assemble(rec, index)
	if err != nil {
		return nil, &ConversionError{Index: index, RecordID: id, Stage: StageAssemble, Err: err}
	}
	return f, nil
}

func (c *Converter) assemble(rec upstream.Record, index int) (*flight.Flight, error) {
	base := rec.Base()
	tr := recordTrace{tracer: c.tracer, index: index, recordID: base.ID.String()}
	tr.emit(EventShapeDetected, "", string(rec.Kind()))

	if base.RiskAnalysis == nil {
		tr.emit(EventAnalysisMissing, "", "")
	}
	ra := base.Analysis()
	look := analysisLookup{analysis: ra.ConnectionAnalysis}

	f := &flight.Flight{
		SearchType:   flight.SearchType(rec.Kind()),
		FlightNumber: base.FlightNumber.String(),
		Price:        base.Price.Ptr(),
	}

	total, haveTotal := base.TotalMinutes(), base.TotalDuration.Valid || base.Duration.Valid
	airlineText, aircraftText := base.Airline.String(), base.Aircraft.String()
	var it itinerary

	switch r := rec.(type) {
	case *upstream.DirectSearchRecord:
		look.connections = r.Connections
		it = c.fromPreassembled(r.Connections, look, airlineText, tr)

	case *upstream.RouteSearchRecord:
		look.connections = r.Connections
		if len(r.Flights) > 0 {
			first := r.Flights[0]
			airlineText = firstNonEmpty(airlineText, first.Airline.String())
			aircraftText = firstNonEmpty(aircraftText, first.Aircraft.String())
			f.FlightNumber = firstNonEmpty(f.FlightNumber, first.FlightNumber.String())
		}
		if !haveTotal && len(r.Flights) > 0 {
			for _, s := range r.Flights {
				total += s.Duration.Value
			}
			total += CalculateTotalLayoverTime(r.Layovers)
			haveTotal = true
			tr.emit(EventDurationDerived, "", utils.FormatDuration(total))
		}
		if len(r.Flights) == 0 && len(r.Layovers) == 0 {
			it = c.fromPreassembled(r.Connections, look, airlineText, tr)
		} else {
			it = c.fromFlattened(r, look, total, haveTotal, airlineText, tr)
		}

	default:
		return nil, fmt.Errorf("unsupported record type %T", rec)
	}

	var airlineRef reference.Airline
	f.Airline, airlineRef = c.airline(airlineText, base.AirlineCode.String(), tr)
	f.Aircraft = c.aircraft(aircraftText, tr)

	f.Departure = c.endpoint(base.Origin.String(), base.OriginName.String(), base.OriginCity.String(), base.DepartureTime.String(), tr)
	f.Arrival = c.endpoint(base.Destination.String(), base.DestinationName.String(), base.DestinationCity.String(), base.ArrivalTime.String(), tr)
	f.Duration = durationOf(total)
	_, f.Arrival.DayOffset = utils.DayOffset(base.DepartureTime.String(), base.ArrivalTime.String(), total)
	f.DistanceKm = c.distance(f.Departure.Airport, f.Arrival.Airport)

	f.Connections = it.connections
	f.LayoverInfo = it.layover
	if len(f.Connections) > 0 {
		f.FinalSegmentTravelTime = it.final
	}
	if f.Topology() != flight.TopologyDirect {
		f.Stops = it.stops
	}

	f.RiskFactors = riskFactors(f, ra, it)
	f.RiskLevel = f.RiskFactors.OverallRisk
	f.RiskScore = ra.RiskScore.Ptr()

	if hp := ra.HistoricalPerformance; hp != nil && hp.OnTimeRate.Valid {
		f.OnTimeRate = hp.OnTimeRate.Ptr()
	} else if airlineRef.OnTimeRate > 0 {
		v := airlineRef.OnTimeRate
		f.OnTimeRate = &v
	}

	f.InsuranceRecommendation = insurance(ra, f.RiskFactors)
	if f.InsuranceRecommendation != nil && f.InsuranceRecommendation.Derived {
		tr.emit(EventInsuranceDerived, "", f.InsuranceRecommendation.Reason)
	}

	f.ID = base.ID.String()
	if f.ID == "" {
		f.ID = flightID(f, index)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// airline resolves the carrier by code first, then by display name. An unresolved code
// is kept as given.
func (c *Converter) airline(name, code string, tr recordTrace) (flight.Airline, reference.Airline) {
	for _, q := range []string{code, name} {
		if q == "" {
			continue
		}
		if a, m := c.ref.MatchAirline(q); m != reference.MatchNone {
			traceSubstring(tr, m, "", "airline "+q+" -> "+a.Code)
			return flight.Airline{Name: firstNonEmpty(name, a.Name), Code: a.Code}, a
		}
	}
	if name != "" || code != "" {
		tr.emit(EventReferenceUnmatched, "", "airline "+firstNonEmpty(code, name))
	}
	return flight.Airline{Name: name, Code: firstNonEmpty(code, name)}, reference.Airline{}
}

func (c *Converter) aircraft(text string, tr recordTrace) string {
	if text == "" {
		return ""
	}
	if a, m := c.ref.MatchAircraft(text); m != reference.MatchNone {
		traceSubstring(tr, m, "", "aircraft "+text+" -> "+a.Code)
		return a.Code
	}
	tr.emit(EventReferenceUnmatched, "", "aircraft "+text)
	return text
}

// endpoint builds one end of a flight or leg. Upstream names win over reference data.
//
// A code is looked up by exact code only; an unknown code keeps whatever the upstream
// sent and gains nothing from the table. Name or city text without a code may resolve
// through the substring fallback, which is traced.
func (c *Converter) endpoint(code, name, city, rawTime string, tr recordTrace) flight.Endpoint {
	ep := flight.Endpoint{
		Airport:     strings.ToUpper(strings.TrimSpace(code)),
		AirportName: name,
		City:        city,
		Time:        displayTime(rawTime),
	}

	var a reference.Airport
	switch {
	case ep.Airport != "":
		found, ok := c.ref.AirportByCode(ep.Airport)
		if !ok {
			tr.emit(EventReferenceUnmatched, ep.Airport, "airport")
			return ep
		}
		a = found
	case firstNonEmpty(name, city) != "":
		query := firstNonEmpty(name, city)
		found, m := c.ref.MatchAirport(query)
		if m == reference.MatchNone {
			tr.emit(EventReferenceUnmatched, "", "airport "+query)
			return ep
		}
		traceSubstring(tr, m, found.Code, "airport "+query)
		a = found
		ep.Airport = a.Code
	default:
		return ep
	}

	ep.AirportName = firstNonEmpty(ep.AirportName, a.Name)
	ep.City = firstNonEmpty(ep.City, a.City)
	ep.Country = a.Country
	return ep
}

func traceSubstring(tr recordTrace, m reference.Match, airport, detail string) {
	if m == reference.MatchSubstring {
		tr.emit(EventReferenceSubstring, airport, detail)
	}
}

// distance is the great-circle distance between two resolved airports, or nil.
func (c *Converter) distance(from, to string) *float64 {
	if from == "" || to == "" {
		return nil
	}
	a, ok := c.ref.AirportByCode(from)
	if !ok || !a.HasCoordinates() {
		return nil
	}
	b, ok := c.ref.AirportByCode(to)
	if !ok || !b.HasCoordinates() {
		return nil
	}
	km, ok := utils.GreatCircleKM(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	if !ok {
		return nil
	}
	return &km
}

func riskFactors(f *flight.Flight, ra *upstream.RiskAnalysis, it itinerary) flight.RiskFactors {
	rf := flight.RiskFactors{
		OverallRisk:      risk.Normalize(ra.RiskLevel.String()).String(),
		DelayProbability: ra.DelayProbability.Ptr(),
		CancellationRate: ra.CancellationProbability.Ptr(),
		ConnectionTime:   f.TotalLayoverMinutes(),
		SeasonalFactors:  append([]string{}, ra.SeasonalFactors...),
		KeyRiskFactors:   append([]string{}, ra.KeyRiskFactors...),
	}
	if hp := ra.HistoricalPerformance; hp != nil {
		rf.HistoricalDelays = hp.AverageDelayMinutes.Ptr()
	}

	var weather, complexity []string
	for _, a := range []*upstream.AirportAnalysis{ra.OriginAnalysis, ra.DestinationAnalysis} {
		if a != nil {
			weather = append(weather, a.WeatherRisk.Level)
			complexity = append(complexity, a.AirportComplexity.Level)
		}
	}
	layovers := make([]*flight.LayoverInfo, 0, len(f.Connections)+1)
	for i := range f.Connections {
		layovers = append(layovers, f.Connections[i].LayoverInfo)
	}
	layovers = append(layovers, f.LayoverInfo)
	for _, li := range layovers {
		if li != nil {
			weather = append(weather, li.WeatherRisk.Level)
			complexity = append(complexity, li.AirportComplexity.Level)
		}
	}
	for _, ca := range ra.ConnectionAnalysis {
		weather = append(weather, ca.WeatherRisk.Level)
		complexity = append(complexity, ca.AirportComplexity.Level)
	}
	rf.WeatherRisk = risk.HighestOf(weather...).String()
	rf.AirportComplexity = risk.HighestOf(complexity...).String()

	switch f.Topology() {
	case flight.TopologyDirect:
		rf.ConnectionType = flight.ConnectionDirect
		rf.ConnectionRisk = risk.Low.String()
	case flight.TopologySingleLayover:
		rf.ConnectionType = flight.ConnectionConnecting
		rf.ConnectionRisk = risk.ConnectionRiskOf(it.layoverRisk.String()).String()
	default:
		rf.ConnectionType = flight.ConnectionConnecting
		levels := make([]string, 0, len(f.Connections))
		for _, conn := range f.Connections {
			if conn.ConnectionRisk != "" {
				levels = append(levels, conn.ConnectionRisk)
			}
		}
		if len(levels) == 0 && f.Stops == 0 {
			// a lone leg with no stop after it connects nothing
			rf.ConnectionRisk = risk.Low.String()
			break
		}
		rf.ConnectionRisk = risk.ConnectionRiskOf(levels...).String()
	}
	return rf
}

func insurance(ra *upstream.RiskAnalysis, rf flight.RiskFactors) *flight.InsuranceRecommendation {
	if ir := ra.InsuranceRecommendation; ir != nil {
		return &flight.InsuranceRecommendation{
			Recommended:   ir.Recommended,
			Reason:        ir.Reason,
			CoverageTypes: append([]string(nil), ir.CoverageTypes...),
		}
	}
	rec := risk.RecommendInsurance(risk.Signals{
		Overall:                 rf.OverallRisk,
		Connection:              rf.ConnectionRisk,
		Connecting:              rf.ConnectionType == flight.ConnectionConnecting,
		DelayProbability:        rf.DelayProbability,
		CancellationProbability: rf.CancellationRate,
	})
	if rec == nil {
		return nil
	}
	return &flight.InsuranceRecommendation{
		Recommended:   rec.Recommended,
		Reason:        rec.Reason,
		CoverageTypes: rec.CoverageTypes,
		Derived:       true,
	}
}

// flightID derives a stable identifier from the record identity and its position.
func flightID(f *flight.Flight, index int) string {
	key := strings.Join([]string{
		string(f.SearchType),
		f.Airline.Code,
		f.FlightNumber,
		f.Departure.Airport,
		f.Arrival.Airport,
		f.Departure.Time,
		f.Duration.Text,
		strconv.Itoa(index),
	}, "|")
	return uuid.NewSHA1(flightIDNamespace, []byte(key)).String()
}

// displayTime formats a present time value; an absent one stays empty.
func displayTime(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return utils.FormatTimeWithAMPM(raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
