package upstream

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/flight-normalizer/utils"
)

// SearchType names the upstream endpoint a record came from.
type SearchType string

const (
	SearchDirect SearchType = "direct"
	SearchRoute  SearchType = "route"
)

// ParseSearchType accepts "direct" and "route" in any case, with an optional "_search"
// or "-search" suffix.
func ParseSearchType(s string) (SearchType, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimSuffix(strings.TrimSuffix(v, "_search"), "-search")
	switch v {
	case string(SearchDirect):
		return SearchDirect, true
	case string(SearchRoute):
		return SearchRoute, true
	}
	return "", false
}

// Record is a decoded upstream flight record: *DirectSearchRecord or *RouteSearchRecord.
type Record interface {
	Kind() SearchType
	Base() *Common
	Validate() error
	isRecord()
}

// Common holds the fields both shapes share.
type Common struct {
	ID           FlexString `json:"id"`
	SearchType   FlexString `json:"search_type"`
	Airline      FlexString `json:"airline"`
	AirlineCode  FlexString `json:"airline_code"`
	FlightNumber FlexString `json:"flight_number"`
	Aircraft     FlexString `json:"aircraft"`

	Origin          FlexString `json:"origin" validate:"required_without=OriginCity"`
	OriginName      FlexString `json:"origin_name"`
	OriginCity      FlexString `json:"origin_city"`
	Destination     FlexString `json:"destination" validate:"required_without=DestinationCity"`
	DestinationName FlexString `json:"destination_name"`
	DestinationCity FlexString `json:"destination_city"`
	DepartureTime   FlexString `json:"departure_time"`
	ArrivalTime     FlexString `json:"arrival_time"`

	TotalDuration Minutes  `json:"total_duration"`
	Duration      Minutes  `json:"duration"`
	Price         OptFloat `json:"price"`

	RiskAnalysis *RiskAnalysis `json:"risk_analysis"`
}

// TotalMinutes prefers total_duration and falls back to duration.
func (c *Common) TotalMinutes() int {
	if c.TotalDuration.Valid {
		return c.TotalDuration.Value
	}
	return c.Duration.Value
}

// Analysis returns the risk analysis, or an empty one when absent.
func (c *Common) Analysis() *RiskAnalysis {
	if c.RiskAnalysis == nil {
		return &RiskAnalysis{}
	}
	return c.RiskAnalysis
}

// DirectSearchRecord is a single direct-lookup result.
type DirectSearchRecord struct {
	Common
	Connections []Connection `json:"connections"`
}

// RouteSearchRecord is one option of a route search.
type RouteSearchRecord struct {
	Common
	Flights     []Segment    `json:"flights"`
	Layovers    []Layover    `json:"layovers"`
	Connections []Connection `json:"connections"`
}

func (*DirectSearchRecord) Kind() SearchType { return SearchDirect }
func (*RouteSearchRecord) Kind() SearchType  { return SearchRoute }

func (r *DirectSearchRecord) Base() *Common { return &r.Common }
func (r *RouteSearchRecord) Base() *Common  { return &r.Common }

func (*DirectSearchRecord) isRecord() {}
func (*RouteSearchRecord) isRecord()  {}

var validate = validator.New()

func (r *DirectSearchRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("direct record: %w", err)
	}
	return nil
}

func (r *RouteSearchRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("route record: %w", err)
	}
	return nil
}

// Connection is a pre-assembled leg as sent by the direct endpoint.
type Connection struct {
	FlightNumber FlexString       `json:"flight_number"`
	Airline      FlexString       `json:"airline"`
	Departure    Stop             `json:"departure"`
	Arrival      Stop             `json:"arrival"`
	Duration     Minutes          `json:"duration"`
	LayoverInfo  *LayoverAnalysis `json:"layoverInfo"`
}

// Stop is one end of a pre-assembled leg.
type Stop struct {
	Airport FlexString `json:"airport"`
	Time    FlexString `json:"time"`
}

// LayoverAnalysis is the layover detail nested in a pre-assembled leg.
type LayoverAnalysis struct {
	Airport           FlexString `json:"airport"`
	AirportName       FlexString `json:"airportName"`
	City              FlexString `json:"city"`
	Duration          Minutes    `json:"duration"`
	ArrivalTime       FlexString `json:"arrivalTime"`
	DepartureTime     FlexString `json:"departureTime"`
	WeatherRisk       RiskSignal `json:"weatherRisk"`
	AirportComplexity RiskSignal `json:"airportComplexity"`
	ConnectionRisk    FlexString `json:"connectionRisk"`
}

// Segment is one flown leg in a route search.
type Segment struct {
	FlightNumber     FlexString `json:"flight_number"`
	Airline          FlexString `json:"airline"`
	Aircraft         FlexString `json:"aircraft"`
	DepartureAirport FlexString `json:"departure_airport"`
	ArrivalAirport   FlexString `json:"arrival_airport"`
	DepartureTime    FlexString `json:"departure_time"`
	ArrivalTime      FlexString `json:"arrival_time"`
	Duration         Minutes    `json:"duration"`
}

// Layover is a flattened stop in a route search.
type Layover struct {
	Airport                FlexString   `json:"airport"`
	AirportName            FlexString   `json:"airport_name"`
	City                   FlexString   `json:"city"`
	LayoverDurationMinutes OptFloat     `json:"layover_duration_minutes"`
	Duration               Minutes      `json:"duration"`
	ArrivalTime            FlexString   `json:"arrival_time"`
	DepartureTime          FlexString   `json:"departure_time"`
	Feasibility            *Feasibility `json:"feasibility"`
}

// Minutes prefers the explicit minute field and falls back to the duration text.
func (l Layover) Minutes() int {
	if l.LayoverDurationMinutes.Valid {
		return utils.MinutesFromNumber(l.LayoverDurationMinutes.Value)
	}
	return l.Duration.Value
}

// Feasibility is a connection feasibility assessment.
type Feasibility struct {
	RiskLevel                FlexString `json:"risk_level"`
	Assessment               FlexString `json:"assessment"`
	MinimumConnectionMinutes OptFloat   `json:"minimum_connection_minutes"`
}
