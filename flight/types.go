package flight

// SearchType records which upstream endpoint produced a flight.
type SearchType string

const (
	SearchDirect SearchType = "direct"
	SearchRoute  SearchType = "route"
)

// ConnectionType values for RiskFactors.ConnectionType
const (
	ConnectionDirect     = "direct"
	ConnectionConnecting = "connecting"
)

// Flight is the canonical flight record
type Flight struct {
	ID           string     `json:"id"`
	SearchType   SearchType `json:"searchType"`
	Airline      Airline    `json:"airline"`
	FlightNumber string     `json:"flightNumber"`
	Aircraft     string     `json:"aircraft,omitempty"`

	Departure Endpoint `json:"departure"`
	Arrival   Endpoint `json:"arrival"`

	Duration               Duration  `json:"duration"`
	FinalSegmentTravelTime *Duration `json:"finalSegmentTravelTime,omitempty"`
	DistanceKm             *float64  `json:"distanceKm,omitempty"`

	// Price in USD; nil when the upstream did not provide one.
	Price *float64 `json:"price,omitempty"`

	RiskLevel   string      `json:"riskLevel"`
	RiskScore   *float64    `json:"riskScore,omitempty"`
	RiskFactors RiskFactors `json:"riskFactors"`

	Stops       int          `json:"stops"`
	Connections []Connection `json:"connections,omitempty"`
	LayoverInfo *LayoverInfo `json:"layoverInfo,omitempty"`

	OnTimeRate              *float64                 `json:"onTimeRate,omitempty"`
	InsuranceRecommendation *InsuranceRecommendation `json:"insuranceRecommendation,omitempty"`
}

// Airline is the operating carrier as displayed and as resolved against reference data.
type Airline struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Endpoint is one end of a flight or connection leg.
type Endpoint struct {
	Airport     string `json:"airport"`
	AirportName string `json:"airportName,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Time        string `json:"time"`
	DayOffset   string `json:"dayOffset,omitempty"`
}

// Duration carries both the canonical text ("2h 30m") and the minute count.
type Duration struct {
	Minutes int    `json:"minutes"`
	Text    string `json:"text"`
}

// Connection is one leg of a multi-leg flight.
type Connection struct {
	FlightNumber   string       `json:"flightNumber,omitempty"`
	Airline        string       `json:"airline,omitempty"`
	Departure      Endpoint     `json:"departure"`
	Arrival        Endpoint     `json:"arrival"`
	Duration       Duration     `json:"duration"`
	DistanceKm     *float64     `json:"distanceKm,omitempty"`
	// ConnectionRisk is empty on a closing leg that is not followed by a stop.
	ConnectionRisk string       `json:"connectionRisk,omitempty"`
	LayoverInfo    *LayoverInfo `json:"layoverInfo,omitempty"`
}

// LayoverInfo describes the stop that follows a leg.
type LayoverInfo struct {
	Airport           string     `json:"airport"`
	AirportName       string     `json:"airportName,omitempty"`
	City              string     `json:"city,omitempty"`
	Duration          string     `json:"duration"`
	DurationMinutes   int        `json:"durationMinutes"`
	ArrivalTime       string     `json:"arrivalTime,omitempty"`
	DepartureTime     string     `json:"departureTime,omitempty"`
	WeatherRisk       Assessment `json:"weatherRisk"`
	AirportComplexity Assessment `json:"airportComplexity"`
}

// Assessment is a leveled risk signal with its explanation.
type Assessment struct {
	Level       string   `json:"level"`
	Description string   `json:"description,omitempty"`
	Concerns    []string `json:"concerns,omitempty"`
}

// RiskFactors is the per-flight risk breakdown. Probabilities and delay minutes are nil
// when the analysis did not report them; consumers must render that as a failed analysis.
type RiskFactors struct {
	OverallRisk       string   `json:"overallRisk"`
	DelayProbability  *float64 `json:"delayProbability,omitempty"`
	CancellationRate  *float64 `json:"cancellationRate,omitempty"`
	WeatherRisk       string   `json:"weatherRisk"`
	AirportComplexity string   `json:"airportComplexity"`
	ConnectionType    string   `json:"connectionType"`
	ConnectionTime    int      `json:"connectionTime"`
	ConnectionRisk    string   `json:"connectionRisk"`
	HistoricalDelays  *float64 `json:"historicalDelays,omitempty"`
	SeasonalFactors   []string `json:"seasonalFactors"`
	KeyRiskFactors    []string `json:"keyRiskFactors"`
}

// InsuranceRecommendation is either passed through from the analysis backend or derived
// from known risk signals.
type InsuranceRecommendation struct {
	Recommended   bool     `json:"recommended"`
	Reason        string   `json:"reason,omitempty"`
	CoverageTypes []string `json:"coverageTypes,omitempty"`
	Derived       bool     `json:"derived"`
}
