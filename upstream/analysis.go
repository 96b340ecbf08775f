package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RiskAnalysis is the analysis backend's assessment embedded in every record.
type RiskAnalysis struct {
	RiskLevel               FlexString               `json:"risk_level"`
	RiskScore               OptFloat                 `json:"risk_score"`
	DelayProbability        OptFloat                 `json:"delay_probability"`
	CancellationProbability OptFloat                 `json:"cancellation_probability"`
	SeasonalFactors         []string                 `json:"seasonal_factors"`
	KeyRiskFactors          []string                 `json:"key_risk_factors"`
	HistoricalPerformance   *HistoricalPerformance   `json:"historical_performance"`
	OriginAnalysis          *AirportAnalysis         `json:"origin_analysis"`
	DestinationAnalysis     *AirportAnalysis         `json:"destination_analysis"`
	ConnectionAnalysis      []ConnectionAnalysis     `json:"connection_analysis"`
	InsuranceRecommendation *InsuranceRecommendation `json:"insurance_recommendation"`
}

// HistoricalPerformance holds the route's track record.
type HistoricalPerformance struct {
	OnTimeRate          OptFloat `json:"on_time_rate"`
	AverageDelayMinutes OptFloat `json:"average_delay_minutes"`
}

// AirportAnalysis holds the per-airport signals for origin and destination.
type AirportAnalysis struct {
	WeatherRisk       RiskSignal `json:"weather_risk"`
	AirportComplexity RiskSignal `json:"airport_complexity"`
}

// ConnectionAnalysis is the per-layover detail list, keyed by airport.
type ConnectionAnalysis struct {
	Airport            FlexString   `json:"airport"`
	WeatherRisk        RiskSignal   `json:"weather_risk"`
	AirportComplexity  RiskSignal   `json:"airport_complexity"`
	LayoverFeasibility *Feasibility `json:"layover_feasibility"`
}

// InsuranceRecommendation as produced by the analysis backend.
type InsuranceRecommendation struct {
	Recommended   bool     `json:"recommended"`
	Reason        string   `json:"reason"`
	CoverageTypes []string `json:"coverage_types"`
}

// RiskSignal is a leveled signal. Upstream sends either a bare level ("high") or an object
// with level, description and concerns.
type RiskSignal struct {
	Level       string   `json:"level"`
	Description string   `json:"description,omitempty"`
	Concerns    []string `json:"concerns,omitempty"`
}

func (r *RiskSignal) UnmarshalJSON(b []byte) error {
	*r = RiskSignal{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &r.Level)
	case '{':
		type plain RiskSignal
		var p plain
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*r = RiskSignal(p)
		return nil
	}
	return fmt.Errorf("expected risk level string or object, got %s", b)
}

// Present reports whether the signal carries a level.
func (r RiskSignal) Present() bool { return r.Level != "" }
