package formatter

import (
	"fmt"
	"strings"

	"github.com/theoremus-urban-solutions/flight-normalizer/flight"
	"github.com/theoremus-urban-solutions/flight-normalizer/risk"
)

// AnalysisFailed replaces any probability or delay figure the analysis did not report.
const AnalysisFailed = "Analysis failed"

// Card holds the display strings for one flight.
type Card struct {
	Title            string   `json:"title"`
	Airline          string   `json:"airline"`
	Route            string   `json:"route"`
	Departure        string   `json:"departure"`
	Arrival          string   `json:"arrival"`
	Duration         string   `json:"duration"`
	Stops            string   `json:"stops"`
	Price            string   `json:"price"`
	RiskLevel        string   `json:"riskLevel"`
	DelayProbability string   `json:"delayProbability"`
	CancellationRate string   `json:"cancellationRate"`
	HistoricalDelays string   `json:"historicalDelays"`
	OnTimeRate       string   `json:"onTimeRate"`
	ConnectionRisk   string   `json:"connectionRisk"`
	Layovers         []string `json:"layovers,omitempty"`
	Insurance        string   `json:"insurance,omitempty"`
}

// Summarize renders a flight as card display strings.
func Summarize(f flight.Flight) Card {
	c := Card{
		Title:            strings.TrimSpace(f.FlightNumber + " " + routeOf(f)),
		Airline:          f.Airline.Name,
		Route:            routeOf(f),
		Departure:        f.Departure.Time,
		Arrival:          strings.TrimSpace(f.Arrival.Time + " " + f.Arrival.DayOffset),
		Duration:         f.Duration.Text,
		Stops:            stopsLabel(f.Stops),
		Price:            "Price unavailable",
		RiskLevel:        f.RiskLevel,
		DelayProbability: percentOrFailed(f.RiskFactors.DelayProbability),
		CancellationRate: percentOrFailed(f.RiskFactors.CancellationRate),
		HistoricalDelays: AnalysisFailed,
		OnTimeRate:       "N/A",
		ConnectionRisk:   f.RiskFactors.ConnectionRisk,
	}
	if c.Airline == "" {
		c.Airline = f.Airline.Code
	}
	if f.Price != nil {
		c.Price = fmt.Sprintf("$%.2f", *f.Price)
	}
	if d := f.RiskFactors.HistoricalDelays; d != nil {
		c.HistoricalDelays = fmt.Sprintf("%.0f min", *d)
	}
	if r := f.OnTimeRate; r != nil {
		c.OnTimeRate = fmt.Sprintf("%.0f%%", risk.Percent(*r))
	}

	for _, conn := range f.Connections {
		if conn.LayoverInfo != nil {
			c.Layovers = append(c.Layovers, layoverLabel(*conn.LayoverInfo, conn.ConnectionRisk))
		}
	}
	if f.LayoverInfo != nil {
		c.Layovers = append(c.Layovers, layoverLabel(*f.LayoverInfo, f.RiskFactors.ConnectionRisk))
	}

	if ir := f.InsuranceRecommendation; ir != nil {
		verdict := "Not recommended"
		if ir.Recommended {
			verdict = "Recommended"
		}
		if ir.Reason != "" {
			verdict += ": " + ir.Reason
		}
		c.Insurance = verdict
	}
	return c
}

func routeOf(f flight.Flight) string {
	from := firstNonEmpty(f.Departure.Airport, f.Departure.City)
	to := firstNonEmpty(f.Arrival.Airport, f.Arrival.City)
	return from + " → " + to
}

func stopsLabel(n int) string {
	switch n {
	case 0:
		return "Nonstop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", n)
	}
}

func layoverLabel(li flight.LayoverInfo, connectionRisk string) string {
	where := firstNonEmpty(li.Airport, li.City)
	return fmt.Sprintf("%s %s (connection risk: %s)", where, li.Duration, connectionRisk)
}

func percentOrFailed(v *float64) string {
	if v == nil {
		return AnalysisFailed
	}
	return fmt.Sprintf("%.0f%%", risk.Percent(*v))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
