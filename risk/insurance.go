package risk

import (
	"fmt"
	"strings"
)

// Signals is the input to RecommendInsurance. Nil probabilities are treated as unknown,
// never as zero.
type Signals struct {
	Overall                 string
	Connection              string
	Connecting              bool
	DelayProbability        *float64
	CancellationProbability *float64
}

// Recommendation is a derived insurance recommendation.
type Recommendation struct {
	Recommended   bool
	Reason        string
	CoverageTypes []string
}

// Thresholds in percent above which a probability counts as elevated.
const (
	DelayThreshold        = 30.0
	CancellationThreshold = 5.0
)

// ConnectionUnassessed is added to the reason of a connecting flight that is not
// recommended while its connection risk is unknown.
const ConnectionUnassessed = "connection risk was not assessed"

const (
	CoverageTripCancellation = "trip_cancellation"
	CoverageTripDelay        = "trip_delay"
	CoverageMissedConnection = "missed_connection"
)

// RecommendInsurance derives a recommendation from the known signals. It returns nil when
// every signal is unknown.
func RecommendInsurance(s Signals) *Recommendation {
	overall := Normalize(s.Overall)
	conn := Unknown
	if s.Connecting {
		conn = Normalize(s.Connection)
	}

	known := overall.Known() || conn.Known() || s.DelayProbability != nil || s.CancellationProbability != nil
	if !known {
		return nil
	}

	rec := &Recommendation{}
	var reasons []string

	if overall == High {
		reasons = append(reasons, "overall risk is high")
		rec.CoverageTypes = appendOnce(rec.CoverageTypes, CoverageTripCancellation, CoverageTripDelay)
	}
	if conn == High {
		reasons = append(reasons, "tight or risky connection")
		rec.CoverageTypes = appendOnce(rec.CoverageTypes, CoverageMissedConnection)
	}
	if p := s.CancellationProbability; p != nil && Percent(*p) >= CancellationThreshold {
		reasons = append(reasons, fmt.Sprintf("cancellation probability %.0f%%", Percent(*p)))
		rec.CoverageTypes = appendOnce(rec.CoverageTypes, CoverageTripCancellation)
	}
	if p := s.DelayProbability; p != nil && Percent(*p) >= DelayThreshold {
		reasons = append(reasons, fmt.Sprintf("delay probability %.0f%%", Percent(*p)))
		rec.CoverageTypes = appendOnce(rec.CoverageTypes, CoverageTripDelay)
		if s.Connecting {
			rec.CoverageTypes = appendOnce(rec.CoverageTypes, CoverageMissedConnection)
		}
	}

	if len(reasons) == 0 {
		rec.Reason = "no elevated risk in the available analysis"
		if s.Connecting && !conn.Known() {
			rec.Reason += "; " + ConnectionUnassessed
		}
		return rec
	}
	rec.Recommended = true
	rec.Reason = strings.Join(reasons, "; ")
	return rec
}

// Percent reads a probability given either as a fraction (0.12) or as a percentage (12).
// Values in (0, 1] are taken as fractions.
//
// The two scales overlap at 1: a value of exactly 1 is read as 100%, never as 1%, so an
// upstream that reports "1" meaning one percent is over-read and crosses both thresholds.
// Upstreams should send fractions or values above 1 consistently.
func Percent(v float64) float64 {
	if v > 0 && v <= 1 {
		return v * 100
	}
	return v
}

func appendOnce(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, have := range list {
			if have == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}
