package risk

import "strings"

// Level is a normalized risk level.
type Level string

const (
	Low     Level = "low"
	Medium  Level = "medium"
	High    Level = "high"
	Unknown Level = "unknown"
)

// DefaultAggregate is returned by HighestOf when no known level is present.
const DefaultAggregate = Medium

func (l Level) String() string { return string(l) }

// Known reports whether l is one of low, medium or high.
func (l Level) Known() bool {
	return l == Low || l == Medium || l == High
}

// Severity ranks known levels 1 (low) to 3 (high); anything else is 0.
func (l Level) Severity() int {
	switch l {
	case Low:
		return 1
	case Medium:
		return 2
	case High:
		return 3
	default:
		return 0
	}
}

// Normalize maps free text to a Level. Matching is case-insensitive and tolerates a few
// upstream spellings ("moderate", "severe"). Everything else is Unknown.
func Normalize(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low", "minimal", "minor":
		return Low
	case "medium", "moderate", "med":
		return Medium
	case "high", "severe", "critical":
		return High
	default:
		return Unknown
	}
}

// NormalizeOr is Normalize with a caller-chosen fallback for unrecognized values.
func NormalizeOr(value string, fallback Level) Level {
	if l := Normalize(value); l.Known() {
		return l
	}
	return fallback
}

// HighestOf returns the most severe known level among values. Unknown, empty and
// unrecognized values are ignored. With no known value the result is DefaultAggregate.
func HighestOf(values ...string) Level {
	best := Unknown
	for _, v := range values {
		l := Normalize(v)
		if l.Severity() > best.Severity() {
			best = l
		}
	}
	if best == Unknown {
		return DefaultAggregate
	}
	return best
}

// ConnectionRiskOf reduces per-connection risks to one flight-level value.
//
// Any known high wins. Otherwise a single unknown leg makes the whole result unknown,
// since an unassessed connection cannot be reported as safe. With all legs known the
// highest level is returned. An empty input is Unknown.
func ConnectionRiskOf(levels ...string) Level {
	if len(levels) == 0 {
		return Unknown
	}
	best := Unknown
	sawUnknown := false
	for _, v := range levels {
		l := Normalize(v)
		if l == High {
			return High
		}
		if !l.Known() {
			sawUnknown = true
			continue
		}
		if l.Severity() > best.Severity() {
			best = l
		}
	}
	if sawUnknown {
		return Unknown
	}
	return best
}
