// Package risk reduces leveled risk signals to flight-level aggregates.
//
// Levels are ordered high > medium > low. "unknown" is not a severity: it marks the
// absence of a signal and is skipped by HighestOf.
//
// Two reductions are provided because they answer different questions:
//
//	HighestOf        coarse badge for weather and airport complexity; defaults to medium
//	ConnectionRiskOf connection feasibility; an unknown leg keeps the result unknown
//
// RecommendInsurance derives an insurance recommendation from known signals only. When no
// signal is known it returns nil so callers can show "data unavailable".
package risk
