// Package formatter provides response wrapping and serialization for normalized flights.
//
// This package is organized into:
// - wrapper.go: response envelope, dropped-record reporting, filtering
// - json.go: JSON serialization
// - summary.go: display strings for a flight card
//
// Absent probabilities are rendered as "Analysis failed", never as 0%.
package formatter
