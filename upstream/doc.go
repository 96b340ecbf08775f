// Package upstream decodes raw flight-search payloads at the service boundary.
//
// Two provider shapes exist. A direct lookup carries flat flight fields plus an optional
// pre-assembled connections array. A route search carries flattened flight segments and
// layovers that must be correlated by airport. Both are decoded into the Record tagged
// union:
//
//	rec, err := upstream.DecodeRecord(raw, "")
//	switch r := rec.(type) {
//	case *upstream.DirectSearchRecord:
//	case *upstream.RouteSearchRecord:
//	}
//
// Scalars are tolerant: numbers may arrive as strings ("$1,234.50", "95"), durations as
// minute counts or text ("2h 30m"). Malformed scalars decode as absent values. Structural
// mismatches, such as an object where an array is expected, are decode errors.
package upstream
