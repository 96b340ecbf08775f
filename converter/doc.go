// Package converter turns raw flight-search records into canonical flight.Flight values.
//
// # Overview
//
// The converter coordinates three components:
//   - upstream decoding, which splits the two provider shapes into a tagged union
//   - reference resolution (airline, aircraft, airport) through the Resolver interface
//   - risk aggregation from the risk package
//
// # Usage
//
//	conv := converter.NewConverter(reference.Default(), converter.Options{Workers: 8})
//
//	f, err := conv.Convert(raw, 0, "")
//	if err != nil {
//	    // *ConversionError: skip this record, keep the others
//	}
//
//	res, err := conv.ConvertAll(ctx, records, upstream.SearchRoute)
//	// res.Flights keeps input order; res.Dropped lists what was skipped
//
// # Connections
//
// Direct lookups carry a pre-assembled connections array that is passed through with
// canonical durations and times. Route searches carry flattened segments and layovers,
// which are correlated by the segment's arrival airport. Layovers that match nothing are
// dropped and reported, never invented.
//
// # Tracing
//
// The pipeline does not log. Decisions are reported as Events to the Tracer given in
// Options: SlogTracer for structured logs, WarningAggregator for one summary line per
// warning kind after a batch, or any TracerFunc.
//
// # Thread Safety
//
// A Converter holds no mutable state and can be shared. Tracers passed to it must be safe
// for concurrent use when ConvertAll is used.
package converter
