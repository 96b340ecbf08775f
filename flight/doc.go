// Package flight defines the canonical flight record produced by the converter.
//
// A Flight is created fresh for every upstream search response and is never mutated after
// assembly. Every downstream view (risk panel, connection analysis, card summary, insurance
// logic) consumes this shape directly; the provider shape it came from is kept only as
// provenance in SearchType.
//
// Connectivity is expressed in exactly one of three ways:
//   - Direct: neither Connections nor LayoverInfo is set
//   - Connections: an ordered list of legs, each optionally followed by a LayoverInfo
//   - SingleLayover: only LayoverInfo is set, when the upstream exposed one stop without legs
//
// All types carry JSON tags for serialization.
package flight
