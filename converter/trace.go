package converter

import (
	"context"
	"log/slog"
)

// EventKind identifies a decision point in the pipeline.
type EventKind string

const (
	EventShapeDetected      EventKind = "shape_detected"
	EventLayoverMatched     EventKind = "layover_matched"
	EventSegmentNoLayover   EventKind = "segment_without_layover"
	EventDurationDerived    EventKind = "duration_derived"
	EventInsuranceDerived   EventKind = "insurance_derived"
	EventReferenceUnmatched EventKind = "reference_unmatched"
	EventReferenceSubstring EventKind = "reference_substring"

	// warning class
	EventLayoverUnmatched   EventKind = "layover_unmatched"
	EventLayoverUnlocated   EventKind = "layover_unlocated"
	EventConnectionRiskMiss EventKind = "connection_risk_unknown"
	EventFinalSegmentFloor  EventKind = "final_segment_floored"
	EventAnalysisMissing    EventKind = "analysis_missing"
	EventRecordDropped      EventKind = "record_dropped"
)

// IsWarning reports whether the event describes degraded input.
func (k EventKind) IsWarning() bool {
	switch k {
	case EventLayoverUnmatched, EventLayoverUnlocated, EventConnectionRiskMiss,
		EventFinalSegmentFloor, EventAnalysisMissing, EventRecordDropped:
		return true
	}
	return false
}

// Event is one recorded decision.
type Event struct {
	Kind     EventKind
	Index    int
	RecordID string
	Airport  string
	Detail   string
}

// Tracer observes pipeline decisions. Implementations must be safe for concurrent use
// when the converter runs batches.
type Tracer interface {
	Trace(Event)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(Event)

func (f TracerFunc) Trace(e Event) { f(e) }

// NopTracer discards events.
type NopTracer struct{}

func (NopTracer) Trace(Event) {}

// MultiTracer fans events out to several tracers in order.
type MultiTracer []Tracer

func (m MultiTracer) Trace(e Event) {
	for _, t := range m {
		if t != nil {
			t.Trace(e)
		}
	}
}

// SlogTracer writes events as structured log records. Warning-class events are logged at
// warn level, everything else at debug.
type SlogTracer struct {
	Logger *slog.Logger
}

func (s SlogTracer) Trace(e Event) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelDebug
	if e.Kind.IsWarning() {
		level = slog.LevelWarn
	}
	if !logger.Enabled(context.Background(), level) {
		return
	}
	attrs := []slog.Attr{
		slog.Int("index", e.Index),
	}
	if e.RecordID != "" {
		attrs = append(attrs, slog.String("record", e.RecordID))
	}
	if e.Airport != "" {
		attrs = append(attrs, slog.String("airport", e.Airport))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	logger.LogAttrs(context.Background(), level, string(e.Kind), attrs...)
}

// recordTrace stamps events with the record they belong to.
type recordTrace struct {
	tracer   Tracer
	index    int
	recordID string
}

func (r recordTrace) emit(kind EventKind, airport, detail string) {
	r.tracer.Trace(Event{Kind: kind, Index: r.index, RecordID: r.recordID, Airport: airport, Detail: detail})
}
