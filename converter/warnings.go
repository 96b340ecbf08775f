package converter

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

const maxWarningExamples = 3

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects warning-class events during a batch and outputs consolidated
// summaries. It is a Tracer and is safe for concurrent use.
type WarningAggregator struct {
	mu       sync.Mutex
	warnings map[EventKind]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[EventKind]*warningInfo),
	}
}

// Trace records warning-class events and ignores the rest.
func (w *WarningAggregator) Trace(e Event) {
	if !e.Kind.IsWarning() {
		return
	}
	example := e.RecordID
	if example == "" {
		example = fmt.Sprintf("#%d", e.Index)
	}
	if e.Airport != "" {
		example += "@" + e.Airport
	}
	w.Add(e.Kind, example)
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(kind EventKind, exampleID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	info := w.warnings[kind]
	if info == nil {
		info = &warningInfo{examples: make([]string, 0, maxWarningExamples)}
		w.warnings[kind] = info
	}
	info.count++

	if len(info.examples) < maxWarningExamples {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns how many times kind was recorded.
func (w *WarningAggregator) Count(kind EventKind) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if info := w.warnings[kind]; info != nil {
		return info.count
	}
	return 0
}

// Examples returns up to three example IDs recorded for kind.
func (w *WarningAggregator) Examples(kind EventKind) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if info := w.warnings[kind]; info != nil {
		return append([]string(nil), info.examples...)
	}
	return nil
}

// Reset clears all collected warnings.
func (w *WarningAggregator) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warnings = make(map[EventKind]*warningInfo)
}

// LogAll outputs all collected warnings in consolidated format, one line per kind
func (w *WarningAggregator) LogAll(source string) {
	for _, line := range w.Lines(source) {
		log.Printf("%s", line)
	}
}

// Lines returns the consolidated warning messages sorted by kind.
func (w *WarningAggregator) Lines(source string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	kinds := make([]string, 0, len(w.warnings))
	for k := range w.warnings {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	lines := make([]string, 0, len(kinds))
	for _, k := range kinds {
		lines = append(lines, formatWarningMessage(EventKind(k), source, w.warnings[EventKind(k)]))
	}
	return lines
}

// formatWarningMessage creates a human-readable warning message
func formatWarningMessage(kind EventKind, source string, info *warningInfo) string {
	var description, action string

	switch kind {
	case EventLayoverUnmatched:
		description = "layovers with no segment arriving at their airport"
		action = "Dropping the layover"
	case EventLayoverUnlocated:
		description = "layovers with neither airport nor city"
		action = "Dropping the layover"
	case EventConnectionRiskMiss:
		description = "connections without a feasibility assessment"
		action = "Reporting connection risk as unknown"
	case EventFinalSegmentFloor:
		description = "itineraries whose legs and layovers exceed the total duration"
		action = "Flooring the final segment duration at 0"
	case EventAnalysisMissing:
		description = "records without risk_analysis"
		action = "Leaving probabilities unset"
	case EventRecordDropped:
		description = "records that failed conversion"
		action = "Excluding them from the result list"
	default:
		description = "unclassified issue"
		action = "Continuing with fallback behavior"
	}

	examplesStr := strings.Join(info.examples, ", ")

	return fmt.Sprintf("Search %s has %s (%d occurrences). %s. Examples: %s",
		source, description, info.count, action, examplesStr)
}
