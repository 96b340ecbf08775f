package flight

import (
	"errors"
	"fmt"
)

// Topology classifies how a flight expresses its stops.
type Topology int

const (
	TopologyDirect Topology = iota
	TopologyConnections
	TopologySingleLayover
)

func (t Topology) String() string {
	switch t {
	case TopologyDirect:
		return "direct"
	case TopologyConnections:
		return "connections"
	case TopologySingleLayover:
		return "single_layover"
	default:
		return "unknown"
	}
}

var ErrConflictingLayover = errors.New("flight has both connections and a top-level layoverInfo")

// Topology reports which connectivity form the flight uses.
func (f *Flight) Topology() Topology {
	switch {
	case len(f.Connections) > 0:
		return TopologyConnections
	case f.LayoverInfo != nil:
		return TopologySingleLayover
	default:
		return TopologyDirect
	}
}

// Validate checks the structural invariants of an assembled flight.
func (f *Flight) Validate() error {
	if len(f.Connections) > 0 && f.LayoverInfo != nil {
		return ErrConflictingLayover
	}
	if f.Departure.Airport == "" && f.Departure.City == "" {
		return errors.New("departure has neither airport nor city")
	}
	if f.Arrival.Airport == "" && f.Arrival.City == "" {
		return errors.New("arrival has neither airport nor city")
	}
	for i, c := range f.Connections {
		if c.LayoverInfo != nil && c.LayoverInfo.Airport == "" && c.LayoverInfo.City == "" {
			return fmt.Errorf("connection %d: layover has neither airport nor city", i)
		}
	}
	return nil
}

// TotalLayoverMinutes sums the layover minutes carried by the flight.
func (f *Flight) TotalLayoverMinutes() int {
	if f.LayoverInfo != nil {
		return f.LayoverInfo.DurationMinutes
	}
	total := 0
	for _, c := range f.Connections {
		if c.LayoverInfo != nil {
			total += c.LayoverInfo.DurationMinutes
		}
	}
	return total
}
