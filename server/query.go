package server

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/flight-normalizer/formatter"
	"github.com/theoremus-urban-solutions/flight-normalizer/risk"
	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
)

// QueryError is a client error in request parameters.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

const (
	viewFlights = "flights"
	viewCards   = "cards"
)

// controlParams are consumed by the server and not forwarded upstream.
var controlParams = map[string]bool{
	"searchtype": true,
	"airline":    true,
	"airport":    true,
	"maxstops":   true,
	"maxrisk":    true,
	"view":       true,
}

type flightQuery struct {
	hint   upstream.SearchType
	filter formatter.Filter
	view   string
}

// cacheParts identifies the query in a cache key.
func (q flightQuery) cacheParts() []string {
	return []string{
		string(q.hint),
		strings.ToLower(q.filter.Airline),
		strings.ToUpper(q.filter.Airport),
		strconv.Itoa(q.filter.MaxStops),
		q.filter.MaxRisk,
		q.view,
	}
}

func parseFlightQuery(values url.Values) (flightQuery, error) {
	m := map[string]string{}
	for k, v := range values {
		if len(v) > 0 {
			m[strings.ToLower(k)] = strings.TrimSpace(v[0])
		}
	}

	q := flightQuery{view: viewFlights}
	if s := m["searchtype"]; s != "" {
		st, ok := upstream.ParseSearchType(s)
		if !ok {
			return flightQuery{}, &QueryError{Msg: "Unsupported searchType: " + s}
		}
		q.hint = st
	}

	maxStops, err := parseNonNegativeInt(m["maxstops"])
	if err != nil {
		return flightQuery{}, err
	}
	q.filter = formatter.Filter{Airline: m["airline"], Airport: m["airport"], MaxStops: maxStops}

	if s := m["maxrisk"]; s != "" {
		level := risk.Normalize(s)
		if !level.Known() {
			return flightQuery{}, &QueryError{Msg: "maxRisk must be one of low, medium, high."}
		}
		q.filter.MaxRisk = level.String()
	}

	switch v := strings.ToLower(m["view"]); v {
	case "", viewFlights:
	case viewCards:
		q.view = viewCards
	default:
		return flightQuery{}, &QueryError{Msg: "Unsupported view: " + v}
	}
	return q, nil
}

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return -1, &QueryError{Msg: "Numeric parameter must be a non-negative integer."}
	}
	return v, nil
}

// upstreamParams drops the server's own parameters before forwarding a query.
func upstreamParams(values url.Values) url.Values {
	out := url.Values{}
	for k, v := range values {
		if controlParams[strings.ToLower(k)] {
			continue
		}
		out[k] = v
	}
	return out
}

func buildErrorPayload(status int, msg string) []byte {
	type errBody struct {
		Error struct {
			Status      int    `json:"status"`
			Description string `json:"description"`
		} `json:"error"`
	}
	var e errBody
	e.Error.Status = status
	e.Error.Description = msg
	b, _ := json.Marshal(e)
	return b
}
