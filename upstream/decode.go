package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload = errors.New("empty payload")
	ErrUnknownShape = errors.New("unrecognized payload shape")
)

// Detect decides which shape a raw record has. A valid hint wins; then an explicit
// search_type field; then the presence of flights or layovers marks a route record.
func Detect(raw []byte, hint SearchType) (SearchType, error) {
	probe, err := probeObject(raw)
	if err != nil {
		return "", err
	}
	return detect(probe, hint), nil
}

// DecodeRecord decodes one raw record into its shape-specific type. It does not validate;
// call Record.Validate for boundary checks.
func DecodeRecord(raw []byte, hint SearchType) (Record, error) {
	probe, err := probeObject(raw)
	if err != nil {
		return nil, err
	}

	switch detect(probe, hint) {
	case SearchRoute:
		var r RouteSearchRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode route record: %w", err)
		}
		return &r, nil
	default:
		var r DirectSearchRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode direct record: %w", err)
		}
		return &r, nil
	}
}

// Response is a decoded upstream response: the raw records in order plus the search type
// the envelope declared, if any.
type Response struct {
	SearchType SearchType
	Records    []json.RawMessage
}

// DecodeResponse splits an upstream body into raw records. Accepted envelopes are a bare
// array, an object with a "results" array (and optional "search_type"), or a single record
// object. A valid hint overrides the envelope's search type.
func DecodeResponse(body []byte, hint SearchType) (Response, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, jsonNull) {
		return Response{}, ErrEmptyPayload
	}

	var resp Response
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &resp.Records); err != nil {
			return Response{}, fmt.Errorf("decode result array: %w", err)
		}
	case '{':
		var env struct {
			SearchType FlexString        `json:"search_type"`
			Results    []json.RawMessage `json:"results"`
		}
		probe, err := probeObject(body)
		if err != nil {
			return Response{}, err
		}
		if _, ok := probe["results"]; ok {
			if err := json.Unmarshal(body, &env); err != nil {
				return Response{}, fmt.Errorf("decode result envelope: %w", err)
			}
			resp.Records = env.Results
			resp.SearchType, _ = ParseSearchType(env.SearchType.String())
		} else {
			resp.Records = []json.RawMessage{json.RawMessage(body)}
		}
	default:
		return Response{}, fmt.Errorf("%w: body starts with %q", ErrUnknownShape, body[0])
	}

	if _, ok := ParseSearchType(string(hint)); ok {
		resp.SearchType = hint
	}
	return resp, nil
}

func probeObject(raw []byte) (map[string]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil, ErrEmptyPayload
	}
	if raw[0] != '{' {
		return nil, fmt.Errorf("%w: record is not an object", ErrUnknownShape)
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return probe, nil
}

func detect(probe map[string]json.RawMessage, hint SearchType) SearchType {
	if t, ok := ParseSearchType(string(hint)); ok {
		return t
	}
	if v, ok := probe["search_type"]; ok {
		var s FlexString
		if json.Unmarshal(v, &s) == nil {
			if t, ok := ParseSearchType(s.String()); ok {
				return t
			}
		}
	}
	for _, key := range []string{"flights", "layovers"} {
		if v, ok := probe[key]; ok && !bytes.Equal(bytes.TrimSpace(v), jsonNull) {
			return SearchRoute
		}
	}
	return SearchDirect
}
