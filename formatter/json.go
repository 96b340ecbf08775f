package formatter

import (
	"encoding/json"
)

// ResponseBuilder serializes flight responses.
type ResponseBuilder struct {
	indent string
}

// NewResponseBuilder creates a builder producing compact JSON.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// NewPrettyResponseBuilder creates a builder producing indented JSON.
func NewPrettyResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{indent: "  "}
}

// BuildJSON serializes a response to JSON
func (rb *ResponseBuilder) BuildJSON(res *FlightResponse) ([]byte, error) {
	if rb.indent != "" {
		return json.MarshalIndent(res, "", rb.indent)
	}
	return json.Marshal(res)
}

// EncodeJSON serializes any payload compactly.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}
