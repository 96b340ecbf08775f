package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/flight-normalizer/utils"
)

var jsonNull = []byte("null")

// OptFloat is a number that may be absent. Strings are parsed after stripping currency
// symbols, thousands separators and a trailing percent sign; unparsable strings decode as
// absent.
type OptFloat struct {
	Value float64
	Valid bool
}

func (o *OptFloat) UnmarshalJSON(b []byte) error {
	*o = OptFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if f, err := parseLooseFloat(s); err == nil {
			*o = OptFloat{Value: f, Valid: true}
		}
		return nil
	case '{', '[':
		return fmt.Errorf("expected number, got %s", kindOf(b))
	case 't', 'f':
		return fmt.Errorf("expected number, got boolean")
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("expected number: %w", err)
	}
	*o = OptFloat{Value: f, Valid: true}
	return nil
}

func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o OptFloat) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// Minutes is a duration given either as a number of minutes or as text ("2h 30m", "95").
type Minutes struct {
	Value int
	Valid bool
}

func (m *Minutes) UnmarshalJSON(b []byte) error {
	*m = Minutes{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) != "" {
			*m = Minutes{Value: utils.ParseDurationToMinutes(s), Valid: true}
		}
		return nil
	case '{', '[':
		return fmt.Errorf("expected duration, got %s", kindOf(b))
	case 't', 'f':
		return fmt.Errorf("expected duration, got boolean")
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("expected duration: %w", err)
	}
	*m = Minutes{Value: utils.MinutesFromNumber(f), Valid: true}
	return nil
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return jsonNull, nil
	}
	return json.Marshal(m.Value)
}

// FlexString accepts a JSON string, number or boolean. Null decodes as "".
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	*s = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(strings.TrimSpace(v))
		return nil
	case '{', '[':
		return fmt.Errorf("expected string, got %s", kindOf(b))
	}
	// numbers and booleans keep their literal spelling
	*s = FlexString(b)
	return nil
}

func (s FlexString) String() string { return string(s) }

// Or returns s, or fallback when s is empty.
func (s FlexString) Or(fallback string) string {
	if s == "" {
		return fallback
	}
	return string(s)
}

func parseLooseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "USD")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

func kindOf(b []byte) string {
	if len(b) > 0 && b[0] == '[' {
		return "array"
	}
	return "object"
}
