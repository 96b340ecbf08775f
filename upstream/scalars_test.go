package upstream_test

import (
	"encoding/json"
	"testing"

	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
)

func TestOptFloat(t *testing.T) {
	tests := []struct {
		raw       string
		wantValid bool
		want      float64
		wantErr   bool
	}{
		{raw: `12.5`, wantValid: true, want: 12.5},
		{raw: `"$1,234.50"`, wantValid: true, want: 1234.5},
		{raw: `"USD 99"`, wantValid: true, want: 99},
		{raw: `"35%"`, wantValid: true, want: 35},
		{raw: `"n/a"`},
		{raw: `""`},
		{raw: `"NaN"`},
		{raw: `null`},
		{raw: `true`, wantErr: true},
		{raw: `{"amount":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v struct {
				P upstream.OptFloat `json:"p"`
			}
			err := json.Unmarshal([]byte(`{"p":`+tt.raw+`}`), &v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			if v.P.Valid != tt.wantValid || v.P.Value != tt.want {
				t.Errorf("expected (%v, %v), got %+v", tt.want, tt.wantValid, v.P)
			}
			if (v.P.Ptr() != nil) != tt.wantValid {
				t.Errorf("Ptr presence should follow Valid")
			}
		})
	}
}

func TestOptFloat_MissingField(t *testing.T) {
	var v struct {
		P upstream.OptFloat `json:"p"`
	}
	if err := json.Unmarshal([]byte(`{}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.P.Valid || v.P.Ptr() != nil {
		t.Error("missing field must stay absent, never zero")
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		raw       string
		want      int
		wantValid bool
	}{
		{raw: `95`, want: 95, wantValid: true},
		{raw: `"95"`, want: 95, wantValid: true},
		{raw: `"1h 35m"`, want: 95, wantValid: true},
		{raw: `"soon"`, want: 0, wantValid: true},
		{raw: `-10`, want: 0, wantValid: true},
		{raw: `""`},
		{raw: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v struct {
				M upstream.Minutes `json:"m"`
			}
			if err := json.Unmarshal([]byte(`{"m":`+tt.raw+`}`), &v); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.M.Value != tt.want || v.M.Valid != tt.wantValid {
				t.Errorf("expected (%d, %v), got %+v", tt.want, tt.wantValid, v.M)
			}
		})
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: `"  UA 123 "`, want: "UA 123"},
		{raw: `123`, want: "123"},
		{raw: `true`, want: "true"},
		{raw: `null`, want: ""},
		{raw: `["UA"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v struct {
				S upstream.FlexString `json:"s"`
			}
			err := json.Unmarshal([]byte(`{"s":`+tt.raw+`}`), &v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err == nil && string(v.S) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, v.S)
			}
		})
	}
	if got := upstream.FlexString("").Or("fallback"); got != "fallback" {
		t.Errorf("Or: expected fallback, got %q", got)
	}
}

func TestRiskSignal(t *testing.T) {
	var v struct {
		A upstream.RiskSignal `json:"a"`
		B upstream.RiskSignal `json:"b"`
		C upstream.RiskSignal `json:"c"`
	}
	raw := `{"a":"high","b":{"level":"low","description":"clear skies","concerns":["none"]},"c":null}`
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatal(err)
	}
	if v.A.Level != "high" || !v.A.Present() {
		t.Errorf("bare level: got %+v", v.A)
	}
	if v.B.Level != "low" || v.B.Description != "clear skies" || len(v.B.Concerns) != 1 {
		t.Errorf("object: got %+v", v.B)
	}
	if v.C.Present() {
		t.Errorf("null should be absent, got %+v", v.C)
	}

	if err := json.Unmarshal([]byte(`{"a":5}`), &v); err == nil {
		t.Error("number should not decode as a risk signal")
	}
}
