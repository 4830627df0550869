package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  []string
	}{
		{
			name:  "missing",
			value: nil,
			want:  []string{MsgRequired},
		},
		{
			name:  "blank",
			value: strPtr("   "),
			want:  []string{MsgBlank},
		},
		{
			name:  "present",
			value: strPtr("Aarón"),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := make(Violations)
			Required("nombre", tt.value, v)

			got := v["nombre"]
			if len(got) != len(tt.want) {
				t.Fatalf("violations = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("violation[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMaxLength_CountsRunes(t *testing.T) {
	v := make(Violations)
	MaxLength("nombre", strPtr(strings.Repeat("ñ", 100)), 100, v)
	if !v.Empty() {
		t.Fatalf("100 runes must fit a 100 char limit, got %v", v)
	}

	MaxLength("nombre", strPtr(strings.Repeat("a", 101)), 100, v)
	if !v.Has("nombre") {
		t.Fatalf("expected violation for 101 chars")
	}
}

func TestIntRange(t *testing.T) {
	tests := []struct {
		name  string
		value *int
		want  string
	}{
		{name: "nil", value: nil},
		{name: "zero", value: intPtr(0)},
		{name: "int32 max", value: intPtr(2147483647)},
		{name: "negative", value: intPtr(-1), want: MsgNegative},
		{name: "overflow", value: intPtr(2147483648), want: "Asegúrese de que este valor es menor o igual a 2147483647."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := make(Violations)
			IntRange("categoria", tt.value, 0, 2147483647, v)

			if tt.want == "" {
				if !v.Empty() {
					t.Fatalf("unexpected violations: %v", v)
				}
				return
			}
			if got := v["categoria"]; len(got) != 1 || got[0] != tt.want {
				t.Fatalf("violations = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestMaxBytes(t *testing.T) {
	v := make(Violations)

	MaxBytes("password", strPtr(strings.Repeat("a", 72)), 72, v)
	MaxBytes("password", nil, 72, v)
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}

	// 37 двухбайтовых символов: 37 символов, но 74 байта.
	MaxBytes("password", strPtr(strings.Repeat("ñ", 37)), 72, v)
	if !v.Has("password") {
		t.Fatalf("expected violation for 74 bytes")
	}
}

func TestWholeDigits(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{name: "fits", value: "99999999.99", ok: true},
		{name: "negative fits", value: "-12345678.5", ok: true},
		{name: "nine digits", value: "123456789", ok: false},
		{name: "rounds up past limit", value: "99999999.999", ok: false},
		{name: "large", value: "123456789012.34", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := make(Violations)
			d := decimal.RequireFromString(tt.value)
			WholeDigits("total", &d, 8, 2, v)

			if tt.ok != v.Empty() {
				t.Fatalf("value %s: violations = %v, want ok=%v", tt.value, v, tt.ok)
			}
		})
	}
}

func TestRangeFloat(t *testing.T) {
	v := make(Violations)
	ok, bad := 0.15, 1.5

	RangeFloat("comision", &ok, 0, 1, v)
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}

	RangeFloat("comision", &bad, 0, 1, v)
	if !v.Has("comision") {
		t.Fatalf("expected violation for out of range value")
	}
}

func TestDate(t *testing.T) {
	v := make(Violations)

	Date("fecha", strPtr("2017-10-05"), "2006-01-02", v)
	Date("fecha", nil, "2006-01-02", v)
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}

	Date("fecha", strPtr("05/10/2017"), "2006-01-02", v)
	if !v.Has("fecha") {
		t.Fatalf("expected violation for malformed date")
	}
}
