package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRange_AddAndMidpoint(t *testing.T) {
	r := NewRange(100, 200).Add(NewRange(50.5, 60.25))

	if !r.Low.Equal(decimal.RequireFromString("150.5")) {
		t.Fatalf("low = %s, want 150.5", r.Low)
	}
	if !r.High.Equal(decimal.RequireFromString("260.25")) {
		t.Fatalf("high = %s, want 260.25", r.High)
	}
	if got := r.Midpoint(); !got.Equal(decimal.RequireFromString("205.375")) {
		t.Fatalf("midpoint = %s, want 205.375", got)
	}
}

func TestRange_ZeroValueIsUsable(t *testing.T) {
	var r Range
	if !r.IsZero() || !r.Valid() {
		t.Fatalf("zero range should be zero and valid: %+v", r)
	}
	if got := Sum(r, NewRange(1, 2)); !got.Equal(NewRange(1, 2)) {
		t.Fatalf("Sum = %+v, want 1..2", got)
	}
}

func TestRange_JSONRoundTripIsExact(t *testing.T) {
	r := NewRange(0.1, 0.2).Add(NewRange(0.2, 0.1))

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Range
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(r) {
		t.Fatalf("round trip = %+v, want %+v", back, r)
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"thousands", "1234567.89", "$1,234,568"},
		{"small", "12", "$12"},
		{"negative", "-2500.4", "-$2,500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUSD(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("FormatUSD(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(decimal.RequireFromString("2661.2142")); got != "$2,661.21" {
		t.Fatalf("FormatCents = %q, want %q", got, "$2,661.21")
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(NewRange(350000, 420000.5)); got != "$350,000 - $420,001" {
		t.Fatalf("FormatRange = %q", got)
	}
}
