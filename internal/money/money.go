// Package money holds the low/high cost range used across the estimator and
// the display helpers that round and format it.
package money

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Range is a low/high cost interval. Arithmetic is exact; rounding only
// happens in the formatting helpers.
type Range struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

// NewRange builds a Range from float bounds.
func NewRange(low, high float64) Range {
	return Range{Low: decimal.NewFromFloat(low), High: decimal.NewFromFloat(high)}
}

// Add returns the component-wise sum of r and o.
func (r Range) Add(o Range) Range {
	return Range{Low: r.Low.Add(o.Low), High: r.High.Add(o.High)}
}

// Mul scales both bounds by f.
func (r Range) Mul(f decimal.Decimal) Range {
	return Range{Low: r.Low.Mul(f), High: r.High.Mul(f)}
}

// Midpoint is the arithmetic mean of the bounds.
func (r Range) Midpoint() decimal.Decimal {
	return r.Low.Add(r.High).Div(two)
}

// Valid reports whether Low <= High.
func (r Range) Valid() bool {
	return r.Low.LessThanOrEqual(r.High)
}

// IsZero reports whether both bounds are zero.
func (r Range) IsZero() bool {
	return r.Low.IsZero() && r.High.IsZero()
}

// Equal compares bounds numerically.
func (r Range) Equal(o Range) bool {
	return r.Low.Equal(o.Low) && r.High.Equal(o.High)
}

// Sum adds ranges in order.
func Sum(ranges ...Range) Range {
	var total Range
	for _, r := range ranges {
		total = total.Add(r)
	}
	return total
}

// Round rounds a value to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatUSD formats d as whole dollars with thousands separators, e.g. $1,234,568.
func FormatUSD(d decimal.Decimal) string {
	return withSign(d.Round(0), "#,###.")
}

// FormatCents formats d with two decimals, e.g. $2,661.21.
func FormatCents(d decimal.Decimal) string {
	return withSign(d.Round(2), "#,###.##")
}

// FormatRange renders "$low - $high" in whole dollars.
func FormatRange(r Range) string {
	return FormatUSD(r.Low) + " - " + FormatUSD(r.High)
}

func withSign(d decimal.Decimal, pattern string) string {
	s := humanize.FormatFloat(pattern, d.Abs().InexactFloat64())
	s = strings.TrimSuffix(s, ".")
	if d.IsNegative() {
		return "-$" + s
	}
	return "$" + s
}
