package estimate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/pricing"
)

// line describes one quantity to price before it is resolved against the table.
type line struct {
	id       string
	name     string
	division Division
	roomKey  string
	category pricing.Category
	tier     string
	unit     pricing.Unit // expected unit, empty accepts any
	quantity float64
}

// builder accumulates priced lines and recovered problems for one calculation.
type builder struct {
	table    *pricing.Table
	factor   decimal.Decimal
	items    []LineItem
	warnings []Warning
	degraded bool
}

func newBuilder(table *pricing.Table, location string) *builder {
	b := &builder{table: table}
	factor, ok := table.LocationFactor(location)
	if !ok {
		b.warn(WarningUnknownLocation, location,
			fmt.Sprintf("location %q is not configured, using the %s factor", location, pricing.DefaultLocation))
	}
	b.factor = decimal.NewFromFloat(factor)
	return b
}

// warn records a pricing fallback and degrades confidence.
func (b *builder) warn(code WarningCode, subject, msg string) {
	b.note(code, subject, msg)
	b.degraded = true
}

// note records a skipped input without affecting confidence.
func (b *builder) note(code WarningCode, subject, msg string) {
	b.warnings = append(b.warnings, Warning{Code: code, Subject: subject, Message: msg})
}

func (b *builder) add(l line) {
	entry, res := b.table.Resolve(l.category, l.tier)
	subject := string(l.category) + "/" + l.tier
	switch {
	case res.Missing:
		b.warn(WarningMissingConfigEntry, subject, "no pricing configured, priced at zero")
	case res.Fallback:
		b.warn(WarningMissingConfigEntry, subject, fmt.Sprintf("no pricing configured, used tier %q", res.UsedTier))
	}

	unit := entry.Unit
	if unit == "" {
		unit = l.unit
	}
	if l.unit != "" && entry.Unit != "" && entry.Unit != l.unit {
		b.warn(WarningUnitMismatch, subject,
			fmt.Sprintf("configured per %s but measured per %s, line skipped", entry.Unit, l.unit))
		entry.CostLow, entry.CostHigh = 0, 0
	}

	qty := decimal.NewFromFloat(l.quantity)
	unitLow := decimal.NewFromFloat(entry.CostLow).Mul(b.factor)
	unitHigh := decimal.NewFromFloat(entry.CostHigh).Mul(b.factor)

	tier := l.tier
	if res.Fallback && !res.Missing {
		tier = res.UsedTier
	}
	b.items = append(b.items, LineItem{
		ID:          l.id,
		DisplayName: l.name,
		Division:    l.division,
		RoomKey:     l.roomKey,
		Category:    l.category,
		Tier:        tier,
		Quantity:    qty,
		Unit:        unit,
		UnitLow:     unitLow,
		UnitHigh:    unitHigh,
		TotalLow:    unitLow.Mul(qty),
		TotalHigh:   unitHigh.Mul(qty),
		Fallback:    res.Fallback,
	})
}

// result rolls line items up into division totals, in fixed division order.
func (b *builder) result(mode Mode) *Result {
	lows := make(map[Division]decimal.Decimal, len(Divisions))
	highs := make(map[Division]decimal.Decimal, len(Divisions))
	for _, item := range b.items {
		lows[item.Division] = lows[item.Division].Add(item.TotalLow)
		highs[item.Division] = highs[item.Division].Add(item.TotalHigh)
	}

	r := &Result{
		Mode:               mode,
		LineItems:          b.items,
		DivisionTotals:     make([]DivisionTotal, 0, len(Divisions)),
		ConfidenceDegraded: b.degraded,
		Warnings:           b.warnings,
	}
	if r.LineItems == nil {
		r.LineItems = []LineItem{}
	}
	for _, d := range Divisions {
		dt := DivisionTotal{Division: d, Label: d.Label(), TotalLow: lows[d], TotalHigh: highs[d]}
		r.DivisionTotals = append(r.DivisionTotals, dt)
		r.TotalLow = r.TotalLow.Add(dt.TotalLow)
		r.TotalHigh = r.TotalHigh.Add(dt.TotalHigh)
	}
	return r
}
