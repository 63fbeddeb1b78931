package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/money"
	"github.com/Simplici0/homecost/internal/pricing"
)

// Mode identifies which estimator produced a result.
type Mode string

const (
	ModeHouse Mode = "house"
	ModeRooms Mode = "rooms"
)

// Division is a construction cost division.
type Division string

const (
	DivisionSitework             Division = "sitework"
	DivisionFoundation           Division = "foundation"
	DivisionFraming              Division = "framing"
	DivisionRoofing              Division = "roofing"
	DivisionExterior             Division = "exterior"
	DivisionOpenings             Division = "openings"
	DivisionInteriorFinishes     Division = "interior_finishes"
	DivisionMechanicalElectrical Division = "mechanical_electrical"
	DivisionSpecialties          Division = "specialties"
	DivisionOverhead             Division = "overhead"
)

// Divisions is the fixed output order.
var Divisions = []Division{
	DivisionSitework, DivisionFoundation, DivisionFraming, DivisionRoofing, DivisionExterior,
	DivisionOpenings, DivisionInteriorFinishes, DivisionMechanicalElectrical, DivisionSpecialties,
	DivisionOverhead,
}

var divisionLabels = map[Division]string{
	DivisionSitework:             "Sitework",
	DivisionFoundation:           "Foundation",
	DivisionFraming:              "Framing",
	DivisionRoofing:              "Roofing",
	DivisionExterior:             "Exterior Envelope",
	DivisionOpenings:             "Windows & Doors",
	DivisionInteriorFinishes:     "Interior Finishes",
	DivisionMechanicalElectrical: "Mechanical, Electrical & Plumbing",
	DivisionSpecialties:          "Specialties & Outdoor Living",
	DivisionOverhead:             "General Conditions",
}

// Label is the display name of d.
func (d Division) Label() string {
	if l, ok := divisionLabels[d]; ok {
		return l
	}
	return string(d)
}

// LineItem is one priced material or work line.
type LineItem struct {
	ID          string           `json:"id"`
	DisplayName string           `json:"displayName"`
	Division    Division         `json:"division"`
	RoomKey     string           `json:"roomKey,omitempty"`
	Category    pricing.Category `json:"category"`
	Tier        string           `json:"tier"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        pricing.Unit     `json:"unit"`
	UnitLow     decimal.Decimal  `json:"unitCostLow"`
	UnitHigh    decimal.Decimal  `json:"unitCostHigh"`
	TotalLow    decimal.Decimal  `json:"totalLow"`
	TotalHigh   decimal.Decimal  `json:"totalHigh"`
	Fallback    bool             `json:"fallback,omitempty"`
}

// Total returns the line's cost range.
func (l LineItem) Total() money.Range { return money.Range{Low: l.TotalLow, High: l.TotalHigh} }

// DivisionTotal is the sum of a division's line items.
type DivisionTotal struct {
	Division  Division        `json:"division"`
	Label     string          `json:"label"`
	TotalLow  decimal.Decimal `json:"totalLow"`
	TotalHigh decimal.Decimal `json:"totalHigh"`
}

// RoomBreakdown is the sum of one room's line items.
type RoomBreakdown struct {
	Key        string          `json:"key"`
	RoomID     string          `json:"roomId"`
	Name       string          `json:"name"`
	SquareFeet decimal.Decimal `json:"squareFeet"`
	TotalLow   decimal.Decimal `json:"totalLow"`
	TotalHigh  decimal.Decimal `json:"totalHigh"`
}

// Result is the output of either estimator. TotalLow and TotalHigh always
// equal the sums of the division totals.
type Result struct {
	Mode               Mode            `json:"mode"`
	TotalLow           decimal.Decimal `json:"totalLow"`
	TotalHigh          decimal.Decimal `json:"totalHigh"`
	LineItems          []LineItem      `json:"lineItems"`
	DivisionTotals     []DivisionTotal `json:"divisionTotals"`
	RoomBreakdowns     []RoomBreakdown `json:"roomBreakdowns,omitempty"`
	OutTheDoor         *OutTheDoor     `json:"outTheDoor,omitempty"`
	ConfidenceDegraded bool            `json:"confidenceDegraded"`
	Warnings           []Warning       `json:"warnings,omitempty"`
}

// Total returns the base estimate range.
func (r *Result) Total() money.Range { return money.Range{Low: r.TotalLow, High: r.TotalHigh} }

// Midpoint is the mean of the base low and high totals.
func (r *Result) Midpoint() decimal.Decimal { return r.Total().Midpoint() }

// Division returns the total for d.
func (r *Result) Division(d Division) (DivisionTotal, bool) {
	for _, dt := range r.DivisionTotals {
		if dt.Division == d {
			return dt, true
		}
	}
	return DivisionTotal{}, false
}

// HasWarning reports whether a warning with code was recorded.
func (r *Result) HasWarning(code WarningCode) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
