package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/money"
	"github.com/Simplici0/homecost/internal/pricing"
)

var hundred = decimal.NewFromInt(100)

// SurchargeRates are the fractions applied to the base estimate. SalesTax is
// the effective rate: the configured tax on the materials share only.
type SurchargeRates struct {
	BuilderFee decimal.Decimal `json:"builderFee"`
	SalesTax   decimal.Decimal `json:"salesTax"`
	Permits    decimal.Decimal `json:"permits"`
	Insurance  decimal.Decimal `json:"insurance"`
}

// Sum is the combined surcharge rate.
func (s SurchargeRates) Sum() decimal.Decimal {
	return s.BuilderFee.Add(s.SalesTax).Add(s.Permits).Add(s.Insurance)
}

// OutTheDoor is the all-in cost: base plus builder fee, tax, permits and
// insurance, each computed on the base independently.
type OutTheDoor struct {
	Base       money.Range    `json:"base"`
	BuilderFee money.Range    `json:"builderFee"`
	SalesTax   money.Range    `json:"salesTax"`
	Permits    money.Range    `json:"permits"`
	Insurance  money.Range    `json:"insurance"`
	Total      money.Range    `json:"total"`
	Rates      SurchargeRates `json:"rates"`
}

// SurchargeLine is a labelled row of the out-the-door breakdown.
type SurchargeLine struct {
	Label string
	Rate  decimal.Decimal
	Cost  money.Range
}

// Lines returns the surcharges in display order.
func (o OutTheDoor) Lines() []SurchargeLine {
	return []SurchargeLine{
		{Label: "Builder fee", Rate: o.Rates.BuilderFee, Cost: o.BuilderFee},
		{Label: "Sales tax on materials", Rate: o.Rates.SalesTax, Cost: o.SalesTax},
		{Label: "Permits", Rate: o.Rates.Permits, Cost: o.Permits},
		{Label: "Builder's risk insurance", Rate: o.Rates.Insurance, Cost: o.Insurance},
	}
}

// Rates converts configured percentages to fractions. A materials share of
// zero or less means the whole base is taxable.
func Rates(s pricing.Surcharges) SurchargeRates {
	share := s.MaterialsSharePercent
	if share <= 0 {
		share = 100
	}
	return SurchargeRates{
		BuilderFee: decimal.NewFromFloat(s.BuilderFeePercent).Div(hundred),
		SalesTax:   decimal.NewFromFloat(s.SalesTaxPercent).Mul(decimal.NewFromFloat(share)).Div(hundred).Div(hundred),
		Permits:    decimal.NewFromFloat(s.PermitPercent).Div(hundred),
		Insurance:  decimal.NewFromFloat(s.InsurancePercent).Div(hundred),
	}
}

// ComputeOutTheDoor applies the surcharges to base. Total equals
// base * (1 + sum of rates) exactly.
func ComputeOutTheDoor(base money.Range, s pricing.Surcharges) OutTheDoor {
	rates := Rates(s)
	o := OutTheDoor{
		Base:       base,
		BuilderFee: base.Mul(rates.BuilderFee),
		SalesTax:   base.Mul(rates.SalesTax),
		Permits:    base.Mul(rates.Permits),
		Insurance:  base.Mul(rates.Insurance),
		Rates:      rates,
	}
	o.Total = money.Sum(o.Base, o.BuilderFee, o.SalesTax, o.Permits, o.Insurance)
	return o
}
