package main

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/pricing"
)

const maxRooms = 60

var percentRules = []validation.Rule{validation.Min(0.0), validation.Max(100.0)}

type financingRequest struct {
	// HomePrice of zero finances the estimate's out-the-door midpoint.
	HomePrice          float64 `json:"homePrice"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	AnnualRatePercent  float64 `json:"annualRatePercent"`
	TermYears          int     `json:"termYears"`
}

func (r financingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.HomePrice, validation.Min(0.0)),
		validation.Field(&r.DownPaymentPercent, percentRules...),
		validation.Field(&r.AnnualRatePercent, percentRules...),
		validation.Field(&r.TermYears, validation.Required, validation.Min(1), validation.Max(50)),
	)
}

type houseRequest struct {
	Input     estimate.WholeHouseInput `json:"input"`
	Financing *financingRequest        `json:"financing,omitempty"`
	Title     string                   `json:"title,omitempty"`
}

func (r houseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Financing),
		validation.Field(&r.Title, validation.Length(0, 120)),
	)
}

type roomsRequest struct {
	TotalSqft float64                  `json:"totalSqft"`
	Rooms     []estimate.RoomSelection `json:"rooms"`
}

func (r roomsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rooms, validation.Length(0, maxRooms)),
	)
}

type shareRequest struct {
	Input estimate.WholeHouseInput `json:"input"`
}

type leadRequest struct {
	Name  string                   `json:"name"`
	Email string                   `json:"email"`
	Phone string                   `json:"phone,omitempty"`
	Notes string                   `json:"notes,omitempty"`
	Input estimate.WholeHouseInput `json:"input"`
}

func (r leadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Phone, validation.Length(0, 40)),
		validation.Field(&r.Notes, validation.Length(0, 2000)),
	)
}

type entryRequest struct {
	Category string  `json:"category"`
	Tier     string  `json:"tier"`
	Unit     string  `json:"unit"`
	CostLow  float64 `json:"costPerUnitLow"`
	CostHigh float64 `json:"costPerUnitHigh"`
}

func (r entryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Tier, validation.Required),
		validation.Field(&r.Unit, validation.Required, validation.By(validUnit)),
		validation.Field(&r.CostLow, validation.Min(0.0)),
		validation.Field(&r.CostHigh, validation.Min(r.CostLow).Error("must be no less than the low cost")),
	)
}

func (r entryRequest) entry() pricing.Entry {
	return pricing.Entry{
		Category: pricing.Category(strings.TrimSpace(r.Category)),
		Tier:     strings.TrimSpace(r.Tier),
		Unit:     pricing.Unit(r.Unit),
		CostLow:  r.CostLow,
		CostHigh: r.CostHigh,
	}
}

func validUnit(v any) error {
	s, _ := v.(string)
	if !pricing.Unit(s).Valid() {
		return validation.NewError("validation_unit", "is not a known unit")
	}
	return nil
}

type ratesRequest pricing.Surcharges

func (r ratesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BuilderFeePercent, percentRules...),
		validation.Field(&r.SalesTaxPercent, percentRules...),
		validation.Field(&r.MaterialsSharePercent, percentRules...),
		validation.Field(&r.PermitPercent, percentRules...),
		validation.Field(&r.InsurancePercent, percentRules...),
	)
}

type locationRequest struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

func (r locationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&r.Factor, validation.Min(0.0).Exclusive(), validation.Max(10.0)),
	)
}
