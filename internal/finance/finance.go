// Package finance computes fixed-rate mortgage figures for an estimate.
package finance

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTerms is returned for out-of-range financing inputs.
var ErrInvalidTerms = errors.New("invalid financing terms")

// Financing is the amortization summary for a home price.
type Financing struct {
	HomePrice          float64 `json:"homePrice"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	AnnualRatePercent  float64 `json:"annualRatePercent"`
	TermYears          int     `json:"termYears"`
	DownPayment        float64 `json:"downPayment"`
	LoanAmount         float64 `json:"loanAmount"`
	NumPayments        int     `json:"numPayments"`
	MonthlyPayment     float64 `json:"monthlyPayment"`
	TotalInterest      float64 `json:"totalInterest"`
}

// Calculate amortizes homePrice less the down payment over termYears of
// monthly payments. Percentages are given as 0-100. Values are unrounded;
// use RoundCents for display.
func Calculate(homePrice, downPaymentPercent, annualRatePercent float64, termYears int) (Financing, error) {
	switch {
	case math.IsNaN(homePrice) || math.IsInf(homePrice, 0) || homePrice < 0:
		return Financing{}, fmt.Errorf("%w: home price %v", ErrInvalidTerms, homePrice)
	case math.IsNaN(downPaymentPercent) || downPaymentPercent < 0 || downPaymentPercent > 100:
		return Financing{}, fmt.Errorf("%w: down payment %v%% must be within 0-100", ErrInvalidTerms, downPaymentPercent)
	case math.IsNaN(annualRatePercent) || annualRatePercent < 0 || annualRatePercent > 100:
		return Financing{}, fmt.Errorf("%w: annual rate %v%% must be within 0-100", ErrInvalidTerms, annualRatePercent)
	case termYears <= 0:
		return Financing{}, fmt.Errorf("%w: term %d years must be positive", ErrInvalidTerms, termYears)
	}

	down := homePrice * downPaymentPercent / 100
	loan := homePrice - down
	n := termYears * 12
	monthlyRate := annualRatePercent / 100 / 12

	var payment float64
	if monthlyRate == 0 {
		payment = loan / float64(n)
	} else {
		growth := math.Pow(1+monthlyRate, float64(n))
		payment = loan * (monthlyRate * growth) / (growth - 1)
	}

	return Financing{
		HomePrice:          homePrice,
		DownPaymentPercent: downPaymentPercent,
		AnnualRatePercent:  annualRatePercent,
		TermYears:          termYears,
		DownPayment:        down,
		LoanAmount:         loan,
		NumPayments:        n,
		MonthlyPayment:     payment,
		TotalInterest:      payment*float64(n) - loan,
	}, nil
}

// RoundCents rounds v to the nearest cent.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
