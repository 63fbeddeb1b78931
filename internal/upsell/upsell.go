// Package upsell suggests single-feature upgrades and prices each one by
// re-running the whole-house estimator on a modified copy of the input.
package upsell

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/money"
	"github.com/Simplici0/homecost/internal/pricing"
)

// DefaultLimit is the number of suggestions returned when none is configured.
const DefaultLimit = 3

// DefaultDeckSqft is the deck size proposed when the home has none.
const DefaultDeckSqft = 300

// Candidate is one proposed change. Apply receives a private copy of the input.
type Candidate struct {
	ID          string
	Label       string
	Description string
	Apply       func(in *estimate.WholeHouseInput)
}

// Suggestion is a priced candidate.
type Suggestion struct {
	ID          string                   `json:"id"`
	Label       string                   `json:"label"`
	Description string                   `json:"description"`
	Delta       decimal.Decimal          `json:"delta"`
	NewTotal    money.Range              `json:"newTotal"`
	Input       estimate.WholeHouseInput `json:"input"`
}

// Candidates lists the upgrades that apply to in, in relevance order.
func Candidates(table *pricing.Table, in estimate.WholeHouseInput) []Candidate {
	var out []Candidate

	if next, ok := in.Finish().Next(); ok {
		out = append(out, Candidate{
			ID:          "finish_upgrade",
			Label:       fmt.Sprintf("Upgrade to %s finishes", next),
			Description: fmt.Sprintf("Raise every finish selection from %s to %s.", in.Finish(), next),
			Apply:       func(in *estimate.WholeHouseInput) { in.FinishLevel = next },
		})
	}
	if !in.HasPool() {
		out = append(out, Candidate{
			ID:          "add_pool",
			Label:       "Add a pool",
			Description: "A standard in-ground pool with deck.",
			Apply:       func(in *estimate.WholeHouseInput) { in.Pool = estimate.PoolStandard },
		})
	}
	if !in.OutdoorKitchen {
		out = append(out, Candidate{
			ID:          "add_outdoor_kitchen",
			Label:       "Add an outdoor kitchen",
			Description: "Built-in grill, counters and sink on the patio.",
			Apply:       func(in *estimate.WholeHouseInput) { in.OutdoorKitchen = true },
		})
	}
	if next, ok := nextSmartHome(in.SmartHome); ok {
		out = append(out, Candidate{
			ID:          "smart_home_" + string(next),
			Label:       fmt.Sprintf("Smart home: %s", next),
			Description: "Step up the home automation package.",
			Apply:       func(in *estimate.WholeHouseInput) { in.SmartHome = next },
		})
	}
	if !in.Generator {
		out = append(out, Candidate{
			ID:          "add_generator",
			Label:       "Add a standby generator",
			Description: "Whole-home backup power for storm season.",
			Apply:       func(in *estimate.WholeHouseInput) { in.Generator = true },
		})
	}
	if !in.ScreenedPorch {
		out = append(out, Candidate{
			ID:          "add_screened_porch",
			Label:       "Add a screened porch",
			Description: "Covered, screened outdoor living space.",
			Apply:       func(in *estimate.WholeHouseInput) { in.ScreenedPorch = true },
		})
	}
	if !in.HasFireplace() {
		tier := estimate.FireplaceType(table.DefaultTier(pricing.CategoryFireplace))
		out = append(out, Candidate{
			ID:          "add_fireplace",
			Label:       "Add a fireplace",
			Description: fmt.Sprintf("A %s fireplace in the main living area.", tier),
			Apply:       func(in *estimate.WholeHouseInput) { in.Fireplace = tier },
		})
	}
	if in.DeckSqft == 0 {
		out = append(out, Candidate{
			ID:          "add_deck",
			Label:       "Add a deck",
			Description: fmt.Sprintf("A %d sq ft deck.", DefaultDeckSqft),
			Apply:       func(in *estimate.WholeHouseInput) { in.DeckSqft = DefaultDeckSqft },
		})
	}
	return out
}

func nextSmartHome(current estimate.SmartHomeTier) (estimate.SmartHomeTier, bool) {
	if current == "" {
		current = estimate.SmartHomeNone
	}
	for i, tier := range estimate.SmartHomeTiers {
		if tier == current && i+1 < len(estimate.SmartHomeTiers) {
			return estimate.SmartHomeTiers[i+1], true
		}
	}
	return "", false
}

// Suggest prices the default candidates for in. See Evaluate.
func Suggest(table *pricing.Table, in estimate.WholeHouseInput, original *estimate.Result, limit int) ([]Suggestion, []estimate.Warning) {
	return Evaluate(table, in, original, Candidates(table, in), limit)
}

// Evaluate re-estimates each candidate in parallel, then returns, in candidate
// order, at most limit suggestions whose midpoint delta is positive. A failed
// candidate is dropped with a warning. in is never modified.
func Evaluate(table *pricing.Table, in estimate.WholeHouseInput, original *estimate.Result, candidates []Candidate, limit int) ([]Suggestion, []estimate.Warning) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if original == nil {
		r, err := estimate.EstimateHouse(table, in)
		if err != nil {
			return nil, []estimate.Warning{failure("estimate", err)}
		}
		original = r
	}
	base := original.Midpoint()

	type outcome struct {
		modified estimate.WholeHouseInput
		result   *estimate.Result
		err      error
	}
	outcomes := make([]outcome, len(candidates))

	var g errgroup.Group
	for i, c := range candidates {
		g.Go(func() error {
			modified := in
			c.Apply(&modified)
			r, err := estimate.EstimateHouse(table, modified)
			outcomes[i] = outcome{modified: modified, result: r, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var (
		suggestions []Suggestion
		warnings    []estimate.Warning
	)
	for i, c := range candidates {
		o := outcomes[i]
		if o.err != nil {
			warnings = append(warnings, failure(c.ID, o.err))
			continue
		}
		delta := o.result.Midpoint().Sub(base)
		if !delta.IsPositive() || len(suggestions) == limit {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ID:          c.ID,
			Label:       c.Label,
			Description: c.Description,
			Delta:       delta,
			NewTotal:    o.result.Total(),
			Input:       o.modified,
		})
	}
	return suggestions, warnings
}

func failure(id string, err error) estimate.Warning {
	return estimate.Warning{
		Code:    estimate.WarningUpsellFailed,
		Subject: id,
		Message: fmt.Errorf("%w: %v", estimate.ErrUpsellEvaluation, err).Error(),
	}
}
