// Package achievements derives badges from a home specification and its estimate.
package achievements

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/pricing"
)

// Achievement is an unlocked badge.
type Achievement struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var (
	millionDollars = decimal.NewFromInt(1_000_000)
	budgetCeiling  = decimal.NewFromInt(400_000)
)

type rule struct {
	Achievement
	unlocked func(in estimate.WholeHouseInput, r *estimate.Result) bool
}

var rules = []rule{
	{Achievement{"luxury_living", "crown", "Luxury Living", "Every finish at the luxury tier."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool { return in.Finish() == pricing.FinishLuxury }},
	{Achievement{"grand_estate", "castle", "Grand Estate", "At least 4,000 square feet."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool { return in.SquareFeet >= 4000 }},
	{Achievement{"resort_backyard", "palm-tree", "Resort Backyard", "A pool and an outdoor kitchen."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool { return in.HasPool() && in.OutdoorKitchen }},
	{Achievement{"smart_home", "cpu", "Connected Home", "Home automation included."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool { return in.HasSmartHome() }},
	{Achievement{"storm_ready", "shield", "Storm Ready", "Elevated, impact windows and backup power."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool {
			return in.Elevated && in.Generator && in.Windows == estimate.WindowsImpact
		}},
	{Achievement{"waterfront", "waves", "Waterfront", "Seawall-protected shoreline."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool { return in.Seawall }},
	{Achievement{"entertainer", "party", "The Entertainer", "Outdoor kitchen plus a porch or deck."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool {
			return in.OutdoorKitchen && (in.ScreenedPorch || in.DeckSqft > 0)
		}},
	{Achievement{"cozy_hearth", "flame", "Cozy Hearth", "A fireplace warms the living room."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool { return in.HasFireplace() }},
	{Achievement{"seven_figures", "gem", "Seven Figures", "High estimate of $1,000,000 or more."},
		func(_ estimate.WholeHouseInput, r *estimate.Result) bool {
			return r != nil && r.TotalHigh.GreaterThanOrEqual(millionDollars)
		}},
	{Achievement{"budget_savvy", "piggy-bank", "Budget Savvy", "Builder finishes under $400,000."},
		func(in estimate.WholeHouseInput, r *estimate.Result) bool {
			return r != nil && in.Finish() == pricing.FinishBuilder && r.TotalHigh.LessThan(budgetCeiling)
		}},
	{Achievement{"sky_high", "building", "Sky High", "Three or more stories."},
		func(in estimate.WholeHouseInput, _ *estimate.Result) bool { return in.Stories >= 3 }},
}

// Catalog returns every achievement in display order.
func Catalog() []Achievement {
	out := make([]Achievement, len(rules))
	for i, r := range rules {
		out[i] = r.Achievement
	}
	return out
}

// Evaluate returns the unlocked achievements in catalog order. Cost-based
// badges need a result; with a nil result they stay locked.
func Evaluate(in estimate.WholeHouseInput, r *estimate.Result) []Achievement {
	out := []Achievement{}
	for _, rule := range rules {
		if rule.unlocked(in, r) {
			out = append(out, rule.Achievement)
		}
	}
	return out
}
