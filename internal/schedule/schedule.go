// Package schedule allocates construction time across the fixed build phases.
package schedule

import (
	"math"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/pricing"
)

// WeeksPerMonth converts weeks to calendar months.
const WeeksPerMonth = 52.0 / 12.0

// Phase identifiers in build order.
const (
	PhaseSitePrep          = "site_prep"
	PhaseFoundation        = "foundation"
	PhaseFraming           = "framing"
	PhaseRoofing           = "roofing"
	PhaseExterior          = "exterior"
	PhaseRoughIn           = "rough_in"
	PhaseInsulationDrywall = "insulation_drywall"
	PhaseInteriorFinishes  = "interior_finishes"
	PhasePool              = "pool"
	PhaseSeawall           = "seawall"
	PhaseLandscaping       = "landscaping"
	PhaseFinalInspection   = "final_inspection"
)

type phaseDef struct {
	id      string
	name    string
	applies func(estimate.WholeHouseInput) bool
}

func always(estimate.WholeHouseInput) bool { return true }

var phases = []phaseDef{
	{PhaseSitePrep, "Site Preparation", always},
	{PhaseFoundation, "Foundation", always},
	{PhaseFraming, "Framing", always},
	{PhaseRoofing, "Roofing", always},
	{PhaseExterior, "Exterior Envelope", always},
	{PhaseRoughIn, "Mechanical Rough-In", always},
	{PhaseInsulationDrywall, "Insulation & Drywall", always},
	{PhaseInteriorFinishes, "Interior Finishes", always},
	{PhasePool, "Pool Construction", estimate.WholeHouseInput.HasPool},
	{PhaseSeawall, "Seawall", func(in estimate.WholeHouseInput) bool { return in.Seawall }},
	{PhaseLandscaping, "Landscaping", always},
	{PhaseFinalInspection, "Final Inspection & Closeout", always},
}

// PhaseIDs returns every phase identifier in build order.
func PhaseIDs() []string {
	ids := make([]string, len(phases))
	for i, p := range phases {
		ids[i] = p.id
	}
	return ids
}

// Phase is one step of the build.
type Phase struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DurationWeeks int    `json:"durationWeeks"`
}

// Result is the full schedule. Every phase is present, in order, even when
// its duration is zero.
type Result struct {
	Phases      []Phase `json:"phases"`
	TotalWeeks  int     `json:"totalWeeks"`
	TotalMonths float64 `json:"totalMonths"`
}

// Estimate computes phase durations from the table's schedule coefficients.
// A phase without coefficients takes zero weeks.
func Estimate(table *pricing.Table, in estimate.WholeHouseInput) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Phases: make([]Phase, 0, len(phases))}
	for _, def := range phases {
		p := Phase{ID: def.id, Name: def.name}
		if rate, ok := table.PhaseRate(def.id); ok && def.applies(in) {
			p.DurationWeeks = weeks(rate, in)
		}
		res.Phases = append(res.Phases, p)
		res.TotalWeeks += p.DurationWeeks
	}
	res.TotalMonths = math.Round(float64(res.TotalWeeks)/WeeksPerMonth*10) / 10
	return res, nil
}

func weeks(rate pricing.PhaseRate, in estimate.WholeHouseInput) int {
	w := rate.BaseWeeks +
		rate.WeeksPer1000Sqft*in.SquareFeet/1000 +
		rate.WeeksPerExtraStory*float64(in.Stories-1)
	if in.Elevated {
		w += rate.ElevatedWeeks
	}
	if w <= 0 {
		return 0
	}
	return int(math.Ceil(w))
}
