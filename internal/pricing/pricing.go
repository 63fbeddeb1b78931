// Package pricing holds the cost configuration table the estimator reads:
// unit cost ranges keyed by (category, tier), surcharge rates, location
// factors, and the geometry and schedule coefficients.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrMissingConfigEntry is returned when a (category, tier) pair has no pricing data.
var ErrMissingConfigEntry = errors.New("missing cost config entry")

// DefaultLocation is the location key used when none is given.
const DefaultLocation = "default"

// Entry is a single unit cost range.
type Entry struct {
	Category Category `yaml:"category" json:"category"`
	Tier     string   `yaml:"tier" json:"tier"`
	Unit     Unit     `yaml:"unit" json:"unit"`
	CostLow  float64  `yaml:"low" json:"costPerUnitLow"`
	CostHigh float64  `yaml:"high" json:"costPerUnitHigh"`
}

// Surcharges are the out-the-door percentages applied to the base estimate.
type Surcharges struct {
	BuilderFeePercent     float64 `yaml:"builder_fee_percent" json:"builderFeePercent"`
	SalesTaxPercent       float64 `yaml:"sales_tax_percent" json:"salesTaxPercent"`
	MaterialsSharePercent float64 `yaml:"materials_share_percent" json:"materialsSharePercent"`
	PermitPercent         float64 `yaml:"permit_percent" json:"permitPercent"`
	InsurancePercent      float64 `yaml:"insurance_percent" json:"insurancePercent"`
}

// Geometry holds the shape assumptions used to turn square footage into quantities.
type Geometry struct {
	PerimeterFactor    float64 `yaml:"perimeter_factor" json:"perimeterFactor"`
	WallHeightFeet     float64 `yaml:"wall_height_ft" json:"wallHeightFeet"`
	RoofPlanFactor     float64 `yaml:"roof_plan_factor" json:"roofPlanFactor"`
	SqftPerWindow      float64 `yaml:"sqft_per_window" json:"sqftPerWindow"`
	ExteriorDoors      float64 `yaml:"exterior_doors" json:"exteriorDoors"`
	BaseInteriorDoors  float64 `yaml:"base_interior_doors" json:"baseInteriorDoors"`
	KitchenCabinetFeet float64 `yaml:"kitchen_cabinet_feet" json:"kitchenCabinetFeet"`
	VanityFeetPerBath  float64 `yaml:"vanity_feet_per_bath" json:"vanityFeetPerBath"`
	KitchenCounterSqft float64 `yaml:"kitchen_counter_sqft" json:"kitchenCounterSqft"`
	BathCounterSqft    float64 `yaml:"bath_counter_sqft" json:"bathCounterSqft"`
	SeawallLinearFeet  float64 `yaml:"seawall_linear_feet" json:"seawallLinearFeet"`
	ScreenedPorchSqft  float64 `yaml:"screened_porch_sqft" json:"screenedPorchSqft"`
}

// PhaseRate drives the duration of one schedule phase.
type PhaseRate struct {
	BaseWeeks          float64 `yaml:"base_weeks" json:"baseWeeks"`
	WeeksPer1000Sqft   float64 `yaml:"weeks_per_1000_sqft" json:"weeksPer1000Sqft"`
	WeeksPerExtraStory float64 `yaml:"weeks_per_extra_story" json:"weeksPerExtraStory"`
	ElevatedWeeks      float64 `yaml:"elevated_weeks" json:"elevatedWeeks"`
}

// Document is the serializable form of a cost table.
type Document struct {
	Defaults   map[Category]string  `yaml:"defaults" json:"defaults"`
	Surcharges Surcharges           `yaml:"surcharges" json:"surcharges"`
	Locations  map[string]float64   `yaml:"locations" json:"locations"`
	Geometry   Geometry             `yaml:"geometry" json:"geometry"`
	Schedule   map[string]PhaseRate `yaml:"schedule" json:"schedule"`
	Entries    []Entry              `yaml:"entries" json:"entries"`
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := d
	out.Defaults = make(map[Category]string, len(d.Defaults))
	for k, v := range d.Defaults {
		out.Defaults[k] = v
	}
	out.Locations = make(map[string]float64, len(d.Locations))
	for k, v := range d.Locations {
		out.Locations[k] = v
	}
	out.Schedule = make(map[string]PhaseRate, len(d.Schedule))
	for k, v := range d.Schedule {
		out.Schedule[k] = v
	}
	out.Entries = append([]Entry(nil), d.Entries...)
	return out
}

// SetEntry replaces the entry for e's (category, tier) or appends it.
func (d *Document) SetEntry(e Entry) {
	for i := range d.Entries {
		if d.Entries[i].Category == e.Category && d.Entries[i].Tier == e.Tier {
			d.Entries[i] = e
			return
		}
	}
	d.Entries = append(d.Entries, e)
}

// MissingEntryError reports a (category, tier) lookup miss.
type MissingEntryError struct {
	Category Category
	Tier     string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("%s: %s/%s", ErrMissingConfigEntry, e.Category, e.Tier)
}

func (e *MissingEntryError) Unwrap() error { return ErrMissingConfigEntry }

// Resolution describes how Table.Resolve satisfied a lookup.
type Resolution struct {
	UsedTier string
	Fallback bool
	Missing  bool
}

type entryKey struct {
	category Category
	tier     string
}

// Table is an immutable, indexed cost table. It is safe for concurrent use.
type Table struct {
	doc     Document
	entries map[entryKey]Entry
	units   map[Category]Unit
}

// NewTable indexes doc. It rejects duplicate keys, unknown units, negative
// costs, low > high, and a category priced in more than one unit. Every
// number in doc must be finite.
func NewTable(doc Document) (*Table, error) {
	doc = doc.Clone()
	t := &Table{
		doc:     doc,
		entries: make(map[entryKey]Entry, len(doc.Entries)),
		units:   make(map[Category]Unit),
	}

	for _, e := range doc.Entries {
		if e.Category == "" || e.Tier == "" {
			return nil, fmt.Errorf("cost entry with empty category or tier: %+v", e)
		}
		if !e.Unit.Valid() {
			return nil, fmt.Errorf("cost entry %s/%s: unknown unit %q", e.Category, e.Tier, e.Unit)
		}
		if !finite(e.CostLow, e.CostHigh) {
			return nil, fmt.Errorf("cost entry %s/%s: cost must be a finite number", e.Category, e.Tier)
		}
		if e.CostLow < 0 || e.CostHigh < 0 {
			return nil, fmt.Errorf("cost entry %s/%s: negative cost", e.Category, e.Tier)
		}
		if e.CostLow > e.CostHigh {
			return nil, fmt.Errorf("cost entry %s/%s: low %.2f exceeds high %.2f", e.Category, e.Tier, e.CostLow, e.CostHigh)
		}

		key := entryKey{category: e.Category, tier: e.Tier}
		if _, dup := t.entries[key]; dup {
			return nil, fmt.Errorf("duplicate cost entry %s/%s", e.Category, e.Tier)
		}
		if unit, ok := t.units[e.Category]; ok && unit != e.Unit {
			return nil, fmt.Errorf("category %s priced in both %s and %s", e.Category, unit, e.Unit)
		}
		t.entries[key] = e
		t.units[e.Category] = e.Unit
	}

	for name, factor := range doc.Locations {
		if !finite(factor) || factor <= 0 {
			return nil, fmt.Errorf("location %q: factor must be positive", name)
		}
	}

	sc := doc.Surcharges
	if !finite(sc.BuilderFeePercent, sc.SalesTaxPercent, sc.MaterialsSharePercent, sc.PermitPercent, sc.InsurancePercent) {
		return nil, errors.New("surcharges: percentages must be finite numbers")
	}
	g := doc.Geometry
	if !finite(g.PerimeterFactor, g.WallHeightFeet, g.RoofPlanFactor, g.SqftPerWindow, g.ExteriorDoors, g.BaseInteriorDoors,
		g.KitchenCabinetFeet, g.VanityFeetPerBath, g.KitchenCounterSqft, g.BathCounterSqft, g.SeawallLinearFeet, g.ScreenedPorchSqft) {
		return nil, errors.New("geometry: coefficients must be finite numbers")
	}
	for phase, r := range doc.Schedule {
		if !finite(r.BaseWeeks, r.WeeksPer1000Sqft, r.WeeksPerExtraStory, r.ElevatedWeeks) {
			return nil, fmt.Errorf("schedule phase %q: rates must be finite numbers", phase)
		}
	}

	return t, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Lookup returns the entry for (category, tier) or a *MissingEntryError.
func (t *Table) Lookup(category Category, tier string) (Entry, error) {
	e, ok := t.entries[entryKey{category: category, tier: tier}]
	if !ok {
		return Entry{}, &MissingEntryError{Category: category, Tier: tier}
	}
	return e, nil
}

// Resolve looks up (category, tier) and falls back to the category default
// tier, then to a zero-cost entry. It never fails.
func (t *Table) Resolve(category Category, tier string) (Entry, Resolution) {
	if e, err := t.Lookup(category, tier); err == nil {
		return e, Resolution{UsedTier: tier}
	}

	fallback := t.DefaultTier(category)
	if fallback != tier {
		if e, err := t.Lookup(category, fallback); err == nil {
			return e, Resolution{UsedTier: fallback, Fallback: true}
		}
	}

	return Entry{Category: category, Tier: tier, Unit: t.units[category]}, Resolution{Fallback: true, Missing: true}
}

// DefaultTier is the fallback tier for category.
func (t *Table) DefaultTier(category Category) string {
	if tier, ok := t.doc.Defaults[category]; ok && tier != "" {
		return tier
	}
	return string(FinishStandard)
}

// Unit returns the unit a category is priced in.
func (t *Table) Unit(category Category) (Unit, bool) {
	u, ok := t.units[category]
	return u, ok
}

// LocationFactor returns the base-rate factor for location. An empty location
// maps to DefaultLocation; ok is false when the location is unknown.
func (t *Table) LocationFactor(location string) (factor float64, ok bool) {
	if location == "" {
		location = DefaultLocation
	}
	if f, found := t.doc.Locations[location]; found {
		return f, true
	}
	if f, found := t.doc.Locations[DefaultLocation]; found {
		return f, false
	}
	return 1, false
}

// Locations returns the known location keys, sorted.
func (t *Table) Locations() []string {
	names := make([]string, 0, len(t.doc.Locations))
	for name := range t.doc.Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Surcharges returns the out-the-door rates.
func (t *Table) Surcharges() Surcharges { return t.doc.Surcharges }

// Geometry returns the shape assumptions.
func (t *Table) Geometry() Geometry { return t.doc.Geometry }

// PhaseRate returns the schedule coefficients for a phase id.
func (t *Table) PhaseRate(phase string) (PhaseRate, bool) {
	r, ok := t.doc.Schedule[phase]
	return r, ok
}

// Entries returns all entries sorted by category then tier.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Tier < out[j].Tier
	})
	return out
}

// Document returns a copy of the document t was built from.
func (t *Table) Document() Document { return t.doc.Clone() }
