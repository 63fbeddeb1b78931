package estimate

import (
	"math"

	"github.com/Simplici0/homecost/internal/pricing"
)

// Quantities are the measured take-offs derived from a WholeHouseInput and
// the table geometry.
type Quantities struct {
	Footprint     float64 `json:"footprintSqft"`
	Perimeter     float64 `json:"perimeterFeet"`
	WallArea      float64 `json:"wallAreaSqft"`
	RoofArea      float64 `json:"roofAreaSqft"`
	Windows       float64 `json:"windows"`
	InteriorDoors float64 `json:"interiorDoors"`
	CabinetFeet   float64 `json:"cabinetFeet"`
	CounterSqft   float64 `json:"counterSqft"`
}

// TakeOff computes quantities for in. in must already be valid.
func TakeOff(g pricing.Geometry, in WholeHouseInput) Quantities {
	footprint := in.SquareFeet / float64(in.Stories)
	perimeter := 4 * math.Sqrt(footprint) * g.PerimeterFactor

	var windows float64
	if g.SqftPerWindow > 0 {
		windows = math.Ceil(in.SquareFeet / g.SqftPerWindow)
	}

	return Quantities{
		Footprint:     round2(footprint),
		Perimeter:     round2(perimeter),
		WallArea:      round2(perimeter * g.WallHeightFeet * float64(in.Stories)),
		RoofArea:      round2(footprint * g.RoofPlanFactor),
		Windows:       windows,
		InteriorDoors: float64(in.Bedrooms) + math.Ceil(in.Bathrooms) + g.BaseInteriorDoors,
		CabinetFeet:   round2(g.KitchenCabinetFeet + in.Bathrooms*g.VanityFeetPerBath),
		CounterSqft:   round2(g.KitchenCounterSqft + in.Bathrooms*g.BathCounterSqft),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// EstimateHouse prices a whole home from its flat specification. Missing
// cost entries, unit mismatches and unknown locations degrade the result
// instead of failing it. Only structurally invalid input is an error.
func EstimateHouse(table *pricing.Table, in WholeHouseInput) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	b := newBuilder(table, in.Location)
	g := table.Geometry()
	q := TakeOff(g, in)
	finish := string(in.Finish())
	pick := func(category pricing.Category, chosen string) string {
		if chosen == "" {
			return table.DefaultTier(category)
		}
		return chosen
	}

	sqft := in.SquareFeet
	lines := []line{
		{id: "site_prep", name: "Site preparation", division: DivisionSitework,
			category: pricing.CategorySitePrep, tier: finish, unit: pricing.UnitSquareFoot, quantity: q.Footprint},
		{id: "driveway_landscape", name: "Driveway & landscaping", division: DivisionSitework,
			category: pricing.CategoryDrivewayLandscape, tier: finish, unit: pricing.UnitLot, quantity: 1},
	}
	if in.HasPool() {
		lines = append(lines, line{id: "pool", name: "Swimming pool", division: DivisionSitework,
			category: pricing.CategoryPool, tier: string(in.Pool), unit: pricing.UnitLot, quantity: 1})
	}
	if in.Seawall {
		lines = append(lines, line{id: "seawall", name: "Seawall", division: DivisionSitework,
			category: pricing.CategorySeawall, tier: finish, unit: pricing.UnitLinearFoot, quantity: g.SeawallLinearFeet})
	}

	lines = append(lines, line{id: "foundation", name: "Foundation", division: DivisionFoundation,
		category: pricing.CategoryFoundation, tier: finish, unit: pricing.UnitSquareFoot, quantity: q.Footprint})
	if in.Elevated {
		lines = append(lines, line{id: "elevated_construction", name: "Elevated construction", division: DivisionFoundation,
			category: pricing.CategoryElevatedConstruction, tier: finish, unit: pricing.UnitSquareFoot, quantity: q.Footprint})
	}

	lines = append(lines,
		line{id: "framing", name: "Structural framing", division: DivisionFraming,
			category: pricing.CategoryFraming, tier: finish, unit: pricing.UnitSquareFoot, quantity: sqft},
		line{id: "style_premium", name: "Architectural style", division: DivisionFraming,
			category: pricing.CategoryStylePremium, tier: pick(pricing.CategoryStylePremium, string(in.Style)),
			unit: pricing.UnitSquareFoot, quantity: sqft},
		line{id: "roofing", name: "Roofing", division: DivisionRoofing,
			category: pricing.CategoryRoofing, tier: pick(pricing.CategoryRoofing, string(in.Roof)),
			unit: pricing.UnitSquareFoot, quantity: q.RoofArea},
		line{id: "cladding", name: "Exterior cladding", division: DivisionExterior,
			category: pricing.CategoryCladding, tier: pick(pricing.CategoryCladding, string(in.Cladding)),
			unit: pricing.UnitSquareFoot, quantity: q.WallArea},
		line{id: "windows", name: "Windows", division: DivisionOpenings,
			category: pricing.CategoryWindows, tier: pick(pricing.CategoryWindows, string(in.Windows)),
			unit: pricing.UnitEach, quantity: q.Windows},
		line{id: "exterior_doors", name: "Exterior doors", division: DivisionOpenings,
			category: pricing.CategoryExteriorDoors, tier: finish, unit: pricing.UnitEach, quantity: g.ExteriorDoors},
		line{id: "interior_doors", name: "Interior doors", division: DivisionOpenings,
			category: pricing.CategoryInteriorDoors, tier: finish, unit: pricing.UnitEach, quantity: q.InteriorDoors},
		line{id: "floor_covering", name: "Flooring", division: DivisionInteriorFinishes,
			category: pricing.CategoryFloorCovering, tier: pick(pricing.CategoryFloorCovering, string(in.Flooring)),
			unit: pricing.UnitSquareFoot, quantity: sqft},
		line{id: "drywall_paint", name: "Drywall & paint", division: DivisionInteriorFinishes,
			category: pricing.CategoryDrywallPaint, tier: finish, unit: pricing.UnitSquareFoot, quantity: sqft},
		line{id: "kitchen_cabinetry", name: "Cabinetry", division: DivisionInteriorFinishes,
			category: pricing.CategoryKitchenCabinetry, tier: finish, unit: pricing.UnitLinearFoot, quantity: q.CabinetFeet},
		line{id: "counter_surfaces", name: "Countertops", division: DivisionInteriorFinishes,
			category: pricing.CategoryCounterSurfaces, tier: pick(pricing.CategoryCounterSurfaces, string(in.Countertop)),
			unit: pricing.UnitSquareFoot, quantity: q.CounterSqft},
	)
	if in.Bathrooms > 0 {
		lines = append(lines, line{id: "bath_fixtures", name: "Bathroom fixtures", division: DivisionInteriorFinishes,
			category: pricing.CategoryBathFixtures, tier: finish, unit: pricing.UnitEach, quantity: in.Bathrooms})
	}
	lines = append(lines,
		line{id: "appliance_suite", name: "Appliance package", division: DivisionInteriorFinishes,
			category: pricing.CategoryApplianceSuite, tier: finish, unit: pricing.UnitLot, quantity: 1},
		line{id: "hvac", name: "HVAC", division: DivisionMechanicalElectrical,
			category: pricing.CategoryHVAC, tier: finish, unit: pricing.UnitSquareFoot, quantity: sqft},
		line{id: "plumbing", name: "Plumbing", division: DivisionMechanicalElectrical,
			category: pricing.CategoryPlumbing, tier: finish, unit: pricing.UnitSquareFoot, quantity: sqft},
		line{id: "electrical", name: "Electrical", division: DivisionMechanicalElectrical,
			category: pricing.CategoryElectrical, tier: finish, unit: pricing.UnitSquareFoot, quantity: sqft},
	)
	if in.HasSmartHome() {
		lines = append(lines, line{id: "smart_home", name: "Smart home", division: DivisionMechanicalElectrical,
			category: pricing.CategorySmartHome, tier: string(in.SmartHome), unit: pricing.UnitSquareFoot, quantity: sqft})
	}
	if in.Generator {
		lines = append(lines, line{id: "generator", name: "Standby generator", division: DivisionMechanicalElectrical,
			category: pricing.CategoryGenerator, tier: finish, unit: pricing.UnitLot, quantity: 1})
	}

	if in.HasFireplace() {
		lines = append(lines, line{id: "fireplace", name: "Fireplace", division: DivisionSpecialties,
			category: pricing.CategoryFireplace, tier: string(in.Fireplace), unit: pricing.UnitEach, quantity: 1})
	}
	if in.OutdoorKitchen {
		lines = append(lines, line{id: "outdoor_kitchen", name: "Outdoor kitchen", division: DivisionSpecialties,
			category: pricing.CategoryOutdoorKitchen, tier: finish, unit: pricing.UnitLot, quantity: 1})
	}
	if in.ScreenedPorch {
		lines = append(lines, line{id: "screened_porch", name: "Screened porch", division: DivisionSpecialties,
			category: pricing.CategoryScreenedPorch, tier: finish, unit: pricing.UnitSquareFoot, quantity: g.ScreenedPorchSqft})
	}
	if in.DeckSqft > 0 {
		lines = append(lines, line{id: "deck", name: "Deck", division: DivisionSpecialties,
			category: pricing.CategoryDeck, tier: finish, unit: pricing.UnitSquareFoot, quantity: in.DeckSqft})
	}

	lines = append(lines, line{id: "general_conditions", name: "General conditions", division: DivisionOverhead,
		category: pricing.CategoryGeneralConditions, tier: finish, unit: pricing.UnitSquareFoot, quantity: sqft})

	for _, l := range lines {
		b.add(l)
	}

	r := b.result(ModeHouse)
	otd := ComputeOutTheDoor(r.Total(), table.Surcharges())
	r.OutTheDoor = &otd
	return r, nil
}
