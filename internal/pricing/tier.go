package pricing

// FinishLevel is the ordered quality grade applied per category.
type FinishLevel string

const (
	FinishBuilder  FinishLevel = "builder"
	FinishStandard FinishLevel = "standard"
	FinishPremium  FinishLevel = "premium"
	FinishLuxury   FinishLevel = "luxury"
)

// FinishLevels lists the tiers from lowest to highest.
var FinishLevels = []FinishLevel{FinishBuilder, FinishStandard, FinishPremium, FinishLuxury}

// Rank returns the position of f in FinishLevels, or -1 if f is unknown.
func (f FinishLevel) Rank() int {
	for i, level := range FinishLevels {
		if level == f {
			return i
		}
	}
	return -1
}

// Valid reports whether f is one of the four tiers.
func (f FinishLevel) Valid() bool {
	return f.Rank() >= 0
}

// Next returns the tier above f. ok is false for luxury and unknown levels.
func (f FinishLevel) Next() (next FinishLevel, ok bool) {
	rank := f.Rank()
	if rank < 0 || rank == len(FinishLevels)-1 {
		return "", false
	}
	return FinishLevels[rank+1], true
}

// Category identifies a priced material, trade, or optional feature.
type Category string

// Room-level material categories.
const (
	CategoryFlooring         Category = "flooring"
	CategoryPaint            Category = "paint"
	CategoryTrim             Category = "trim"
	CategoryLighting         Category = "lighting"
	CategoryCabinetry        Category = "cabinetry"
	CategoryCountertops      Category = "countertops"
	CategoryTile             Category = "tile"
	CategoryPlumbingFixtures Category = "plumbing_fixtures"
	CategoryAppliances       Category = "appliances"
	CategoryClosetSystems    Category = "closet_systems"
)

// Whole-house categories. Tiers are finish levels unless noted.
const (
	CategorySitePrep             Category = "site_prep"
	CategoryDrivewayLandscape    Category = "driveway_landscape"
	CategoryPool                 Category = "pool" // tier: pool tier
	CategorySeawall              Category = "seawall"
	CategoryFoundation           Category = "foundation"
	CategoryElevatedConstruction Category = "elevated_construction"
	CategoryFraming              Category = "framing"
	CategoryStylePremium         Category = "style_premium" // tier: architectural style
	CategoryRoofing              Category = "roofing"       // tier: roof type
	CategoryCladding             Category = "cladding"      // tier: cladding type
	CategoryWindows              Category = "windows"       // tier: window grade
	CategoryExteriorDoors        Category = "exterior_doors"
	CategoryInteriorDoors        Category = "interior_doors"
	CategoryFloorCovering        Category = "floor_covering" // tier: flooring type
	CategoryDrywallPaint         Category = "drywall_paint"
	CategoryKitchenCabinetry     Category = "kitchen_cabinetry"
	CategoryCounterSurfaces      Category = "counter_surfaces" // tier: countertop material
	CategoryBathFixtures         Category = "bath_fixtures"
	CategoryApplianceSuite       Category = "appliance_suite"
	CategoryHVAC                 Category = "hvac"
	CategoryPlumbing             Category = "plumbing"
	CategoryElectrical           Category = "electrical"
	CategorySmartHome            Category = "smart_home" // tier: smart-home tier
	CategoryGenerator            Category = "generator"
	CategoryFireplace            Category = "fireplace" // tier: fireplace type
	CategoryOutdoorKitchen       Category = "outdoor_kitchen"
	CategoryScreenedPorch        Category = "screened_porch"
	CategoryDeck                 Category = "deck"
	CategoryGeneralConditions    Category = "general_conditions"
)

// Unit is the quantity basis a category is priced in.
type Unit string

const (
	UnitSquareFoot Unit = "sqft"
	UnitLinearFoot Unit = "linear_ft"
	UnitEach       Unit = "each"
	UnitLot        Unit = "lot"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitSquareFoot, UnitLinearFoot, UnitEach, UnitLot:
		return true
	}
	return false
}
