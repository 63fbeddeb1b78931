package estimate

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Simplici0/homecost/internal/pricing"
)

// Enumerated whole-house selections. Values are tiers in the cost table, so
// new options can be priced without code changes.
type (
	Style         string
	Cladding      string
	RoofType      string
	WindowGrade   string
	FlooringType  string
	Countertop    string
	PoolTier      string
	SmartHomeTier string
	FireplaceType string
)

const (
	StyleTraditional   Style = "traditional"
	StyleFarmhouse     Style = "farmhouse"
	StyleCraftsman     Style = "craftsman"
	StyleCoastal       Style = "coastal"
	StyleModern        Style = "modern"
	StyleMediterranean Style = "mediterranean"

	CladdingVinyl       Cladding = "vinyl"
	CladdingFiberCement Cladding = "fiber_cement"
	CladdingStucco      Cladding = "stucco"
	CladdingBrick       Cladding = "brick"
	CladdingStone       Cladding = "stone"

	RoofAsphalt RoofType = "asphalt"
	RoofMetal   RoofType = "metal"
	RoofTile    RoofType = "tile"
	RoofSlate   RoofType = "slate"

	WindowsStandard   WindowGrade = "standard"
	WindowsEnergyStar WindowGrade = "energy_star"
	WindowsImpact     WindowGrade = "impact"

	FlooringCarpet   FlooringType = "carpet"
	FlooringLVP      FlooringType = "lvp"
	FlooringTile     FlooringType = "tile"
	FlooringHardwood FlooringType = "hardwood"

	CountertopLaminate Countertop = "laminate"
	CountertopGranite  Countertop = "granite"
	CountertopQuartz   Countertop = "quartz"
	CountertopMarble   Countertop = "marble"

	PoolNone     PoolTier = "none"
	PoolStandard PoolTier = "standard"
	PoolPremium  PoolTier = "premium"
	PoolResort   PoolTier = "resort"

	SmartHomeNone     SmartHomeTier = "none"
	SmartHomeBasic    SmartHomeTier = "basic"
	SmartHomeAdvanced SmartHomeTier = "advanced"
	SmartHomeFull     SmartHomeTier = "full"

	FireplaceNone    FireplaceType = "none"
	FireplaceGas     FireplaceType = "gas"
	FireplaceWood    FireplaceType = "wood"
	FireplaceMasonry FireplaceType = "masonry"
)

// SmartHomeTiers lists smart-home tiers from lowest to highest.
var SmartHomeTiers = []SmartHomeTier{SmartHomeNone, SmartHomeBasic, SmartHomeAdvanced, SmartHomeFull}

// WholeHouseInput is the flat specification of a custom home. It holds only
// scalar fields, so assigning it produces an independent copy.
type WholeHouseInput struct {
	SquareFeet     float64             `json:"squareFeet" yaml:"square_feet"`
	Stories        int                 `json:"stories" yaml:"stories"`
	Bedrooms       int                 `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms      float64             `json:"bathrooms" yaml:"bathrooms"`
	FinishLevel    pricing.FinishLevel `json:"finishLevel,omitempty" yaml:"finish_level"`
	Style          Style               `json:"style,omitempty" yaml:"style"`
	Cladding       Cladding            `json:"cladding,omitempty" yaml:"cladding"`
	Roof           RoofType            `json:"roof,omitempty" yaml:"roof"`
	Windows        WindowGrade         `json:"windows,omitempty" yaml:"windows"`
	Flooring       FlooringType        `json:"flooring,omitempty" yaml:"flooring"`
	Countertop     Countertop          `json:"countertop,omitempty" yaml:"countertop"`
	Pool           PoolTier            `json:"pool,omitempty" yaml:"pool"`
	OutdoorKitchen bool                `json:"outdoorKitchen" yaml:"outdoor_kitchen"`
	SmartHome      SmartHomeTier       `json:"smartHome,omitempty" yaml:"smart_home"`
	Elevated       bool                `json:"elevated" yaml:"elevated"`
	Fireplace      FireplaceType       `json:"fireplace,omitempty" yaml:"fireplace"`
	Generator      bool                `json:"generator" yaml:"generator"`
	Seawall        bool                `json:"seawall" yaml:"seawall"`
	ScreenedPorch  bool                `json:"screenedPorch" yaml:"screened_porch"`
	DeckSqft       float64             `json:"deckSqft" yaml:"deck_sqft"`
	Location       string              `json:"location,omitempty" yaml:"location"`
}

// HasPool reports whether a pool is selected.
func (in WholeHouseInput) HasPool() bool { return in.Pool != "" && in.Pool != PoolNone }

// HasSmartHome reports whether any smart-home tier is selected.
func (in WholeHouseInput) HasSmartHome() bool {
	return in.SmartHome != "" && in.SmartHome != SmartHomeNone
}

// HasFireplace reports whether a fireplace is selected.
func (in WholeHouseInput) HasFireplace() bool {
	return in.Fireplace != "" && in.Fireplace != FireplaceNone
}

// Finish returns the finish level, defaulting to standard.
func (in WholeHouseInput) Finish() pricing.FinishLevel {
	if in.FinishLevel == "" {
		return pricing.FinishStandard
	}
	return in.FinishLevel
}

// Upper bounds on the numeric inputs. Larger values describe no real home
// and would overflow the cost arithmetic.
const (
	MaxSquareFeet = 100000
	MaxBathrooms  = 50
	MaxDeckSqft   = 50000
)

// Validate checks the structurally required fields. Square footage and
// stories are never defaulted.
func (in WholeHouseInput) Validate() error {
	var err error
	if !(in.SquareFeet > 0) || !(in.SquareFeet <= MaxSquareFeet) {
		err = multierr.Append(err, fmt.Errorf("squareFeet must be greater than 0 and at most %d, got %v", MaxSquareFeet, in.SquareFeet))
	}
	if in.Stories < 1 {
		err = multierr.Append(err, fmt.Errorf("stories must be at least 1, got %d", in.Stories))
	}
	if in.Bedrooms < 0 {
		err = multierr.Append(err, fmt.Errorf("bedrooms must not be negative, got %d", in.Bedrooms))
	}
	if !(in.Bathrooms >= 0) || !(in.Bathrooms <= MaxBathrooms) {
		err = multierr.Append(err, fmt.Errorf("bathrooms must be between 0 and %d, got %v", MaxBathrooms, in.Bathrooms))
	}
	if !(in.DeckSqft >= 0) || !(in.DeckSqft <= MaxDeckSqft) {
		err = multierr.Append(err, fmt.Errorf("deckSqft must be between 0 and %d, got %v", MaxDeckSqft, in.DeckSqft))
	}
	if in.FinishLevel != "" && !in.FinishLevel.Valid() {
		err = multierr.Append(err, fmt.Errorf("finishLevel %q is not one of builder, standard, premium, luxury", in.FinishLevel))
	}
	if err != nil {
		return &InvalidInputError{err: err}
	}
	return nil
}

// RoomSelection is the per-category finish choice for one room.
type RoomSelection struct {
	RoomID     string                                   `json:"roomId" yaml:"room_id"`
	Selections map[pricing.Category]pricing.FinishLevel `json:"categorySelections" yaml:"selections"`
}
