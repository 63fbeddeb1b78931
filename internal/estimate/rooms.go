package estimate

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/pricing"
	"github.com/Simplici0/homecost/internal/rooms"
)

var roomCategoryDivision = map[pricing.Category]Division{
	pricing.CategoryFlooring:         DivisionInteriorFinishes,
	pricing.CategoryPaint:            DivisionInteriorFinishes,
	pricing.CategoryTrim:             DivisionInteriorFinishes,
	pricing.CategoryCabinetry:        DivisionInteriorFinishes,
	pricing.CategoryCountertops:      DivisionInteriorFinishes,
	pricing.CategoryTile:             DivisionInteriorFinishes,
	pricing.CategoryClosetSystems:    DivisionInteriorFinishes,
	pricing.CategoryLighting:         DivisionMechanicalElectrical,
	pricing.CategoryPlumbingFixtures: DivisionMechanicalElectrical,
	pricing.CategoryAppliances:       DivisionSpecialties,
}

func divisionFor(category pricing.Category) Division {
	if d, ok := roomCategoryDivision[category]; ok {
		return d
	}
	return DivisionInteriorFinishes
}

// AllocatedArea is a room's share of the house, rounded to whole square feet.
func AllocatedArea(totalSqft float64, t rooms.Template) float64 {
	return math.Round(totalSqft * t.DefaultAreaSharePercent / 100)
}

// EstimateRooms prices per-room finish selections. Area-priced categories use
// the room's allocated area; other units use the template quantity. Unknown
// rooms and categories outside a room's template are skipped with a warning.
func EstimateRooms(table *pricing.Table, totalSqft float64, selections []RoomSelection, catalog *rooms.Catalog) (*Result, error) {
	if !(totalSqft > 0) || !(totalSqft <= MaxSquareFeet) {
		return nil, NewInvalidInputError(fmt.Errorf("totalSqft must be greater than 0 and at most %d, got %v", MaxSquareFeet, totalSqft))
	}

	b := newBuilder(table, "")
	var breakdowns []RoomBreakdown
	seen := make(map[string]int)

	for _, sel := range selections {
		tmpl, ok := catalog.Lookup(sel.RoomID)
		if !ok {
			b.note(WarningRoomWithoutTemplate, sel.RoomID, fmt.Sprintf("%v: %q skipped", ErrRoomWithoutTemplate, sel.RoomID))
			continue
		}
		seen[sel.RoomID]++
		key := fmt.Sprintf("%s_%d", sel.RoomID, seen[sel.RoomID])
		area := AllocatedArea(totalSqft, tmpl)

		var stray []string
		for category := range sel.Selections {
			if !tmpl.Has(category) {
				stray = append(stray, string(category))
			}
		}
		sort.Strings(stray)
		for _, category := range stray {
			b.note(WarningCategoryNotInRoom, key+"/"+category,
				fmt.Sprintf("%s does not apply to %s, ignored", category, tmpl.Name))
		}

		first := len(b.items)
		for _, category := range tmpl.Categories {
			level, selected := sel.Selections[category]
			if !selected {
				continue
			}
			quantity := area
			if unit, ok := table.Unit(category); ok && unit != pricing.UnitSquareFoot {
				quantity = tmpl.Quantities[category]
				if quantity <= 0 {
					b.warn(WarningMissingQuantity, key+"/"+string(category),
						fmt.Sprintf("%s is priced per %s but %s has no quantity, priced at zero", category, unit, tmpl.Name))
				}
			}
			b.add(line{
				id:       key + "/" + string(category),
				name:     tmpl.Name + " " + categoryLabel(category),
				division: divisionFor(category),
				roomKey:  key,
				category: category,
				tier:     string(level),
				quantity: quantity,
			})
		}

		rb := RoomBreakdown{Key: key, RoomID: tmpl.ID, Name: tmpl.Name, SquareFeet: decimal.NewFromFloat(area)}
		for _, item := range b.items[first:] {
			rb.TotalLow = rb.TotalLow.Add(item.TotalLow)
			rb.TotalHigh = rb.TotalHigh.Add(item.TotalHigh)
		}
		breakdowns = append(breakdowns, rb)
	}

	r := b.result(ModeRooms)
	r.RoomBreakdowns = breakdowns
	if r.RoomBreakdowns == nil {
		r.RoomBreakdowns = []RoomBreakdown{}
	}
	return r, nil
}

var categoryLabels = map[pricing.Category]string{
	pricing.CategoryFlooring:         "flooring",
	pricing.CategoryPaint:            "paint",
	pricing.CategoryTrim:             "trim",
	pricing.CategoryLighting:         "lighting",
	pricing.CategoryCabinetry:        "cabinetry",
	pricing.CategoryCountertops:      "countertops",
	pricing.CategoryTile:             "tile",
	pricing.CategoryPlumbingFixtures: "plumbing fixtures",
	pricing.CategoryAppliances:       "appliances",
	pricing.CategoryClosetSystems:    "closet systems",
}

func categoryLabel(c pricing.Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
