// Package rooms defines the static room templates used by the room-by-room estimator.
package rooms

import "github.com/Simplici0/homecost/internal/pricing"

// Template is a room type: its nominal share of conditioned area and the
// material categories that apply to it. Quantities gives the count for
// categories not priced per square foot.
type Template struct {
	ID                      string                       `json:"id"`
	Name                    string                       `json:"name"`
	DefaultAreaSharePercent float64                      `json:"defaultAreaSharePercent"`
	Categories              []pricing.Category           `json:"categories"`
	Quantities              map[pricing.Category]float64 `json:"quantities,omitempty"`
}

// Has reports whether category applies to the room.
func (t Template) Has(category pricing.Category) bool {
	for _, c := range t.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Catalog is a read-only set of templates.
type Catalog struct {
	order []string
	byID  map[string]Template
}

// NewCatalog indexes templates, keeping their order. Later duplicates win.
func NewCatalog(templates ...Template) *Catalog {
	c := &Catalog{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if _, seen := c.byID[t.ID]; !seen {
			c.order = append(c.order, t.ID)
		}
		c.byID[t.ID] = t
	}
	return c
}

// Lookup returns the template for id.
func (c *Catalog) Lookup(id string) (Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// All returns the templates in catalog order.
func (c *Catalog) All() []Template {
	out := make([]Template, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

var defaultCatalog = NewCatalog(
	Template{
		ID: "kitchen", Name: "Kitchen", DefaultAreaSharePercent: 12,
		Categories: []pricing.Category{
			pricing.CategoryFlooring, pricing.CategoryPaint, pricing.CategoryCabinetry,
			pricing.CategoryCountertops, pricing.CategoryTile, pricing.CategoryLighting,
			pricing.CategoryPlumbingFixtures, pricing.CategoryAppliances,
		},
		Quantities: map[pricing.Category]float64{
			pricing.CategoryCabinetry:        30,
			pricing.CategoryLighting:         8,
			pricing.CategoryPlumbingFixtures: 2,
			pricing.CategoryAppliances:       5,
		},
	},
	Template{
		ID: "living_room", Name: "Living Room", DefaultAreaSharePercent: 18,
		Categories: []pricing.Category{pricing.CategoryFlooring, pricing.CategoryPaint, pricing.CategoryTrim, pricing.CategoryLighting},
		Quantities: map[pricing.Category]float64{pricing.CategoryLighting: 6},
	},
	Template{
		ID: "dining_room", Name: "Dining Room", DefaultAreaSharePercent: 8,
		Categories: []pricing.Category{pricing.CategoryFlooring, pricing.CategoryPaint, pricing.CategoryTrim, pricing.CategoryLighting},
		Quantities: map[pricing.Category]float64{pricing.CategoryLighting: 2},
	},
	Template{
		ID: "primary_suite", Name: "Primary Suite", DefaultAreaSharePercent: 14,
		Categories: []pricing.Category{
			pricing.CategoryFlooring, pricing.CategoryPaint, pricing.CategoryTrim,
			pricing.CategoryLighting, pricing.CategoryClosetSystems,
		},
		Quantities: map[pricing.Category]float64{pricing.CategoryLighting: 4, pricing.CategoryClosetSystems: 24},
	},
	Template{
		ID: "primary_bath", Name: "Primary Bath", DefaultAreaSharePercent: 6,
		Categories: []pricing.Category{
			pricing.CategoryTile, pricing.CategoryPaint, pricing.CategoryCabinetry,
			pricing.CategoryCountertops, pricing.CategoryLighting, pricing.CategoryPlumbingFixtures,
		},
		Quantities: map[pricing.Category]float64{
			pricing.CategoryCabinetry:        8,
			pricing.CategoryLighting:         4,
			pricing.CategoryPlumbingFixtures: 5,
		},
	},
	Template{
		ID: "bedroom", Name: "Bedroom", DefaultAreaSharePercent: 9,
		Categories: []pricing.Category{
			pricing.CategoryFlooring, pricing.CategoryPaint, pricing.CategoryTrim,
			pricing.CategoryLighting, pricing.CategoryClosetSystems,
		},
		Quantities: map[pricing.Category]float64{pricing.CategoryLighting: 2, pricing.CategoryClosetSystems: 8},
	},
	Template{
		ID: "bathroom", Name: "Bathroom", DefaultAreaSharePercent: 4,
		Categories: []pricing.Category{
			pricing.CategoryTile, pricing.CategoryPaint, pricing.CategoryCabinetry,
			pricing.CategoryCountertops, pricing.CategoryLighting, pricing.CategoryPlumbingFixtures,
		},
		Quantities: map[pricing.Category]float64{
			pricing.CategoryCabinetry:        4,
			pricing.CategoryLighting:         2,
			pricing.CategoryPlumbingFixtures: 3,
		},
	},
	Template{
		ID: "laundry", Name: "Laundry", DefaultAreaSharePercent: 3,
		Categories: []pricing.Category{
			pricing.CategoryTile, pricing.CategoryPaint, pricing.CategoryCabinetry,
			pricing.CategoryPlumbingFixtures, pricing.CategoryAppliances,
		},
		Quantities: map[pricing.Category]float64{
			pricing.CategoryCabinetry:        6,
			pricing.CategoryPlumbingFixtures: 1,
			pricing.CategoryAppliances:       2,
		},
	},
	Template{
		ID: "office", Name: "Office", DefaultAreaSharePercent: 5,
		Categories: []pricing.Category{pricing.CategoryFlooring, pricing.CategoryPaint, pricing.CategoryTrim, pricing.CategoryLighting},
		Quantities: map[pricing.Category]float64{pricing.CategoryLighting: 2},
	},
	Template{
		ID: "garage", Name: "Garage", DefaultAreaSharePercent: 15,
		Categories: []pricing.Category{pricing.CategoryPaint, pricing.CategoryLighting, pricing.CategoryCabinetry},
		Quantities: map[pricing.Category]float64{pricing.CategoryLighting: 3, pricing.CategoryCabinetry: 10},
	},
)

// Default returns the built-in catalog.
func Default() *Catalog { return defaultCatalog }
