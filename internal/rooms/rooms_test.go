package rooms

import (
	"testing"

	"github.com/Simplici0/homecost/internal/pricing"
)

func TestDefault_TemplatesArePriceable(t *testing.T) {
	table := pricing.Default()

	for _, tmpl := range Default().All() {
		if tmpl.DefaultAreaSharePercent <= 0 || tmpl.DefaultAreaSharePercent > 100 {
			t.Errorf("%s: share %v out of range", tmpl.ID, tmpl.DefaultAreaSharePercent)
		}
		for _, category := range tmpl.Categories {
			unit, ok := table.Unit(category)
			if !ok {
				t.Errorf("%s: category %s has no pricing", tmpl.ID, category)
				continue
			}
			if unit != pricing.UnitSquareFoot && tmpl.Quantities[category] <= 0 {
				t.Errorf("%s: %s is priced per %s but has no quantity", tmpl.ID, category, unit)
			}
		}
	}
}

func TestCatalog_LookupAndOrder(t *testing.T) {
	c := NewCatalog(
		Template{ID: "a", Name: "A"},
		Template{ID: "b", Name: "B"},
		Template{ID: "a", Name: "A2"},
	)

	all := c.All()
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if tmpl, ok := c.Lookup("a"); !ok || tmpl.Name != "A2" {
		t.Fatalf("Lookup(a) = %+v, %v", tmpl, ok)
	}
	if _, ok := c.Lookup("attic"); ok {
		t.Fatal("unknown room should not be found")
	}
}

func TestTemplate_Has(t *testing.T) {
	kitchen, ok := Default().Lookup("kitchen")
	if !ok {
		t.Fatal("kitchen template missing")
	}
	if !kitchen.Has(pricing.CategoryCabinetry) {
		t.Fatal("kitchen should include cabinetry")
	}
	if kitchen.Has(pricing.CategoryClosetSystems) {
		t.Fatal("kitchen should not include closet systems")
	}
}
