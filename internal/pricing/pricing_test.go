package pricing

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func testDocument() Document {
	return Document{
		Defaults: map[Category]string{CategoryRoofing: "asphalt"},
		Locations: map[string]float64{
			DefaultLocation: 1,
			"miami":         1.2,
		},
		Entries: []Entry{
			{Category: CategoryFlooring, Tier: "standard", Unit: UnitSquareFoot, CostLow: 5, CostHigh: 8},
			{Category: CategoryFlooring, Tier: "premium", Unit: UnitSquareFoot, CostLow: 8, CostHigh: 13},
			{Category: CategoryRoofing, Tier: "asphalt", Unit: UnitSquareFoot, CostLow: 4.5, CostHigh: 6.5},
		},
	}
}

func mustTable(t *testing.T, doc Document) *Table {
	t.Helper()
	table, err := NewTable(doc)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestLookup_HitAndMiss(t *testing.T) {
	table := mustTable(t, testDocument())

	e, err := table.Lookup(CategoryFlooring, "premium")
	if err != nil {
		t.Fatalf("Lookup premium: %v", err)
	}
	if e.CostLow != 8 || e.CostHigh != 13 {
		t.Fatalf("unexpected entry: %+v", e)
	}

	_, err = table.Lookup(CategoryFlooring, "luxury")
	if !errors.Is(err, ErrMissingConfigEntry) {
		t.Fatalf("expected ErrMissingConfigEntry, got %v", err)
	}
	var missing *MissingEntryError
	if !errors.As(err, &missing) || missing.Tier != "luxury" {
		t.Fatalf("expected *MissingEntryError for luxury, got %#v", err)
	}
}

func TestResolve_FallsBackToStandardThenZero(t *testing.T) {
	table := mustTable(t, testDocument())

	e, res := table.Resolve(CategoryFlooring, "luxury")
	if !res.Fallback || res.Missing || res.UsedTier != "standard" || e.CostLow != 5 {
		t.Fatalf("expected standard fallback, got %+v %+v", e, res)
	}

	e, res = table.Resolve(CategoryRoofing, "slate")
	if !res.Fallback || res.UsedTier != "asphalt" || e.CostHigh != 6.5 {
		t.Fatalf("expected category default fallback, got %+v %+v", e, res)
	}

	e, res = table.Resolve(CategoryTile, "premium")
	if !res.Missing || e.CostLow != 0 || e.CostHigh != 0 {
		t.Fatalf("expected zero entry for unknown category, got %+v %+v", e, res)
	}

	_, res = table.Resolve(CategoryFlooring, "premium")
	if res.Fallback || res.Missing {
		t.Fatalf("exact hit should not be a fallback: %+v", res)
	}
}

func TestNewTable_RejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"duplicate", Entry{Category: CategoryFlooring, Tier: "standard", Unit: UnitSquareFoot, CostLow: 1, CostHigh: 2}},
		{"low above high", Entry{Category: CategoryPaint, Tier: "standard", Unit: UnitSquareFoot, CostLow: 5, CostHigh: 2}},
		{"negative", Entry{Category: CategoryPaint, Tier: "standard", Unit: UnitSquareFoot, CostLow: -1, CostHigh: 2}},
		{"unknown unit", Entry{Category: CategoryPaint, Tier: "standard", Unit: "bushel", CostLow: 1, CostHigh: 2}},
		{"unit mismatch", Entry{Category: CategoryFlooring, Tier: "luxury", Unit: UnitEach, CostLow: 1, CostHigh: 2}},
		{"nan cost", Entry{Category: CategoryPaint, Tier: "standard", Unit: UnitSquareFoot, CostLow: math.NaN(), CostHigh: math.NaN()}},
		{"infinite high", Entry{Category: CategoryPaint, Tier: "standard", Unit: UnitSquareFoot, CostLow: 1, CostHigh: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			doc.Entries = append(doc.Entries, tt.entry)
			if _, err := NewTable(doc); err == nil {
				t.Fatalf("expected NewTable to reject %+v", tt.entry)
			}
		})
	}
}

func TestNewTable_RejectsNonFiniteCoefficients(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"nan location", func(d *Document) { d.Locations["naples"] = math.NaN() }},
		{"infinite surcharge", func(d *Document) { d.Surcharges.SalesTaxPercent = math.Inf(1) }},
		{"nan geometry", func(d *Document) { d.Geometry.PerimeterFactor = math.NaN() }},
		{"infinite phase rate", func(d *Document) { d.Schedule = map[string]PhaseRate{"framing": {BaseWeeks: math.Inf(1)}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			tt.mutate(&doc)
			if _, err := NewTable(doc); err == nil {
				t.Fatal("expected NewTable to reject a non-finite number")
			}
		})
	}
}

func TestNewTable_RejectsNaNCostFromYAML(t *testing.T) {
	doc, err := Parse([]byte(`
entries:
  - {category: framing, tier: standard, unit: sqft, low: .nan, high: .nan}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := NewTable(doc); err == nil {
		t.Fatal("expected NewTable to reject a NaN cost")
	}
}

func TestNewTable_DoesNotAliasDocument(t *testing.T) {
	doc := testDocument()
	table := mustTable(t, doc)

	doc.Entries[0].CostLow = 999
	doc.Locations["miami"] = 9

	e, _ := table.Lookup(CategoryFlooring, "standard")
	if e.CostLow != 5 {
		t.Fatalf("table observed caller mutation: %+v", e)
	}
	if f, _ := table.LocationFactor("miami"); f != 1.2 {
		t.Fatalf("location factor observed caller mutation: %v", f)
	}
}

func TestLocationFactor(t *testing.T) {
	table := mustTable(t, testDocument())

	if f, ok := table.LocationFactor(""); !ok || f != 1 {
		t.Fatalf("empty location = %v, %v", f, ok)
	}
	if f, ok := table.LocationFactor("miami"); !ok || f != 1.2 {
		t.Fatalf("miami = %v, %v", f, ok)
	}
	if f, ok := table.LocationFactor("atlantis"); ok || f != 1 {
		t.Fatalf("unknown location = %v, %v", f, ok)
	}
}

func TestDefault_IsMonotonicInFinishLevel(t *testing.T) {
	table := Default()

	categories := map[Category]bool{}
	for _, e := range table.Entries() {
		if e.Tier == string(FinishBuilder) {
			categories[e.Category] = true
		}
	}
	if len(categories) == 0 {
		t.Fatal("default table has no finish-tiered categories")
	}

	for category := range categories {
		var prev Entry
		for i, level := range FinishLevels {
			e, err := table.Lookup(category, string(level))
			if err != nil {
				t.Fatalf("%s: missing %s entry", category, level)
			}
			if i > 0 && (e.CostLow < prev.CostLow || e.CostHigh < prev.CostHigh) {
				t.Fatalf("%s: %s (%v-%v) is cheaper than previous tier (%v-%v)",
					category, level, e.CostLow, e.CostHigh, prev.CostLow, prev.CostHigh)
			}
			prev = e
		}
	}
}

func TestFinishLevel_Next(t *testing.T) {
	if next, ok := FinishBuilder.Next(); !ok || next != FinishStandard {
		t.Fatalf("builder.Next = %q, %v", next, ok)
	}
	if _, ok := FinishLuxury.Next(); ok {
		t.Fatal("luxury should have no next tier")
	}
	if _, ok := FinishLevel("gold").Next(); ok {
		t.Fatal("unknown tier should have no next tier")
	}
}

func TestLoadFile_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costs.yaml")
	content := []byte(`
surcharges:
  builder_fee_percent: 10
locations:
  default: 1
entries:
  - {category: paint, tier: standard, unit: sqft, low: 2, high: 3}
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write cost table: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if table.Surcharges().BuilderFeePercent != 10 {
		t.Fatalf("builder fee = %v, want 10", table.Surcharges().BuilderFeePercent)
	}
	if _, err := table.Lookup(CategoryPaint, "standard"); err != nil {
		t.Fatalf("Lookup paint: %v", err)
	}
}

type stubSource struct {
	doc Document
	err error
}

func (s stubSource) Document(context.Context, Document) (Document, error) {
	return s.doc, s.err
}

func TestProvider_RefreshSwapsOnlyOnSuccess(t *testing.T) {
	original := mustTable(t, testDocument())
	p := NewProvider(original)

	if _, err := p.Refresh(context.Background(), stubSource{err: errors.New("db down")}, Document{}); err == nil {
		t.Fatal("expected refresh error")
	}
	if p.Current() != original {
		t.Fatal("failed refresh replaced the table")
	}

	bad := testDocument()
	bad.Entries = append(bad.Entries, bad.Entries[0])
	if _, err := p.Refresh(context.Background(), stubSource{doc: bad}, Document{}); err == nil {
		t.Fatal("expected invalid document error")
	}
	if p.Current() != original {
		t.Fatal("invalid document replaced the table")
	}

	next := testDocument()
	next.Surcharges.PermitPercent = 3
	refreshed, err := p.Refresh(context.Background(), stubSource{doc: next}, Document{})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if p.Current() != refreshed || p.Current().Surcharges().PermitPercent != 3 {
		t.Fatal("successful refresh did not swap the table")
	}
}

func TestProvider_ConcurrentReadersSeeWholeTables(t *testing.T) {
	a := testDocument()
	a.Surcharges = Surcharges{BuilderFeePercent: 1, PermitPercent: 1}
	b := testDocument()
	b.Surcharges = Surcharges{BuilderFeePercent: 2, PermitPercent: 2}
	tableA, tableB := mustTable(t, a), mustTable(t, b)

	p := NewProvider(tableA)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s := p.Current().Surcharges()
				if s.BuilderFeePercent != s.PermitPercent {
					t.Errorf("observed mixed table: %+v", s)
					return
				}
			}
		}()
	}
	for i := 0; i < 500; i++ {
		if i%2 == 0 {
			_ = p.Replace(tableB)
		} else {
			_ = p.Replace(tableA)
		}
	}
	wg.Wait()
}
