package upsell

import (
	"testing"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/pricing"
)

func sampleInput() estimate.WholeHouseInput {
	return estimate.WholeHouseInput{
		SquareFeet:  2400,
		Stories:     1,
		Bedrooms:    3,
		Bathrooms:   2,
		FinishLevel: pricing.FinishStandard,
		Location:    "sarasota",
	}
}

func TestSuggest_DoesNotMutateInput(t *testing.T) {
	in := sampleInput()
	before := in

	Suggest(pricing.Default(), in, nil, 10)

	if in != before {
		t.Fatalf("input changed: %+v -> %+v", before, in)
	}
}

func TestSuggest_RelevanceOrderAndLimit(t *testing.T) {
	table := pricing.Default()
	in := sampleInput()
	original, err := estimate.EstimateHouse(table, in)
	if err != nil {
		t.Fatalf("EstimateHouse: %v", err)
	}

	got, warnings := Suggest(table, in, original, 0)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if len(got) != DefaultLimit {
		t.Fatalf("got %d suggestions, want %d", len(got), DefaultLimit)
	}
	want := []string{"finish_upgrade", "add_pool", "add_outdoor_kitchen"}
	for i, s := range got {
		if s.ID != want[i] {
			t.Fatalf("suggestion %d = %s, want %s", i, s.ID, want[i])
		}
		if !s.Delta.IsPositive() {
			t.Fatalf("%s: delta %s should be positive", s.ID, s.Delta)
		}
		if !s.Delta.Equal(s.NewTotal.Midpoint().Sub(original.Midpoint())) {
			t.Fatalf("%s: delta does not match the midpoint difference", s.ID)
		}
	}
	if got[0].Input.FinishLevel != pricing.FinishPremium {
		t.Fatalf("finish upgrade proposes %s", got[0].Input.FinishLevel)
	}
}

func TestSuggest_SkipsFeaturesAlreadyPresent(t *testing.T) {
	in := sampleInput()
	in.FinishLevel = pricing.FinishLuxury
	in.Pool = estimate.PoolResort
	in.OutdoorKitchen = true
	in.SmartHome = estimate.SmartHomeFull
	in.Generator = true
	in.ScreenedPorch = true
	in.Fireplace = estimate.FireplaceGas
	in.DeckSqft = 200

	if c := Candidates(pricing.Default(), in); len(c) != 0 {
		t.Fatalf("expected no candidates, got %d", len(c))
	}
	got, _ := Suggest(pricing.Default(), in, nil, 3)
	if len(got) != 0 {
		t.Fatalf("expected no suggestions, got %+v", got)
	}
}

func TestSuggest_SmartHomeOffersNextTier(t *testing.T) {
	in := sampleInput()
	in.SmartHome = estimate.SmartHomeBasic
	for _, c := range Candidates(pricing.Default(), in) {
		if c.ID == "smart_home_advanced" {
			return
		}
	}
	t.Fatal("expected an advanced smart home candidate")
}

func TestEvaluate_FailedCandidateIsOmitted(t *testing.T) {
	table := pricing.Default()
	in := sampleInput()
	candidates := []Candidate{
		{ID: "broken", Apply: func(in *estimate.WholeHouseInput) { in.Stories = 0 }},
		{ID: "add_generator", Apply: func(in *estimate.WholeHouseInput) { in.Generator = true }},
		{ID: "no_change", Apply: func(*estimate.WholeHouseInput) {}},
	}

	got, warnings := Evaluate(table, in, nil, candidates, 3)
	if len(warnings) != 1 || warnings[0].Code != estimate.WarningUpsellFailed || warnings[0].Subject != "broken" {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if len(got) != 1 || got[0].ID != "add_generator" {
		t.Fatalf("expected only the generator suggestion, got %+v", got)
	}
}
