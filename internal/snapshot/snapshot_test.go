package snapshot

import (
	"errors"
	"testing"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/pricing"
)

func TestEncodeDecode_CurrentVersion(t *testing.T) {
	in := estimate.WholeHouseInput{
		SquareFeet:  3100,
		Stories:     2,
		Bedrooms:    4,
		Bathrooms:   3.5,
		FinishLevel: pricing.FinishPremium,
		Pool:        estimate.PoolResort,
		Roof:        estimate.RoofMetal,
		DeckSqft:    220,
		Location:    "naples",
	}
	raw, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, version, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if version != CurrentVersion || got != in {
		t.Fatalf("round trip = v%d %+v", version, got)
	}
}

func TestDecode_MigratesV1(t *testing.T) {
	raw := []byte(`{"version":1,"data":{"sqft":2200,"stories":1,"bedrooms":3,"bathrooms":2,"finish":"premium","pool":true}}`)
	got, version, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if version != 1 {
		t.Fatalf("version = %d, want 1", version)
	}
	if got.SquareFeet != 2200 || got.FinishLevel != pricing.FinishPremium || got.Pool != estimate.PoolStandard {
		t.Fatalf("unexpected migration: %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("migrated input invalid: %v", err)
	}
}

func TestMigrateV1_DefaultsStoriesAndPool(t *testing.T) {
	got := MigrateV1(V1{Sqft: 1500})
	if got.Stories != 1 || got.Pool != estimate.PoolNone || got.HasPool() {
		t.Fatalf("unexpected migration: %+v", got)
	}
}

func TestDecode_UnknownVersion(t *testing.T) {
	_, _, err := Decode([]byte(`{"version":7,"data":{}}`))
	if !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatal("expected an error")
	}
}
