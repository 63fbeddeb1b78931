package schedule

import (
	"errors"
	"testing"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/pricing"
)

func TestEstimate_AllPhasesInOrder(t *testing.T) {
	inputs := []estimate.WholeHouseInput{
		{SquareFeet: 1200, Stories: 1},
		{SquareFeet: 3200, Stories: 2, Pool: estimate.PoolResort, Seawall: true, Elevated: true},
	}
	ids := PhaseIDs()
	for _, in := range inputs {
		res, err := Estimate(pricing.Default(), in)
		if err != nil {
			t.Fatalf("Estimate: %v", err)
		}
		if len(res.Phases) != len(ids) {
			t.Fatalf("got %d phases, want %d", len(res.Phases), len(ids))
		}
		sum := 0
		for i, p := range res.Phases {
			if p.ID != ids[i] {
				t.Fatalf("phase %d = %s, want %s", i, p.ID, ids[i])
			}
			if p.DurationWeeks < 0 {
				t.Fatalf("phase %s has negative duration", p.ID)
			}
			sum += p.DurationWeeks
		}
		if sum != res.TotalWeeks || res.TotalWeeks == 0 {
			t.Fatalf("total weeks %d, sum %d", res.TotalWeeks, sum)
		}
	}
}

func phaseWeeks(t *testing.T, res Result, id string) int {
	t.Helper()
	for _, p := range res.Phases {
		if p.ID == id {
			return p.DurationWeeks
		}
	}
	t.Fatalf("phase %s missing", id)
	return 0
}

func TestEstimate_FeaturePhasesAreZeroWhenAbsent(t *testing.T) {
	table := pricing.Default()
	without, err := Estimate(table, estimate.WholeHouseInput{SquareFeet: 2500, Stories: 1})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	with, err := Estimate(table, estimate.WholeHouseInput{SquareFeet: 2500, Stories: 1, Pool: estimate.PoolStandard, Seawall: true})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if phaseWeeks(t, without, PhasePool) != 0 || phaseWeeks(t, without, PhaseSeawall) != 0 {
		t.Fatal("pool and seawall phases should be zero without the features")
	}
	if phaseWeeks(t, with, PhasePool) == 0 || phaseWeeks(t, with, PhaseSeawall) == 0 {
		t.Fatal("pool and seawall phases should take time when selected")
	}
	if with.TotalWeeks <= without.TotalWeeks {
		t.Fatalf("features should lengthen the schedule: %d vs %d", with.TotalWeeks, without.TotalWeeks)
	}
}

func TestEstimate_FramingScalesWithSizeAndStories(t *testing.T) {
	table := pricing.Default()
	small, _ := Estimate(table, estimate.WholeHouseInput{SquareFeet: 1500, Stories: 1})
	large, _ := Estimate(table, estimate.WholeHouseInput{SquareFeet: 4500, Stories: 1})
	tall, _ := Estimate(table, estimate.WholeHouseInput{SquareFeet: 4500, Stories: 3})

	if phaseWeeks(t, large, PhaseFraming) <= phaseWeeks(t, small, PhaseFraming) {
		t.Fatal("framing should grow with square footage")
	}
	if phaseWeeks(t, tall, PhaseFraming) <= phaseWeeks(t, large, PhaseFraming) {
		t.Fatal("framing should grow with stories")
	}
}

func TestEstimate_TotalMonths(t *testing.T) {
	res, err := Estimate(pricing.Default(), estimate.WholeHouseInput{SquareFeet: 2000, Stories: 1})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	want := float64(int(float64(res.TotalWeeks)/WeeksPerMonth*10+0.5)) / 10
	if res.TotalMonths != want {
		t.Fatalf("months = %v, want %v", res.TotalMonths, want)
	}
}

func TestEstimate_InvalidInput(t *testing.T) {
	if _, err := Estimate(pricing.Default(), estimate.WholeHouseInput{SquareFeet: 2000}); !errors.Is(err, estimate.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
