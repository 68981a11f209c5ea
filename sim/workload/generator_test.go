package workload

import "testing"

func TestGenerate_SortedByArrivalThenID(t *testing.T) {
	jobs := Generate(Spec{Seed: 1, Horizon: 1000, Rate: 0.05, PWeighted: 0.2, PHit: 0.7})
	if len(jobs) == 0 {
		t.Fatal("expected at least one generated job")
	}
	for i := 1; i < len(jobs); i++ {
		if jobs[i].ArrivalTime < jobs[i-1].ArrivalTime {
			t.Fatalf("job %d arrives before job %d: %d < %d", i, i-1, jobs[i].ArrivalTime, jobs[i-1].ArrivalTime)
		}
		if jobs[i].ArrivalTime == jobs[i-1].ArrivalTime && jobs[i].ID < jobs[i-1].ID {
			t.Fatalf("tie at %d not broken by ID ascending", jobs[i].ArrivalTime)
		}
	}
}

func TestGenerate_RespectsHorizon(t *testing.T) {
	jobs := Generate(Spec{Seed: 2, Horizon: 500, Rate: 0.05, PWeighted: 0.2, PHit: 0.7})
	for _, j := range jobs {
		if j.ArrivalTime > 500 {
			t.Fatalf("job %d arrives at %d, exceeds horizon 500", j.ID, j.ArrivalTime)
		}
	}
}

func TestGenerate_DeterministicForSameSeed(t *testing.T) {
	a := Generate(Spec{Seed: 42, Horizon: 2000, Rate: 0.02, PWeighted: 0.3, PHit: 0.6})
	b := Generate(Spec{Seed: 42, Horizon: 2000, Rate: 0.02, PWeighted: 0.3, PHit: 0.6})
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("job %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	a := Generate(Spec{Seed: 1, Horizon: 2000, Rate: 0.05, PWeighted: 0.3, PHit: 0.6})
	b := Generate(Spec{Seed: 2, Horizon: 2000, Rate: 0.05, PWeighted: 0.3, PHit: 0.6})
	if len(a) == len(b) {
		same := true
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
		if same {
			t.Fatal("expected different seeds to produce different job streams")
		}
	}
}

func TestGenerate_ZeroHorizonProducesNoJobs(t *testing.T) {
	jobs := Generate(Spec{Seed: 1, Horizon: 0, Rate: 0.5, PWeighted: 0.5, PHit: 0.5})
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs within a zero horizon, got %d", len(jobs))
	}
}
