package sim

import "testing"

func TestConstantPriority_ReturnsFixedScore(t *testing.T) {
	policy := &ConstantPriority{Score: 5.0}
	job := &Job{ID: 1, ArrivalTime: 100}

	if got := policy.Compute(job, 1000); got != 5.0 {
		t.Errorf("ConstantPriority.Compute: got %f, want 5.0", got)
	}

	job2 := &Job{ID: 2, ArrivalTime: 500}
	if got := policy.Compute(job2, 9999); got != 5.0 {
		t.Errorf("ConstantPriority.Compute (different job): got %f, want 5.0", got)
	}
}

func TestConstantPriority_DefaultZero(t *testing.T) {
	policy := &ConstantPriority{}
	job := &Job{ID: 1, ArrivalTime: 0}
	if got := policy.Compute(job, 0); got != 0.0 {
		t.Errorf("ConstantPriority (zero): got %f, want 0.0", got)
	}
}

func TestSLOBasedPriority_OlderJobGetsHigherPriority(t *testing.T) {
	policy := &SLOBasedPriority{BaseScore: 0.0, AgeWeight: 1e-3}
	clock := Ticks(2000)

	older := &Job{ID: 1, ArrivalTime: 0}
	newer := &Job{ID: 2, ArrivalTime: 1000}

	if policy.Compute(older, clock) <= policy.Compute(newer, clock) {
		t.Error("SLOBasedPriority: older job should score higher than newer job")
	}
}

func TestSLOBasedPriority_MonotonicPriorityWithAge(t *testing.T) {
	policy := &SLOBasedPriority{BaseScore: 1.0, AgeWeight: 0.5}
	clock := Ticks(1000)

	arrivalTimes := []Ticks{900, 700, 500, 200, 0} // newest to oldest
	var prev float64
	for i, arrival := range arrivalTimes {
		job := &Job{ID: uint64(i), ArrivalTime: arrival}
		p := policy.Compute(job, clock)
		if i > 0 && p <= prev {
			t.Errorf("priority not monotonically increasing with age: arrival=%d priority=%f <= prev=%f", arrival, p, prev)
		}
		prev = p
	}

	a := &Job{ID: 10, ArrivalTime: 500}
	b := &Job{ID: 11, ArrivalTime: 500}
	if policy.Compute(a, clock) != policy.Compute(b, clock) {
		t.Error("same-age jobs should get identical priority")
	}
}

func TestInvertedSLO_OlderJobsGetLowerPriority(t *testing.T) {
	policy := NewPriorityPolicy("inverted-slo")

	old := &Job{ID: 1, ArrivalTime: 0}
	new_ := &Job{ID: 2, ArrivalTime: 900}
	clock := Ticks(1000)

	if policy.Compute(old, clock) >= policy.Compute(new_, clock) {
		t.Error("expected older job priority to be lower than newer job priority")
	}
}

func TestNewPriorityPolicy_ValidNames(t *testing.T) {
	job := &Job{ID: 1, ArrivalTime: 100}

	if got := NewPriorityPolicy("").Compute(job, 1000); got != 0.0 {
		t.Errorf("NewPriorityPolicy(\"\").Compute: got %f, want 0.0", got)
	}
	if got := NewPriorityPolicy("constant").Compute(job, 1000); got != 0.0 {
		t.Errorf("NewPriorityPolicy(\"constant\").Compute: got %f, want 0.0", got)
	}

	p3 := NewPriorityPolicy("slo-based")
	older := &Job{ID: 2, ArrivalTime: 0}
	newer := &Job{ID: 3, ArrivalTime: 500}
	clock := Ticks(1000)
	if p3.Compute(older, clock) <= p3.Compute(newer, clock) {
		t.Error("NewPriorityPolicy(\"slo-based\"): older job should score higher")
	}
}

func TestNewPriorityPolicy_UnknownName_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewPriorityPolicy(\"unknown\"): expected panic, got nil")
		}
	}()
	NewPriorityPolicy("unknown")
}

func TestPriorityPolicy_Compute_NoSideEffects(t *testing.T) {
	policies := []PriorityPolicy{
		&ConstantPriority{Score: 5.0},
		&SLOBasedPriority{BaseScore: 1.0, AgeWeight: 1e-3},
	}
	for _, p := range policies {
		job := &Job{ID: 7, ArrivalTime: 100, RunTime: 10, Weight: 100}
		p.Compute(job, 1000)
		if job.ID != 7 || job.ArrivalTime != 100 || job.RunTime != 10 || job.Weight != 100 {
			t.Error("Compute must not modify the job")
		}
	}
}
