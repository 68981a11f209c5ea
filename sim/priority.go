// sim/priority.go
package sim

import "fmt"

// PriorityPolicy computes an observability priority score for a job. It
// does not influence dispatch order (that's the SchedPolicy's job via
// DSQ ordering) — it is attached to trace records as a scoring signal for
// downstream analysis. Implementations MUST NOT modify the job.
type PriorityPolicy interface {
	Compute(job *Job, clock Ticks) float64
}

// ConstantPriority assigns a fixed priority score to all jobs.
type ConstantPriority struct {
	Score float64
}

func (c *ConstantPriority) Compute(_ *Job, _ Ticks) float64 {
	return c.Score
}

// SLOBasedPriority computes priority based on job age (time waiting since
// arrival). Older jobs receive higher priority scores.
// Formula: BaseScore + AgeWeight * (clock - job.ArrivalTime)
type SLOBasedPriority struct {
	BaseScore float64
	AgeWeight float64
}

func (s *SLOBasedPriority) Compute(job *Job, clock Ticks) float64 {
	age := float64(clock) - float64(job.ArrivalTime)
	return s.BaseScore + s.AgeWeight*age
}

// InvertedSLO computes priority inversely to job age (a pathological
// template useful for testing starvation detection): newer jobs score
// higher, the opposite of SLOBasedPriority.
type InvertedSLO struct {
	BaseScore float64
	AgeWeight float64
}

func (s *InvertedSLO) Compute(job *Job, clock Ticks) float64 {
	age := float64(clock) - float64(job.ArrivalTime)
	return s.BaseScore - s.AgeWeight*age
}

// NewPriorityPolicy creates a PriorityPolicy by name. Empty string defaults
// to ConstantPriority (for CLI flag default compatibility). Panics on an
// unrecognized name.
func NewPriorityPolicy(name string) PriorityPolicy {
	switch name {
	case "", "constant":
		return &ConstantPriority{Score: 0.0}
	case "slo-based":
		return &SLOBasedPriority{BaseScore: 0.0, AgeWeight: 1e-3}
	case "inverted-slo":
		return &InvertedSLO{BaseScore: 0.0, AgeWeight: 1e-3}
	default:
		panic(fmt.Sprintf("unknown priority policy %q; valid policies: [constant, slo-based, inverted-slo]", name))
	}
}
