package workload

import (
	"math/rand"
)

// ArrivalSampler generates inter-arrival times for the job stream.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks.
	// Always returns a positive value (>= 1).
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times,
// the standard memoryless arrival process for an open-loop workload.
type PoissonSampler struct {
	rate float64 // jobs per tick (λ)
}

// NewPoissonSampler creates a PoissonSampler for the given arrival rate.
// Rates below 1e-15 are floored to avoid division instability.
func NewPoissonSampler(rate float64) *PoissonSampler {
	if rate < 1e-15 {
		rate = 1e-15
	}
	return &PoissonSampler{rate: rate}
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	iat := int64(rng.ExpFloat64() / s.rate)
	if iat < 1 {
		return 1
	}
	return iat
}

// BernoulliRunTimeSampler splits arriving jobs into a short and a long
// run-time class via a single Bernoulli draw.
type BernoulliRunTimeSampler struct {
	pHit        float64
	short, long int64
}

// NewBernoulliRunTimeSampler creates a sampler that returns short with
// probability pHit and long otherwise.
func NewBernoulliRunTimeSampler(pHit float64, short, long int64) *BernoulliRunTimeSampler {
	return &BernoulliRunTimeSampler{pHit: pHit, short: short, long: long}
}

// Sample draws the run time for one job.
func (s *BernoulliRunTimeSampler) Sample(rng *rand.Rand) int64 {
	if rng.Float64() < s.pHit {
		return s.short
	}
	return s.long
}

// BernoulliWeightSampler splits arriving jobs into a light and a heavy
// weight class via a single Bernoulli draw keyed on p_weighted.
type BernoulliWeightSampler struct {
	pWeighted    float64
	light, heavy int64
}

// NewBernoulliWeightSampler creates a sampler that returns heavy with
// probability pWeighted and light otherwise.
func NewBernoulliWeightSampler(pWeighted float64, light, heavy int64) *BernoulliWeightSampler {
	return &BernoulliWeightSampler{pWeighted: pWeighted, light: light, heavy: heavy}
}

// Sample draws the weight for one job.
func (s *BernoulliWeightSampler) Sample(rng *rand.Rand) int64 {
	if rng.Float64() < s.pWeighted {
		return s.heavy
	}
	return s.light
}
