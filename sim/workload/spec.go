// Package workload generates synthetic job arrival streams for the
// simulation harness: a Poisson arrival process with independent
// Bernoulli splits for run time and weight class.
package workload

import "github.com/schedsim/schedsim/sim"

// Spec parameterizes the synthetic workload generator.
type Spec struct {
	// Seed is the master simulation seed; the generator draws from
	// sim.SubsystemWorkload, which uses this seed directly.
	Seed int64

	// Horizon is the last tick at which a job may arrive. Generation stops
	// once a sampled arrival time exceeds Horizon.
	Horizon sim.Ticks

	// Rate is the Poisson arrival rate λ, in jobs per tick.
	Rate float64

	// PWeighted is the probability that an arriving job is drawn from the
	// heavy weight class (WeightHeavy) rather than the light one (WeightLight).
	PWeighted float64

	// PHit is the probability that an arriving job is drawn from the short
	// run-time class (RunTimeShort) rather than the long one (RunTimeLong).
	PHit float64
}

// Job size/weight classes used by the generator. These are illustrative
// defaults; a harness may construct jobs directly with other weights/run
// times and bypass the generator entirely.
const (
	WeightLight = 100
	WeightHeavy = 10000

	RunTimeShort sim.Ticks = 5
	RunTimeLong  sim.Ticks = 50
)
