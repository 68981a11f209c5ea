package workload

import "github.com/schedsim/schedsim/sim"

// Generate produces a deterministic job arrival stream from spec, sorted by
// ArrivalTime then ID (I/O contract the Simulation Harness requires).
// Generation stops once the next sampled arrival exceeds spec.Horizon.
func Generate(spec Spec) []sim.Job {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)).ForSubsystem(sim.SubsystemWorkload)

	iat := NewPoissonSampler(spec.Rate)
	runTimes := NewBernoulliRunTimeSampler(spec.PHit, int64(RunTimeShort), int64(RunTimeLong))
	weights := NewBernoulliWeightSampler(spec.PWeighted, WeightLight, WeightHeavy)

	var jobs []sim.Job
	var clock sim.Ticks
	var id uint64
	for {
		clock += sim.Ticks(iat.SampleIAT(rng))
		if clock > spec.Horizon {
			break
		}
		jobs = append(jobs, sim.Job{
			ID:          id,
			ArrivalTime: clock,
			RunTime:     sim.Ticks(runTimes.Sample(rng)),
			Weight:      uint32(weights.Sample(rng)),
		})
		id++
	}
	return jobs
}
