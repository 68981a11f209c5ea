// Package policy holds admission control at the simulation-harness
// boundary — a gate applied to arriving jobs before they enter the kernel.
// It is kept out of package sim (duck-typed against sim.Job) so that
// admission strategies can depend on the kernel's job/tick types without
// the kernel depending back on admission policy.
package policy

import (
	"fmt"
	"math/rand"

	"github.com/schedsim/schedsim/sim"
)

// AdmissionPolicy decides whether a job should be admitted into the
// kernel. A rejected job is never created as a Task and is excluded from
// the per-job Metrics; it is only counted as a rejection, not simulated.
type AdmissionPolicy interface {
	Admit(job *sim.Job, clock sim.Ticks) (admitted bool, reason string)
}

// AlwaysAdmit admits every job unconditionally.
type AlwaysAdmit struct{}

func (a *AlwaysAdmit) Admit(_ *sim.Job, _ sim.Ticks) (bool, string) {
	return true, ""
}

// TokenBucket implements rate-limiting admission control: each job costs
// one token regardless of its RunTime. A long-running job is already
// throttled by timeslice expiry once admitted, so admission cost is kept
// flat rather than scaled by job size. Refill carries a small nonnegative
// jitter bonus drawn from the admission RNG subsystem, so that bursts of
// arrivals at the exact same clock don't refill in perfect lockstep; the
// bonus only ever adds tokens, so it never causes an admission a
// jitter-free bucket would have granted to be refused.
type TokenBucket struct {
	capacity      float64
	refillRate    float64 // tokens per tick
	currentTokens float64
	lastRefill    sim.Ticks
	initialized   bool
	rng           *rand.Rand
}

// jitterFraction bounds the refill bonus to at most this fraction of the
// tick's base refill amount.
const jitterFraction = 0.1

// NewTokenBucket creates a TokenBucket with the given capacity and refill
// rate, seeded from masterSeed via sim.SubsystemAdmission.
func NewTokenBucket(capacity, refillRate float64, masterSeed int64) *TokenBucket {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(masterSeed)).ForSubsystem(sim.SubsystemAdmission)
	return &TokenBucket{capacity: capacity, refillRate: refillRate, currentTokens: capacity, rng: rng}
}

// Admit checks whether a job can be admitted given current token availability.
func (tb *TokenBucket) Admit(_ *sim.Job, clock sim.Ticks) (bool, string) {
	if !tb.initialized {
		tb.lastRefill = clock
		tb.initialized = true
	}
	elapsed := int64(clock) - int64(tb.lastRefill)
	if elapsed > 0 {
		refill := float64(elapsed) * tb.refillRate
		refill += tb.rng.Float64() * jitterFraction * refill
		tb.currentTokens = min(tb.capacity, tb.currentTokens+refill)
		tb.lastRefill = clock
	}
	if tb.currentTokens >= 1.0 {
		tb.currentTokens -= 1.0
		return true, ""
	}
	return false, "insufficient tokens"
}

// NewAdmissionPolicy creates an admission policy by name.
// Valid names: "always-admit", "token-bucket".
func NewAdmissionPolicy(name string, capacity, refillRate float64, masterSeed int64) AdmissionPolicy {
	switch name {
	case "", "always-admit":
		return &AlwaysAdmit{}
	case "token-bucket":
		return NewTokenBucket(capacity, refillRate, masterSeed)
	default:
		panic(fmt.Sprintf("unknown admission policy %q; valid policies: [always-admit, token-bucket]", name))
	}
}
