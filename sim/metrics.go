// sim/metrics.go
package sim

import (
	"fmt"
	"sort"
)

// weightClass buckets a job's weight for slowdown aggregation. Weighted
// policies distinguish heavy from light tasks by their raw weight value,
// so this groups by weight value directly rather than a fixed taxonomy,
// since weight is a free 1..=10000 parameter.
type weightClass uint32

// Metrics aggregates per-job and per-CPU statistics for final reporting.
type Metrics struct {
	CompletedJobs int
	RejectedJobs  int

	// slowdownSum maps weight -> running sum of slowdowns observed for jobs
	// of that weight, and slowdownCount the number of such jobs, so an
	// average can be derived.
	slowdownSum   map[weightClass]float64
	slowdownCount map[weightClass]int

	responseTimeSum   float64
	responseTimeCount int
	responseTimes     []float64

	// perCPUIdleRun tracks the current contiguous run of CpuIdle events
	// for each CPU, and perCPUMaxIdleRun the longest run observed.
	perCPUIdleRun    map[CpuId]int
	perCPUMaxIdleRun map[CpuId]int
}

// NewMetrics builds an empty Metrics accumulator.
func NewMetrics() *Metrics {
	return &Metrics{
		slowdownSum:      make(map[weightClass]float64),
		slowdownCount:    make(map[weightClass]int),
		perCPUIdleRun:    make(map[CpuId]int),
		perCPUMaxIdleRun: make(map[CpuId]int),
	}
}

// RecordCompletion folds a finished job's slowdown into its weight class.
func (m *Metrics) RecordCompletion(job Job, slowdown float64) {
	m.CompletedJobs++
	wc := weightClass(job.Weight)
	m.slowdownSum[wc] += slowdown
	m.slowdownCount[wc]++
}

// RecordStart folds a job's response time (start - arrival) in once, the
// first time its task starts running.
func (m *Metrics) RecordStart(responseTime float64) {
	m.responseTimeSum += responseTime
	m.responseTimeCount++
	m.responseTimes = append(m.responseTimes, responseTime)
}

// RecordRejection counts a job that an admission policy turned away before
// it ever entered the kernel.
func (m *Metrics) RecordRejection() {
	m.RejectedJobs++
}

// ObserveEvent folds a driver event into the starvation tracker: a run of
// consecutive CpuIdle events for a CPU extends its current streak; any
// other event kind touching that CPU resets it.
func (m *Metrics) ObserveEvent(ev SchedCoreEvent) {
	switch ev.Kind {
	case EventCpuIdle:
		m.perCPUIdleRun[ev.CPU]++
		if m.perCPUIdleRun[ev.CPU] > m.perCPUMaxIdleRun[ev.CPU] {
			m.perCPUMaxIdleRun[ev.CPU] = m.perCPUIdleRun[ev.CPU]
		}
	case EventCpuCurrentChange:
		if ev.ToTask != nil {
			m.perCPUIdleRun[ev.CPU] = 0
		}
	}
}

// AverageSlowdownByWeight returns the mean slowdown per weight class
// observed, sorted by weight ascending.
func (m *Metrics) AverageSlowdownByWeight() []struct {
	Weight   uint32
	Slowdown float64
} {
	weights := make([]weightClass, 0, len(m.slowdownSum))
	for w := range m.slowdownSum {
		weights = append(weights, w)
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i] < weights[j] })

	out := make([]struct {
		Weight   uint32
		Slowdown float64
	}, 0, len(weights))
	for _, w := range weights {
		out = append(out, struct {
			Weight   uint32
			Slowdown float64
		}{Weight: uint32(w), Slowdown: m.slowdownSum[w] / float64(m.slowdownCount[w])})
	}
	return out
}

// AverageResponseTime returns the mean start_time - arrival_time across all
// jobs that have started.
func (m *Metrics) AverageResponseTime() float64 {
	if m.responseTimeCount == 0 {
		return 0
	}
	return m.responseTimeSum / float64(m.responseTimeCount)
}

// ResponseTimePercentile returns the p-th percentile of observed response
// times (start_time - arrival_time), e.g. p=95 for the tail-latency figure.
func (m *Metrics) ResponseTimePercentile(p float64) float64 {
	return CalculatePercentile(m.responseTimes, p)
}

// LongestStarvationPeriod returns the maximum contiguous run of CpuIdle
// events observed for any single CPU (§6 GLOSSARY "Starvation period").
func (m *Metrics) LongestStarvationPeriod() int {
	max := 0
	for _, run := range m.perCPUMaxIdleRun {
		if run > max {
			max = run
		}
	}
	return max
}

// Print renders the aggregated metrics as a plain text table.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Completed Jobs       : %d\n", m.CompletedJobs)
	fmt.Printf("Rejected Jobs        : %d\n", m.RejectedJobs)
	if m.CompletedJobs > 0 {
		fmt.Printf("Average Response Time: %.2f ticks\n", m.AverageResponseTime())
		fmt.Printf("P95 Response Time    : %.2f ticks\n", m.ResponseTimePercentile(95))
		fmt.Println("Average Slowdown by Weight Class:")
		for _, row := range m.AverageSlowdownByWeight() {
			fmt.Printf("  weight=%-6d : %.4f\n", row.Weight, row.Slowdown)
		}
	}
	fmt.Printf("Longest Starvation Period: %d ticks\n", m.LongestStarvationPeriod())
}
