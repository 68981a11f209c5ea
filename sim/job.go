// sim/job.go
package sim

// Job is an external job-input record (§6): a unit of work with an arrival
// time, a service demand (RunTime) and a scheduling weight. Workload
// generators (sim/workload) and trace replay produce these; the Harness
// consumes them.
type Job struct {
	ID          uint64
	ArrivalTime Ticks
	RunTime     Ticks // > 0
	Weight      uint32 // 1..=10000
}

// jobRecord tracks the metrics the harness accumulates for one Job as the
// simulation progresses: when its task started running, and when it
// completed.
type jobRecord struct {
	job Job

	started   bool
	startTime Ticks

	completed      bool
	completionTime Ticks
}

// Slowdown computes (completion_time - arrival_time) / run_time, the
// normalized turnaround time (§6 GLOSSARY). Only valid once Completed.
func (r *jobRecord) slowdown() float64 {
	turnaround := float64(r.completionTime - r.job.ArrivalTime)
	return turnaround / float64(r.job.RunTime)
}

// ResponseTime computes start_time - arrival_time. Only valid once Started.
func (r *jobRecord) responseTime() float64 {
	return float64(r.startTime - r.job.ArrivalTime)
}
