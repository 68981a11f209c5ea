// sim/harness.go
package sim

import (
	"sort"

	"github.com/schedsim/schedsim/sim/trace"
)

// AdmissionGate decides whether an arriving job enters the kernel. Defined
// here (rather than imported from sim/policy) to avoid an import cycle:
// sim/policy depends on sim, so sim cannot depend back on sim/policy.
// Any sim/policy.AdmissionPolicy implementation satisfies this interface
// structurally.
type AdmissionGate interface {
	Admit(job *Job, clock Ticks) (admitted bool, reason string)
}

// Harness drives a Driver through a fixed workload: it injects job arrivals
// in arrival order, ticks the driver, and bridges the resulting event
// stream into per-job Metrics.
type Harness struct {
	driver    *Driver
	admission AdmissionGate
	trace     *trace.SimulationTrace
	priority  PriorityPolicy
}

// NewHarness constructs a Harness around driver. admission and tr may both
// be nil: a nil admission gate admits every job; a nil trace disables
// decision recording. priority may also be nil, in which case no priority
// score is attached to decision records.
func NewHarness(driver *Driver, admission AdmissionGate, tr *trace.SimulationTrace) *Harness {
	return &Harness{driver: driver, admission: admission, trace: tr}
}

// WithPriority attaches a PriorityPolicy used to score decision records;
// it returns h for chaining.
func (h *Harness) WithPriority(p PriorityPolicy) *Harness {
	h.priority = p
	return h
}

// Run injects jobs (which need not be pre-sorted; Run sorts by ArrivalTime
// then ID before replay) and ticks the driver until every job has been
// injected and every admitted job has completed. Jobs still waiting to
// arrive once the clock has passed horizon are dropped without being
// simulated or counted. It returns the accumulated Metrics.
func (h *Harness) Run(jobs []Job, horizon Ticks) *Metrics {
	metrics := NewMetrics()

	sorted := make([]Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ArrivalTime != sorted[j].ArrivalTime {
			return sorted[i].ArrivalTime < sorted[j].ArrivalTime
		}
		return sorted[i].ID < sorted[j].ID
	})

	records := make(map[TaskId]*jobRecord)
	idx := 0
	outstanding := 0

	for {
		now := h.driver.Now()

		for idx < len(sorted) && sorted[idx].ArrivalTime <= now {
			job := sorted[idx]
			idx++

			admitted, reason := true, ""
			if h.admission != nil {
				admitted, reason = h.admission.Admit(&job, now)
			}
			if h.trace != nil {
				h.trace.RecordAdmission(trace.AdmissionRecord{
					JobID: job.ID, Clock: int64(now), Admitted: admitted, Reason: reason,
				})
			}
			if !admitted {
				metrics.RecordRejection()
				continue
			}

			task := h.driver.CreateTask(job.RunTime, job.Weight)
			records[task] = &jobRecord{job: job}
			outstanding++
			wakeupCPU := CpuId(job.ID % uint64(h.driver.Ctx.NumCPUs()))
			h.driver.WakeTask(task, wakeupCPU)
		}

		if now > horizon && idx < len(sorted) {
			// Remaining jobs arrive past the horizon: drop them rather than
			// spin forever waiting for a clock value that will never come.
			idx = len(sorted)
		}
		if idx >= len(sorted) && outstanding == 0 {
			break
		}

		events := h.driver.Tick()
		for _, ev := range events {
			metrics.ObserveEvent(ev)
			if ev.Kind != EventTaskStateChange {
				continue
			}
			rec, ok := records[ev.Task]
			if !ok {
				continue
			}
			if ev.From == Runnable && ev.To == Running && !rec.started {
				rec.started = true
				rec.startTime = now
				metrics.RecordStart(rec.responseTime())
				if h.trace != nil && h.priority != nil {
					h.trace.RecordDecision(trace.DecisionRecord{
						TaskID:   uint64(ev.Task),
						Clock:    int64(now),
						Kind:     "dispatch",
						Detail:   "task started running",
						Priority: h.priority.Compute(&rec.job, now),
					})
				}
			}
			if ev.To == Completed {
				rec.completed = true
				// The driver emits this event using its pre-AdvanceTime
				// clock value; completion is recorded against the tick
				// that follows, once the clock has actually advanced.
				rec.completionTime = now + 1
				metrics.RecordCompletion(rec.job, rec.slowdown())
				outstanding--
			}
		}
	}

	return metrics
}
