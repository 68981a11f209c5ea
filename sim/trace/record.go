// Package trace provides decision-trace recording for scheduler-policy
// analysis. This package has no dependency on sim — it stores plain data
// so that sim can depend on trace without a cycle.
package trace

// AdmissionRecord captures a single admission-policy decision for an
// arriving job.
type AdmissionRecord struct {
	JobID    uint64
	Clock    int64
	Admitted bool
	Reason   string
}

// DecisionRecord captures a single scheduling decision made by the kernel
// or a policy hook — a dispatch, an enqueue, or a CPU selection — together
// with the priority score PriorityPolicy assigned at that moment (for
// post-hoc comparison against the dispatch order actually chosen).
type DecisionRecord struct {
	TaskID   uint64
	Clock    int64
	Kind     string // "select_cpu", "enqueue", "dispatch"
	Detail   string // human-readable summary, e.g. "dsq=2 flags=ENQ_HEAD"
	Priority float64
}

// SimulationTrace collects decision records during a kernel simulation.
type SimulationTrace struct {
	Level      Level
	Admissions []AdmissionRecord
	Decisions  []DecisionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level Level) *SimulationTrace {
	return &SimulationTrace{
		Level:      level,
		Admissions: make([]AdmissionRecord, 0),
		Decisions:  make([]DecisionRecord, 0),
	}
}

// RecordAdmission appends an admission decision record. A no-op when the
// trace level is LevelNone.
func (st *SimulationTrace) RecordAdmission(record AdmissionRecord) {
	if st.Level == LevelNone {
		return
	}
	st.Admissions = append(st.Admissions, record)
}

// RecordDecision appends a scheduling decision record. A no-op when the
// trace level is LevelNone.
func (st *SimulationTrace) RecordDecision(record DecisionRecord) {
	if st.Level == LevelNone {
		return
	}
	st.Decisions = append(st.Decisions, record)
}
