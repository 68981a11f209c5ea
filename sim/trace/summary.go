package trace

// Summary aggregates statistics from a SimulationTrace, independent of the
// job-level metrics sim.Metrics computes — this is a decision-audit summary,
// not an output-metrics summary.
type Summary struct {
	TotalAdmissionDecisions int
	AdmittedCount           int
	RejectedCount           int

	TotalSchedulingDecisions int
	DecisionCounts           map[string]int // decision kind -> count
	MeanPriority             float64
	MaxPriority              float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *Summary {
	summary := &Summary{
		DecisionCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAdmissionDecisions = len(st.Admissions)
	for _, a := range st.Admissions {
		if a.Admitted {
			summary.AdmittedCount++
		} else {
			summary.RejectedCount++
		}
	}

	summary.TotalSchedulingDecisions = len(st.Decisions)
	if len(st.Decisions) > 0 {
		totalPriority := 0.0
		for i, d := range st.Decisions {
			summary.DecisionCounts[d.Kind]++
			totalPriority += d.Priority
			if i == 0 || d.Priority > summary.MaxPriority {
				summary.MaxPriority = d.Priority
			}
		}
		summary.MeanPriority = totalPriority / float64(len(st.Decisions))
	}

	return summary
}
