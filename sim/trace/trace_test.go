package trace

import "testing"

func TestSimulationTrace_RecordAdmission_AppendsRecord(t *testing.T) {
	st := NewSimulationTrace(LevelDecisions)

	st.RecordAdmission(AdmissionRecord{JobID: 1, Clock: 1000, Admitted: true, Reason: "always-admit"})

	if len(st.Admissions) != 1 {
		t.Fatalf("expected 1 admission, got %d", len(st.Admissions))
	}
	if st.Admissions[0].JobID != 1 {
		t.Errorf("expected job ID 1, got %d", st.Admissions[0].JobID)
	}
	if !st.Admissions[0].Admitted {
		t.Error("expected admitted=true")
	}
}

func TestSimulationTrace_RecordDecision_AppendsRecord(t *testing.T) {
	st := NewSimulationTrace(LevelDecisions)

	st.RecordDecision(DecisionRecord{TaskID: 1, Clock: 2000, Kind: "dispatch", Detail: "dsq=0", Priority: 3.5})

	if len(st.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(st.Decisions))
	}
	if st.Decisions[0].Kind != "dispatch" {
		t.Errorf("expected kind dispatch, got %s", st.Decisions[0].Kind)
	}
}

func TestSimulationTrace_LevelNone_DropsRecords(t *testing.T) {
	st := NewSimulationTrace(LevelNone)

	st.RecordAdmission(AdmissionRecord{JobID: 1, Admitted: true})
	st.RecordDecision(DecisionRecord{TaskID: 1, Kind: "enqueue"})

	if len(st.Admissions) != 0 {
		t.Errorf("expected 0 admissions at LevelNone, got %d", len(st.Admissions))
	}
	if len(st.Decisions) != 0 {
		t.Errorf("expected 0 decisions at LevelNone, got %d", len(st.Decisions))
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(LevelDecisions)

	st.RecordAdmission(AdmissionRecord{JobID: 1, Clock: 100, Admitted: true, Reason: "ok"})
	st.RecordAdmission(AdmissionRecord{JobID: 2, Clock: 200, Admitted: false, Reason: "rejected"})
	st.RecordDecision(DecisionRecord{TaskID: 1, Clock: 150, Kind: "select_cpu"})

	if len(st.Admissions) != 2 {
		t.Fatalf("expected 2 admissions, got %d", len(st.Admissions))
	}
	if st.Admissions[0].JobID != 1 || st.Admissions[1].JobID != 2 {
		t.Error("admission order not preserved")
	}
	if len(st.Decisions) != 1 || st.Decisions[0].TaskID != 1 {
		t.Error("decision order not preserved")
	}
}

func TestIsValidLevel(t *testing.T) {
	cases := map[string]bool{
		"none":      true,
		"decisions": true,
		"":          true,
		"bogus":     false,
	}
	for level, want := range cases {
		if got := IsValidLevel(level); got != want {
			t.Errorf("IsValidLevel(%q) = %v, want %v", level, got, want)
		}
	}
}
