package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN no trace at all
	// WHEN summarized
	summary := Summarize(nil)

	// THEN all counts are zero
	if summary.TotalSelections != 0 || summary.PriorityPreemptions != 0 || summary.QuantumExpirations != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if len(summary.SelectionDistribution) != 0 {
		t.Error("expected empty selection distribution")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with selections and both kinds of preemption
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordSelection(SelectionRecord{Clock: 0, Name: "P1"})
	st.RecordSelection(SelectionRecord{Clock: 1, Name: "P2"})
	st.RecordSelection(SelectionRecord{Clock: 3, Name: "P1"})
	st.RecordPreemption(PreemptionRecord{Clock: 1, Name: "P1", PreemptedBy: "P2", Reason: ReasonPriority})
	st.RecordPreemption(PreemptionRecord{Clock: 5, Name: "P1", Reason: ReasonQuantum})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalSelections != 3 {
		t.Errorf("expected 3 selections, got %d", summary.TotalSelections)
	}
	if summary.PriorityPreemptions != 1 {
		t.Errorf("expected 1 priority preemption, got %d", summary.PriorityPreemptions)
	}
	if summary.QuantumExpirations != 1 {
		t.Errorf("expected 1 quantum expiration, got %d", summary.QuantumExpirations)
	}
	if summary.UniqueProcesses != 2 {
		t.Errorf("expected 2 unique processes, got %d", summary.UniqueProcesses)
	}
	if summary.SelectionDistribution["P1"] != 2 {
		t.Errorf("expected P1 dispatched twice, got %d", summary.SelectionDistribution["P1"])
	}
	if summary.PreemptedDistribution["P1"] != 2 {
		t.Errorf("expected P1 preempted twice, got %d", summary.PreemptedDistribution["P1"])
	}
}
