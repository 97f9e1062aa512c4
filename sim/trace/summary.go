package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSelections       int            `json:"total_selections" yaml:"total_selections"`
	PriorityPreemptions   int            `json:"priority_preemptions" yaml:"priority_preemptions"`
	QuantumExpirations    int            `json:"quantum_expirations" yaml:"quantum_expirations"`
	UniqueProcesses       int            `json:"unique_processes" yaml:"unique_processes"`
	SelectionDistribution map[string]int `json:"selection_distribution" yaml:"selection_distribution"` // process name → number of dispatches
	PreemptedDistribution map[string]int `json:"preempted_distribution" yaml:"preempted_distribution"` // process name → number of times it lost the CPU
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		SelectionDistribution: make(map[string]int),
		PreemptedDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalSelections = len(st.Selections)
	for _, s := range st.Selections {
		summary.SelectionDistribution[s.Name]++
	}
	for _, p := range st.Preemptions {
		summary.PreemptedDistribution[p.Name]++
		switch p.Reason {
		case ReasonPriority:
			summary.PriorityPreemptions++
		case ReasonQuantum:
			summary.QuantumExpirations++
		}
	}

	summary.UniqueProcesses = len(summary.SelectionDistribution)

	return summary
}
