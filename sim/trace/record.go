// Package trace provides decision-trace recording for scheduling analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Preemption reasons.
const (
	ReasonPriority = "priority"
	ReasonQuantum  = "quantum"
)

// Candidate captures one process considered at a selection point.
type Candidate struct {
	ProcessID     string `json:"process_id" yaml:"process_id"`
	Name          string `json:"name" yaml:"name"`
	Priority      int    `json:"priority" yaml:"priority"`
	ArrivalTime   int64  `json:"arrival_time" yaml:"arrival_time"`
	RemainingTime int64  `json:"remaining_time" yaml:"remaining_time"`
}

// SelectionRecord captures a single dispatch decision.
type SelectionRecord struct {
	Clock      int64       `json:"clock" yaml:"clock"`
	ProcessID  string      `json:"process_id" yaml:"process_id"`
	Name       string      `json:"name" yaml:"name"`
	Reason     string      `json:"reason" yaml:"reason"`
	Candidates []Candidate `json:"candidates" yaml:"candidates"` // every eligible process at the decision point, chosen one included
}

// PreemptionRecord captures a running process being returned to Ready.
type PreemptionRecord struct {
	Clock       int64  `json:"clock" yaml:"clock"`
	ProcessID   string `json:"process_id" yaml:"process_id"` // the process that lost the CPU
	Name        string `json:"name" yaml:"name"`
	PreemptedBy string `json:"preempted_by" yaml:"preempted_by"` // name of the process that takes over; empty for quantum expiry
	Reason      string `json:"reason" yaml:"reason"`             // ReasonPriority or ReasonQuantum
}
