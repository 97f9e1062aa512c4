package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every selection and preemption.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during one simulation run.
// A nil *SimulationTrace is valid and records nothing.
type SimulationTrace struct {
	Config      TraceConfig
	Selections  []SelectionRecord
	Preemptions []PreemptionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Selections:  make([]SelectionRecord, 0),
		Preemptions: make([]PreemptionRecord, 0),
	}
}

// Enabled reports whether records will be kept.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordSelection appends a selection record.
func (st *SimulationTrace) RecordSelection(record SelectionRecord) {
	if !st.Enabled() {
		return
	}
	st.Selections = append(st.Selections, record)
}

// RecordPreemption appends a preemption record.
func (st *SimulationTrace) RecordPreemption(record PreemptionRecord) {
	if !st.Enabled() {
		return
	}
	st.Preemptions = append(st.Preemptions, record)
}
