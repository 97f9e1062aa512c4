package sim

// EventKind tags the event a Step records.
type EventKind string

const (
	EventStart          EventKind = "start"
	EventArrival        EventKind = "arrival"
	EventIdle           EventKind = "idle"
	EventDispatch       EventKind = "dispatch"
	EventTick           EventKind = "tick"
	EventPreempt        EventKind = "preempt"
	EventQuantumExpired EventKind = "quantum-expired"
	EventTerminate      EventKind = "terminate"
	EventComplete       EventKind = "complete"
)

// Step is one entry of a StepLog: the clock, what happened, and a value
// snapshot of every process at that instant.
type Step struct {
	Time        int64     `json:"time" yaml:"time"`
	Kind        EventKind `json:"kind" yaml:"kind"`
	ProcessID   string    `json:"process_id,omitempty" yaml:"process_id,omitempty"` // subject of the event, if exactly one
	Description string    `json:"description" yaml:"description"`
	Processes   []Process `json:"processes" yaml:"processes"` // in input order
}

// Lookup returns the snapshot of the process with the given ID.
func (s Step) Lookup(id string) (Process, bool) {
	for _, p := range s.Processes {
		if p.ID == id {
			return p, true
		}
	}
	return Process{}, false
}

// Clone returns a copy of s whose snapshot does not share memory with s.
func (s Step) Clone() Step {
	s.Processes = append([]Process(nil), s.Processes...)
	return s
}

// StepLog is the full replay record of one simulation run.
// It is built by a single strategy call and is read-only afterwards.
type StepLog struct {
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	Quantum   int       `json:"quantum,omitempty" yaml:"quantum,omitempty"` // effective quantum; RoundRobin only
	Steps     []Step    `json:"steps" yaml:"steps"`
}

// Len returns the number of steps.
func (l *StepLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Steps)
}

// At returns the step at index i. ok is false when i is out of range.
func (l *StepLog) At(i int) (step Step, ok bool) {
	if i < 0 || i >= l.Len() {
		return Step{}, false
	}
	return l.Steps[i], true
}

// Final returns the last step. ok is false for an empty log.
func (l *StepLog) Final() (Step, bool) {
	return l.At(l.Len() - 1)
}

// Clone returns a deep copy of l. A nil log clones to nil.
func (l *StepLog) Clone() *StepLog {
	if l == nil {
		return nil
	}
	out := &StepLog{Algorithm: l.Algorithm, Quantum: l.Quantum, Steps: make([]Step, len(l.Steps))}
	for i, st := range l.Steps {
		out.Steps[i] = st.Clone()
	}
	return out
}

func (l *StepLog) append(s Step) {
	l.Steps = append(l.Steps, s)
}
