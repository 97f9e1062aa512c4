package sim

// TimeSlice is a maximal interval during which the CPU ran one process
// without interruption. ProcessID is empty for idle intervals.
type TimeSlice struct {
	ProcessID string `json:"process_id,omitempty" yaml:"process_id,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Start     int64  `json:"start" yaml:"start"`
	Stop      int64  `json:"stop" yaml:"stop"`
}

// IdleSliceName labels idle intervals in a Gantt schedule.
const IdleSliceName = "idle"

// GanttSlices folds the tick and idle steps of log into a Gantt schedule.
// Consecutive ticks of the same process merge into one slice; a dispatch
// always opens a new one, so a process that is re-dispatched immediately
// after a quantum expiry shows as two adjacent slices.
func GanttSlices(log *StepLog) []TimeSlice {
	var (
		slices []TimeSlice
		clock  int64
		open   bool
	)
	extend := func(id, name string, stop int64) {
		if n := len(slices); open && n > 0 && slices[n-1].ProcessID == id && slices[n-1].Stop == clock {
			slices[n-1].Stop = stop
		} else {
			slices = append(slices, TimeSlice{ProcessID: id, Name: name, Start: clock, Stop: stop})
		}
		open = true
	}
	for i := 0; i < log.Len(); i++ {
		s := log.Steps[i]
		switch s.Kind {
		case EventDispatch, EventPreempt, EventQuantumExpired, EventTerminate:
			open = false
		case EventTick:
			p, _ := s.Lookup(s.ProcessID)
			extend(s.ProcessID, p.Name, s.Time)
		case EventIdle:
			if s.Time > clock {
				extend("", IdleSliceName, s.Time)
			}
		}
		clock = s.Time
	}
	return slices
}
