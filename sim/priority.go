package sim

import (
	"github.com/inference-sim/schedsim/sim/trace"
)

// PriorityScheduler runs the most urgent process (smallest Priority value) at
// every tick boundary, preempting the running process when a more urgent one
// is Ready. Ties go to the earlier arrival, then to the lexicographically
// smaller name.
type PriorityScheduler struct{}

func (ps *PriorityScheduler) Simulate(processes []Process, cfg Config) *StepLog {
	e := newEngine(processes, AlgorithmPriority, cfg)
	e.record(EventStart, nil, "Start Priority (preemptive)")

	var running *Process
	for !e.done() {
		e.admitArrivals()

		candidates := make([]*Process, 0, len(e.procs))
		for _, p := range e.procs {
			if p.State == StateReady || p == running {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			next, ok := e.nextArrival()
			if !ok {
				break
			}
			e.jump(next)
			continue
		}

		best := candidates[0]
		for _, p := range candidates[1:] {
			if priorityLess(p, best) {
				best = p
			}
		}

		if running != nil && running != best {
			e.preempt(running, best, EventPreempt, trace.ReasonPriority,
				"Process %s (priority %d) preempts %s (priority %d)",
				best.Name, best.Priority, running.Name, running.Priority)
			running = nil
		}
		if running != best {
			e.dispatch(best, candidates, "highest priority",
				"Process %s running (priority %d)", best.Name, best.Priority)
			running = best
		}

		e.execute(best)
		e.record(EventTick, best, "Process %s executes (remaining %d)", best.Name, best.RemainingTime)
		if best.RemainingTime == 0 {
			e.terminate(best)
			running = nil
		}
	}

	return e.finish("Priority Preemptive")
}

// priorityLess orders by (Priority, ArrivalTime, Name), all ascending.
func priorityLess(a, b *Process) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.Name < b.Name
}
