package sim

import (
	"fmt"
	"sort"
)

// Scheduler runs one scheduling discipline over a process set.
// Implementations copy their input, never mutate the caller's slice, and
// always return a log that starts with a start step and ends with a complete step.
type Scheduler interface {
	Simulate(processes []Process, cfg Config) *StepLog
}

// FCFSScheduler runs processes in ascending arrival order, each to completion.
type FCFSScheduler struct{}

func (f *FCFSScheduler) Simulate(processes []Process, cfg Config) *StepLog {
	e := newEngine(processes, AlgorithmFCFS, cfg)
	e.record(EventStart, nil, "Start FCFS (ordered by arrival time)")

	// Stable: equal arrivals keep input order.
	order := make([]*Process, len(e.procs))
	copy(order, e.procs)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].ArrivalTime < order[j].ArrivalTime
	})

	for _, p := range order {
		if e.clock < p.ArrivalTime {
			e.jump(p.ArrivalTime)
		}
		e.admitArrivals()

		e.dispatch(p, e.ready(), "earliest arrival", "Process %s starts running", p.Name)
		for p.RemainingTime > 0 {
			e.execute(p)
			e.record(EventTick, p, "Process %s executes (remaining %d)", p.Name, p.RemainingTime)
			e.admitArrivals()
		}
		e.terminate(p)
	}

	return e.finish("FCFS")
}

// SJFScheduler picks the Ready process with the least remaining time and runs
// it to completion. Ties go to the earlier arrival, then to input order.
type SJFScheduler struct{}

func (s *SJFScheduler) Simulate(processes []Process, cfg Config) *StepLog {
	e := newEngine(processes, AlgorithmSJF, cfg)
	e.record(EventStart, nil, "Start SJF (non-preemptive)")

	for !e.done() {
		e.admitArrivals()
		ready := e.ready()
		if len(ready) == 0 {
			e.idle()
			continue
		}

		candidates := make([]*Process, len(ready))
		copy(candidates, ready)
		sort.SliceStable(ready, func(i, j int) bool {
			if ready[i].RemainingTime != ready[j].RemainingTime {
				return ready[i].RemainingTime < ready[j].RemainingTime
			}
			return ready[i].ArrivalTime < ready[j].ArrivalTime
		})
		cur := ready[0]

		e.dispatch(cur, candidates, "shortest remaining time",
			"Process %s selected (shortest burst, %d)", cur.Name, cur.RemainingTime)
		for cur.RemainingTime > 0 {
			e.execute(cur)
			e.record(EventTick, cur, "Process %s executes (remaining %d)", cur.Name, cur.RemainingTime)
			e.admitArrivals()
		}
		e.terminate(cur)
	}

	return e.finish("SJF")
}

// NewScheduler creates a Scheduler for the given algorithm.
// Panics on unrecognized algorithms; check IsValidAlgorithm or use ParseAlgorithm first.
func NewScheduler(algorithm Algorithm) Scheduler {
	if !IsValidAlgorithm(algorithm) {
		panic(fmt.Sprintf("unknown algorithm %q", algorithm))
	}
	switch algorithm {
	case AlgorithmFCFS:
		return &FCFSScheduler{}
	case AlgorithmSJF:
		return &SJFScheduler{}
	case AlgorithmPriority:
		return &PriorityScheduler{}
	case AlgorithmRoundRobin:
		return &RoundRobinScheduler{}
	default:
		panic(fmt.Sprintf("unhandled algorithm %q", algorithm))
	}
}
