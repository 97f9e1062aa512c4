package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim/trace"
)

// RoundRobinScheduler serves Ready processes in FIFO order, each for at most
// one quantum per turn. A process whose quantum expires goes to the tail of
// the queue, behind everything that arrived during its slice.
type RoundRobinScheduler struct{}

func (rr *RoundRobinScheduler) Simulate(processes []Process, cfg Config) *StepLog {
	quantum := cfg.EffectiveQuantum()
	e := newEngine(processes, AlgorithmRoundRobin, cfg)
	e.log.Quantum = quantum
	e.record(EventStart, nil, "Start Round Robin (quantum %d)", quantum)

	queue := &ReadyQueue{}
	enqueue := func(admitted []*Process) {
		for _, p := range admitted {
			queue.Enqueue(p)
		}
	}

	for !e.done() {
		enqueue(e.admitArrivals())
		if queue.Len() == 0 {
			e.idle()
			continue
		}

		logrus.Debugf("[tick %07d] ready queue %s", e.clock, queue)
		candidates := make([]*Process, 0, queue.Len())
		candidates = append(candidates, queue.queue...)
		cur := queue.Dequeue()
		e.dispatch(cur, candidates, "head of ready queue",
			"Process %s starts running (remaining %d)", cur.Name, cur.RemainingTime)

		for used := 1; used <= quantum && cur.RemainingTime > 0; used++ {
			e.execute(cur)
			e.record(EventTick, cur, "Process %s executes (%d/%d) (remaining %d)",
				cur.Name, used, quantum, cur.RemainingTime)
			enqueue(e.admitArrivals())
		}

		if cur.RemainingTime == 0 {
			e.terminate(cur)
			continue
		}
		e.preempt(cur, nil, EventQuantumExpired, trace.ReasonQuantum,
			"Quantum expired: %s returns to Ready (remaining %d)", cur.Name, cur.RemainingTime)
		queue.Enqueue(cur)
	}

	return e.finish("Round Robin")
}
