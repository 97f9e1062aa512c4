// Implements the ReadyQueue, the FIFO of processes waiting for the CPU
// under Round-Robin scheduling.

package sim

import (
	"strings"
)

// ReadyQueue is a FIFO queue of process references.
// It is kept separately from Process.State: a process is queued at most once
// per eligibility and leaves the queue only when dispatched.
type ReadyQueue struct {
	queue []*Process
}

// Enqueue adds a process to the back of the queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: p must not be nil")
	}
	rq.queue = append(rq.queue, p)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	head := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return head
}

// Len returns the number of queued processes.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Names returns the queued process names, head first.
func (rq *ReadyQueue) Names() []string {
	names := make([]string, len(rq.queue))
	for i, p := range rq.queue {
		names[i] = p.Name
	}
	return names
}

func (rq *ReadyQueue) String() string {
	return "[" + strings.Join(rq.Names(), " ") + "]"
}
