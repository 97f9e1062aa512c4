// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim/trace"
)

var (
	// ErrInvalidInput is returned for an empty or malformed process set or an unknown algorithm.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyResult is returned when a strategy produced no steps.
	ErrEmptyResult = errors.New("simulation produced no steps")
)

// Simulate validates the input, runs the selected strategy on a private copy
// of processes and returns the complete step log. The caller's slice is never
// modified.
func Simulate(algorithm Algorithm, processes []Process, cfg Config) (*StepLog, error) {
	if !IsValidAlgorithm(algorithm) {
		return nil, fmt.Errorf("unknown algorithm %q: %w", algorithm, ErrInvalidInput)
	}
	if err := ValidateProcesses(processes); err != nil {
		return nil, err
	}

	input := make([]Process, len(processes))
	copy(input, processes)

	log := NewScheduler(algorithm).Simulate(input, cfg)
	final, ok := log.Final()
	if !ok {
		return nil, fmt.Errorf("%s: %w", algorithm, ErrEmptyResult)
	}
	logrus.Infof("%s simulation finished: %d processes, %d steps, makespan %d ticks",
		algorithm, len(processes), log.Len(), final.Time)
	return log, nil
}

// ValidateProcesses checks that the set is non-empty, every process is valid
// and IDs are unique.
func ValidateProcesses(processes []Process) error {
	if len(processes) == 0 {
		return fmt.Errorf("empty process list: %w", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(processes))
	for i, p := range processes {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("process[%d]: %w", i, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("process[%d]: duplicate id %q: %w", i, p.ID, ErrInvalidInput)
		}
		seen[p.ID] = true
	}
	return nil
}

// engine holds the clock and the private working copies for one run.
// Every strategy drives an engine; the engine owns admission and recording.
type engine struct {
	clock int64
	procs []*Process // working copies, in input order
	log   *StepLog
	trace *trace.SimulationTrace
}

func newEngine(input []Process, algorithm Algorithm, cfg Config) *engine {
	procs := make([]*Process, len(input))
	for i := range input {
		p := input[i]
		p.RemainingTime = p.BurstTime
		p.State = StateNew
		procs[i] = &p
	}
	return &engine{
		procs: procs,
		log:   &StepLog{Algorithm: algorithm, Steps: make([]Step, 0, 4*len(input)+2)},
		trace: cfg.Trace,
	}
}

// record appends a step with a fresh snapshot of every process.
func (e *engine) record(kind EventKind, subject *Process, format string, args ...any) {
	desc := fmt.Sprintf(format, args...)
	snapshot := make([]Process, len(e.procs))
	for i, p := range e.procs {
		snapshot[i] = *p
	}
	step := Step{
		Time:        e.clock,
		Kind:        kind,
		Description: desc,
		Processes:   snapshot,
	}
	if subject != nil {
		step.ProcessID = subject.ID
	}
	e.log.append(step)
	logrus.Debugf("[tick %07d] %-15s %s", e.clock, kind, desc)
}

// admitArrivals moves every New process whose arrival time has been reached
// to Ready, records one arrival step for the batch, and returns the admitted
// processes in input order.
func (e *engine) admitArrivals() []*Process {
	var admitted []*Process
	for _, p := range e.procs {
		if p.State == StateNew && p.ArrivalTime <= e.clock {
			p.State = StateReady
			admitted = append(admitted, p)
		}
	}
	switch len(admitted) {
	case 0:
	case 1:
		e.record(EventArrival, admitted[0], "Process %s arrives and is Ready", admitted[0].Name)
	default:
		names := make([]string, len(admitted))
		for i, p := range admitted {
			names[i] = p.Name
		}
		e.record(EventArrival, nil, "Processes %s arrive and are Ready", strings.Join(names, ", "))
	}
	return admitted
}

// done reports whether every process has terminated.
func (e *engine) done() bool {
	for _, p := range e.procs {
		if p.State != StateTerminated {
			return false
		}
	}
	return true
}

// ready returns the Ready processes in input order.
func (e *engine) ready() []*Process {
	var out []*Process
	for _, p := range e.procs {
		if p.State == StateReady {
			out = append(out, p)
		}
	}
	return out
}

// nextArrival returns the earliest arrival time among New processes.
func (e *engine) nextArrival() (int64, bool) {
	found := false
	var next int64
	for _, p := range e.procs {
		if p.State != StateNew {
			continue
		}
		if !found || p.ArrivalTime < next {
			next = p.ArrivalTime
			found = true
		}
	}
	return next, found
}

// idle advances the clock by one tick with no process on the CPU.
func (e *engine) idle() {
	e.clock++
	e.record(EventIdle, nil, "CPU idle, clock advances to %d", e.clock)
}

// jump moves the clock forward to t with no process on the CPU.
func (e *engine) jump(t int64) {
	e.clock = t
	e.record(EventIdle, nil, "CPU idle, clock jumps to %d (waiting for arrival)", t)
}

// dispatch puts p on the CPU and records the decision.
func (e *engine) dispatch(p *Process, candidates []*Process, reason string, format string, args ...any) {
	p.State = StateRunning
	e.record(EventDispatch, p, format, args...)
	if e.trace.Enabled() {
		e.trace.RecordSelection(trace.SelectionRecord{
			Clock:      e.clock,
			ProcessID:  p.ID,
			Name:       p.Name,
			Reason:     reason,
			Candidates: traceCandidates(candidates),
		})
	}
}

// execute runs p for one tick. The caller records the tick.
func (e *engine) execute(p *Process) {
	e.clock++
	if p.RemainingTime > 0 {
		p.RemainingTime--
	}
}

// terminate marks p finished and records it.
func (e *engine) terminate(p *Process) {
	p.RemainingTime = 0
	p.State = StateTerminated
	e.record(EventTerminate, p, "Process %s terminated", p.Name)
}

// preempt returns p to Ready and records why.
func (e *engine) preempt(p *Process, by *Process, kind EventKind, reason string, format string, args ...any) {
	p.State = StateReady
	e.record(kind, p, format, args...)
	if e.trace.Enabled() {
		rec := trace.PreemptionRecord{Clock: e.clock, ProcessID: p.ID, Name: p.Name, Reason: reason}
		if by != nil {
			rec.PreemptedBy = by.Name
		}
		e.trace.RecordPreemption(rec)
	}
}

func (e *engine) finish(label string) *StepLog {
	e.record(EventComplete, nil, "All processes completed (%s)", label)
	return e.log
}

func traceCandidates(ps []*Process) []trace.Candidate {
	out := make([]trace.Candidate, len(ps))
	for i, p := range ps {
		out[i] = trace.Candidate{
			ProcessID:     p.ID,
			Name:          p.Name,
			Priority:      p.Priority,
			ArrivalTime:   p.ArrivalTime,
			RemainingTime: p.RemainingTime,
		}
	}
	return out
}
