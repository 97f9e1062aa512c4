// Package replay wraps a StepLog in a navigable session: build a process
// set, run it once, then move a cursor over the recorded steps.
package replay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

var (
	// ErrNoAlgorithm is returned by operations that need a selected algorithm.
	ErrNoAlgorithm = errors.New("no algorithm selected")
	// ErrNotStarted is returned by navigation before Start succeeded.
	ErrNotStarted = errors.New("simulation not started")
)

// StepFunc receives the cursor position and the step under it during Play.
type StepFunc func(index int, step sim.Step)

// Session holds the editable process set and, once started, the step log
// and a cursor into it. All methods are safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	algorithm sim.Algorithm
	quantum   int
	traceLvl  trace.TraceLevel
	processes []sim.Process

	log    *sim.StepLog
	trace  *trace.SimulationTrace
	cursor int
}

// NewSession returns an empty session with no algorithm selected.
func NewSession() *Session {
	return &Session{traceLvl: trace.TraceLevelNone}
}

// SetAlgorithm selects the strategy. Changing the algorithm discards the
// process set and any step log.
func (s *Session) SetAlgorithm(alg sim.Algorithm) error {
	if !sim.IsValidAlgorithm(alg) {
		return fmt.Errorf("unknown algorithm %q: %w", alg, sim.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.algorithm = alg
	s.processes = nil
	s.resetLog()
	return nil
}

// Algorithm returns the selected algorithm, or "" when none is selected.
func (s *Session) Algorithm() sim.Algorithm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.algorithm
}

// SetQuantum sets the RoundRobin time slice used by the next Start.
func (s *Session) SetQuantum(q int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantum = q
}

// SetTraceLevel controls whether the next Start records decisions.
func (s *Session) SetTraceLevel(level trace.TraceLevel) error {
	if !trace.IsValidTraceLevel(string(level)) {
		return fmt.Errorf("unknown trace level %q: %w", level, sim.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traceLvl = level
	return nil
}

// AddProcess appends a validated process to the set.
func (s *Session) AddProcess(p sim.Process) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.algorithm == "" {
		return ErrNoAlgorithm
	}
	if err := p.Validate(); err != nil {
		return err
	}
	for _, q := range s.processes {
		if q.ID == p.ID {
			return fmt.Errorf("process %s: duplicate id %q: %w", p.Name, p.ID, sim.ErrInvalidInput)
		}
	}
	p.RemainingTime = p.BurstTime
	p.State = sim.StateNew
	s.processes = append(s.processes, p)
	return nil
}

// RemoveProcess drops the process with the given ID. Reports whether it existed.
func (s *Session) RemoveProcess(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.processes {
		if p.ID == id {
			s.processes = append(s.processes[:i], s.processes[i+1:]...)
			return true
		}
	}
	return false
}

// Processes returns a copy of the process set in insertion order.
func (s *Session) Processes() []sim.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sim.Process, len(s.processes))
	copy(out, s.processes)
	return out
}

// Start simulates the current process set and places the cursor on the
// first step. The process set itself is left untouched.
func (s *Session) Start() (sim.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.algorithm == "" {
		return sim.Step{}, ErrNoAlgorithm
	}
	var tr *trace.SimulationTrace
	if s.traceLvl == trace.TraceLevelDecisions {
		tr = trace.NewSimulationTrace(trace.TraceConfig{Level: s.traceLvl})
	}
	log, err := sim.Simulate(s.algorithm, s.processes, sim.Config{Quantum: s.quantum, Trace: tr})
	if err != nil {
		return sim.Step{}, err
	}
	s.log, s.trace, s.cursor = log, tr, 0
	return s.log.Steps[0].Clone(), nil
}

// Log returns a copy of the step log of the last Start, or nil.
// Steps returned by the session never alias the recorded log.
func (s *Session) Log() *sim.StepLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Clone()
}

// Trace returns the decision trace of the last Start, or nil when tracing was off.
func (s *Session) Trace() *trace.SimulationTrace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trace
}

// Position returns the cursor and the number of steps. Both are 0 before Start.
func (s *Session) Position() (index, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, s.log.Len()
}

// Current returns the step under the cursor.
func (s *Session) Current() (sim.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepAt(s.cursor)
}

// Next advances the cursor by one. ok is false when the cursor is already
// on the last step; the cursor then stays put.
func (s *Session) Next() (step sim.Step, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return sim.Step{}, false, ErrNotStarted
	}
	if s.cursor < s.log.Len()-1 {
		s.cursor++
		ok = true
	}
	step, err = s.stepAt(s.cursor)
	return step, ok, err
}

// Prev moves the cursor back by one. ok is false on the first step.
func (s *Session) Prev() (step sim.Step, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return sim.Step{}, false, ErrNotStarted
	}
	if s.cursor > 0 {
		s.cursor--
		ok = true
	}
	step, err = s.stepAt(s.cursor)
	return step, ok, err
}

// Seek moves the cursor to index.
func (s *Session) Seek(index int) (sim.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step, err := s.stepAt(index)
	if err != nil {
		return sim.Step{}, err
	}
	s.cursor = index
	return step, nil
}

// Rewind moves the cursor back to the first step.
func (s *Session) Rewind() (sim.Step, error) {
	return s.Seek(0)
}

// Clear returns the session to its initial state: no algorithm, no
// processes, no log. Quantum and trace level are kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.algorithm = ""
	s.processes = nil
	s.resetLog()
}

// Play emits the current step, then advances once per interval until the
// last step has been emitted or ctx is done. fn runs without the session lock held.
func (s *Session) Play(ctx context.Context, interval time.Duration, fn StepFunc) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s: %w", interval, sim.ErrInvalidInput)
	}
	step, err := s.Current()
	if err != nil {
		return err
	}
	index, total := s.Position()
	fn(index, step)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for index < total-1 {
		select {
		case <-ctx.Done():
			logrus.Debugf("playback stopped at step %d/%d", index+1, total)
			return ctx.Err()
		case <-ticker.C:
		}
		step, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		index, _ = s.Position()
		fn(index, step)
	}
	return nil
}

func (s *Session) stepAt(i int) (sim.Step, error) {
	if s.log == nil {
		return sim.Step{}, ErrNotStarted
	}
	step, ok := s.log.At(i)
	if !ok {
		return sim.Step{}, fmt.Errorf("step %d out of range [0, %d): %w", i, s.log.Len(), sim.ErrInvalidInput)
	}
	return step.Clone(), nil
}

func (s *Session) resetLog() {
	s.log, s.trace, s.cursor = nil, nil, 0
}
