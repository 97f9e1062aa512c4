package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/schedsim/sim/internal/testutil"
)

// proc builds a valid process with a fresh ID.
func proc(name string, arrival, burst int64, priority int) Process {
	return NewProcess(name, arrival, burst, priority)
}

// goldenProcesses converts golden inputs into processes, defaulting priority to 1.
func goldenProcesses(in []testutil.GoldenProcess) []Process {
	out := make([]Process, len(in))
	for i, g := range in {
		prio := g.Priority
		if prio == 0 {
			prio = DefaultPriority
		}
		out[i] = proc(g.Name, g.ArrivalTime, g.BurstTime, prio)
	}
	return out
}

// mustSimulate runs Simulate and fails the test on error.
func mustSimulate(t *testing.T, algorithm Algorithm, processes []Process, cfg Config) *StepLog {
	t.Helper()
	log, err := Simulate(algorithm, processes, cfg)
	require.NoError(t, err)
	require.NotNil(t, log)
	return log
}

// completionTimes maps process name to the clock of its terminate step.
func completionTimes(log *StepLog) map[string]int64 {
	out := make(map[string]int64)
	for _, s := range log.Steps {
		if s.Kind != EventTerminate {
			continue
		}
		p, _ := s.Lookup(s.ProcessID)
		out[p.Name] = s.Time
	}
	return out
}

// terminationOrder lists process names in the order they terminated.
func terminationOrder(log *StepLog) []string {
	var out []string
	for _, s := range log.Steps {
		if s.Kind == EventTerminate {
			p, _ := s.Lookup(s.ProcessID)
			out = append(out, p.Name)
		}
	}
	return out
}

// stepsOfKind returns every step with the given kind.
func stepsOfKind(log *StepLog, kind EventKind) []Step {
	var out []Step
	for _, s := range log.Steps {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// assertLogInvariants checks the properties every log must satisfy regardless
// of algorithm: bookends, monotonic time, legal state edges, remaining-time
// bounds, a single running process, and full termination at the end.
func assertLogInvariants(t *testing.T, log *StepLog, n int) {
	t.Helper()
	require.GreaterOrEqual(t, log.Len(), 2, "log must contain at least start and complete")

	first := log.Steps[0]
	assert.Equal(t, EventStart, first.Kind)
	assert.Equal(t, int64(0), first.Time)
	require.Len(t, first.Processes, n)
	for _, p := range first.Processes {
		assert.Equal(t, StateNew, p.State, "process %s must start New", p.Name)
		assert.Equal(t, p.BurstTime, p.RemainingTime, "process %s must start with full burst", p.Name)
	}

	prev := first
	for i := 1; i < log.Len(); i++ {
		s := log.Steps[i]
		if s.Time < prev.Time {
			t.Errorf("step %d: time went backwards %d -> %d", i, prev.Time, s.Time)
		}
		require.Len(t, s.Processes, n, "step %d snapshot size", i)
		running := 0
		for j, p := range s.Processes {
			from := prev.Processes[j].State
			if !IsValidTransition(from, p.State) {
				t.Errorf("step %d (%s): %s moved %s -> %s", i, s.Kind, p.Name, from, p.State)
			}
			if p.State == StateWaiting {
				t.Errorf("step %d: %s entered Waiting", i, p.Name)
			}
			if p.RemainingTime < 0 || p.RemainingTime > p.BurstTime {
				t.Errorf("step %d: %s remaining %d outside [0, %d]", i, p.Name, p.RemainingTime, p.BurstTime)
			}
			if p.State == StateRunning {
				running++
			}
		}
		if running > 1 {
			t.Errorf("step %d: %d processes running at once", i, running)
		}
		prev = s
	}

	last := log.Steps[log.Len()-1]
	assert.Equal(t, EventComplete, last.Kind)
	for _, p := range last.Processes {
		assert.Equal(t, StateTerminated, p.State, "process %s must end Terminated", p.Name)
		assert.Equal(t, int64(0), p.RemainingTime, "process %s must end with no remaining time", p.Name)
	}
}
