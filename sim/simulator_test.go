package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/schedsim/sim/internal/testutil"
	"github.com/inference-sim/schedsim/sim/trace"
)

var allAlgorithms = []Algorithm{AlgorithmFCFS, AlgorithmSJF, AlgorithmPriority, AlgorithmRoundRobin}

func TestSimulate_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			// GIVEN the golden input
			processes := goldenProcesses(tc.Processes)

			// WHEN simulated
			log := mustSimulate(t, Algorithm(tc.Algorithm), processes, Config{Quantum: tc.Quantum})

			// THEN the outcome matches exactly
			assertLogInvariants(t, log, len(processes))
			assert.Equal(t, tc.Expected.Completion, completionTimes(log), "completion times")
			assert.Equal(t, tc.Expected.CompletionOrder, terminationOrder(log), "completion order")

			m := ComputeMetrics(log)
			require.NotNil(t, m)
			assert.Equal(t, tc.Expected.Makespan, m.Makespan, "makespan")
			assert.Equal(t, tc.Expected.Dispatches, m.Dispatches, "dispatches")
			assert.Equal(t, tc.Expected.Preemptions, m.Preemptions, "preemptions")
			assert.Equal(t, tc.Expected.QuantumExpirations, m.QuantumExpirations, "quantum expirations")
		})
	}
}

func TestSimulate_AllAlgorithms_SatisfyLogInvariants(t *testing.T) {
	processes := []Process{
		proc("P1", 0, 4, 2),
		proc("P2", 1, 3, 1),
		proc("P3", 2, 1, 3),
		proc("P4", 9, 2, 1),
		proc("P5", 9, 1, 2),
	}
	for _, alg := range allAlgorithms {
		t.Run(string(alg), func(t *testing.T) {
			log := mustSimulate(t, alg, processes, Config{Quantum: 2})
			assertLogInvariants(t, log, len(processes))
			assert.Equal(t, alg, log.Algorithm)
		})
	}
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	// GIVEN an input slice
	processes := []Process{proc("P1", 0, 3, 1), proc("P2", 1, 2, 1)}
	original := make([]Process, len(processes))
	copy(original, processes)

	for _, alg := range allAlgorithms {
		// WHEN simulated with every algorithm
		mustSimulate(t, alg, processes, Config{})

		// THEN the caller's processes are untouched
		assert.Equal(t, original, processes, "%s mutated its input", alg)
	}
}

func TestSimulate_RepeatedRuns_AreIdentical(t *testing.T) {
	processes := []Process{proc("P1", 0, 5, 2), proc("P2", 1, 3, 1), proc("P3", 3, 2, 1)}
	for _, alg := range allAlgorithms {
		a := mustSimulate(t, alg, processes, Config{Quantum: 2})
		b := mustSimulate(t, alg, processes, Config{Quantum: 2})
		assert.Equal(t, a, b, "%s is not deterministic", alg)
	}
}

func TestSimulate_SnapshotsAreIndependentValues(t *testing.T) {
	// GIVEN a completed log
	log := mustSimulate(t, AlgorithmFCFS, []Process{proc("P1", 0, 2, 1)}, Config{})

	// WHEN an early snapshot is modified
	log.Steps[0].Processes[0].RemainingTime = 99

	// THEN no later snapshot changes
	for i := 1; i < log.Len(); i++ {
		assert.NotEqual(t, int64(99), log.Steps[i].Processes[0].RemainingTime, "step %d shares storage", i)
	}
}

func TestSimulate_InvalidInput(t *testing.T) {
	valid := proc("P1", 0, 1, 1)
	dup := valid
	dup.Name = "P2"

	tests := []struct {
		name      string
		algorithm Algorithm
		processes []Process
	}{
		{"empty list", AlgorithmFCFS, nil},
		{"unknown algorithm", Algorithm("Lottery"), []Process{valid}},
		{"empty name", AlgorithmFCFS, []Process{{ID: "x", BurstTime: 1, Priority: 1}}},
		{"empty id", AlgorithmFCFS, []Process{{Name: "P", BurstTime: 1, Priority: 1}}},
		{"zero burst", AlgorithmSJF, []Process{proc("P", 0, 0, 1)}},
		{"negative arrival", AlgorithmSJF, []Process{proc("P", -1, 1, 1)}},
		{"zero priority", AlgorithmPriority, []Process{proc("P", 0, 1, 0)}},
		{"duplicate id", AlgorithmRoundRobin, []Process{valid, dup}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Simulate(tt.algorithm, tt.processes, Config{})
			assert.Nil(t, log)
			assert.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
		})
	}
}

func TestSimulate_TraceRecordsDecisions(t *testing.T) {
	// GIVEN a decisions-level trace
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	processes := []Process{proc("P1", 0, 4, 3), proc("P2", 1, 2, 1)}

	// WHEN a preemptive run is traced
	mustSimulate(t, AlgorithmPriority, processes, Config{Trace: st})

	// THEN every dispatch and the preemption are recorded
	require.Len(t, st.Selections, 3)
	assert.Equal(t, []string{"P1", "P2", "P1"}, []string{st.Selections[0].Name, st.Selections[1].Name, st.Selections[2].Name})
	require.Len(t, st.Preemptions, 1)
	assert.Equal(t, "P1", st.Preemptions[0].Name)
	assert.Equal(t, "P2", st.Preemptions[0].PreemptedBy)
	assert.Equal(t, trace.ReasonPriority, st.Preemptions[0].Reason)
	assert.Equal(t, int64(1), st.Preemptions[0].Clock)
}

func TestSimulate_ArrivalBatch_RecordedOnce(t *testing.T) {
	// GIVEN two processes arriving at the same instant
	log := mustSimulate(t, AlgorithmFCFS, []Process{proc("A", 0, 1, 1), proc("B", 0, 1, 1)}, Config{})

	// THEN a single arrival step names both
	arrivals := stepsOfKind(log, EventArrival)
	require.Len(t, arrivals, 1)
	assert.Contains(t, arrivals[0].Description, "A, B")
	assert.Empty(t, arrivals[0].ProcessID)
}
