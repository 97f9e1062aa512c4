package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFCFSScheduler_RunsInArrivalOrder(t *testing.T) {
	// GIVEN processes listed out of arrival order
	processes := []Process{
		proc("late", 4, 1, 1),
		proc("early", 0, 2, 1),
		proc("mid", 1, 3, 1),
	}

	// WHEN scheduled FCFS
	log := (&FCFSScheduler{}).Simulate(processes, Config{})

	// THEN completion follows arrival order
	assertLogInvariants(t, log, len(processes))
	assert.Equal(t, []string{"early", "mid", "late"}, terminationOrder(log))
	assert.Equal(t, map[string]int64{"early": 2, "mid": 5, "late": 6}, completionTimes(log))
}

func TestFCFSScheduler_MakespanIsBurstsPlusIdleGaps(t *testing.T) {
	// GIVEN a gap of 3 ticks before the first arrival and 2 between jobs
	processes := []Process{proc("P1", 3, 2, 1), proc("P2", 7, 4, 1)}

	log := (&FCFSScheduler{}).Simulate(processes, Config{})

	// THEN makespan = 3 + 2 + 2 + 4
	final, ok := log.Final()
	require.True(t, ok)
	assert.Equal(t, int64(11), final.Time)

	idle := stepsOfKind(log, EventIdle)
	require.Len(t, idle, 2, "one jump per gap")
	assert.Equal(t, int64(3), idle[0].Time)
	assert.Equal(t, int64(7), idle[1].Time)
}

func TestFCFSScheduler_LaterShorterJobNeverInterrupts(t *testing.T) {
	processes := []Process{proc("long", 0, 5, 1), proc("short", 1, 1, 1)}

	log := (&FCFSScheduler{}).Simulate(processes, Config{})

	// THEN "long" ticks five times in a row before anything else is dispatched
	var ticks []string
	for _, s := range log.Steps {
		if s.Kind == EventTick {
			p, _ := s.Lookup(s.ProcessID)
			ticks = append(ticks, p.Name)
		}
	}
	assert.Equal(t, []string{"long", "long", "long", "long", "long", "short"}, ticks)
}

func TestFCFSScheduler_StepSequence(t *testing.T) {
	// GIVEN a single process
	log := (&FCFSScheduler{}).Simulate([]Process{proc("P1", 0, 2, 1)}, Config{})

	// THEN the exact event sequence is start, arrival, dispatch, 2 ticks, terminate, complete
	var kinds []EventKind
	for _, s := range log.Steps {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []EventKind{
		EventStart, EventArrival, EventDispatch, EventTick, EventTick, EventTerminate, EventComplete,
	}, kinds)
	assert.Equal(t, "Process P1 executes (remaining 1)", log.Steps[3].Description)
	assert.Equal(t, "All processes completed (FCFS)", log.Steps[6].Description)
}

func TestSJFScheduler_SpecExample_NonPreemptive(t *testing.T) {
	// GIVEN P1 (arrival 0, burst 5) and P2 (arrival 1, burst 3)
	processes := []Process{proc("P1", 0, 5, 1), proc("P2", 1, 3, 1)}

	// WHEN scheduled SJF
	log := (&SJFScheduler{}).Simulate(processes, Config{})

	// THEN P1 runs 0..5 uninterrupted and P2 runs 5..8
	assertLogInvariants(t, log, len(processes))
	dispatches := stepsOfKind(log, EventDispatch)
	require.Len(t, dispatches, 2)
	assert.Equal(t, int64(0), dispatches[0].Time)
	assert.Equal(t, int64(5), dispatches[1].Time)
	assert.Equal(t, map[string]int64{"P1": 5, "P2": 8}, completionTimes(log))
}

func TestSJFScheduler_SelectsMinimumRemainingAmongReady(t *testing.T) {
	processes := []Process{
		proc("A", 0, 6, 1),
		proc("B", 1, 4, 1),
		proc("C", 2, 2, 1),
		proc("D", 3, 3, 1),
		proc("E", 20, 1, 1),
	}
	log := (&SJFScheduler{}).Simulate(processes, Config{})
	assertLogInvariants(t, log, len(processes))

	// THEN at every dispatch the chosen process has the least remaining time
	// among processes Ready in the preceding snapshot
	for i, s := range log.Steps {
		if s.Kind != EventDispatch {
			continue
		}
		chosen, _ := s.Lookup(s.ProcessID)
		for _, p := range log.Steps[i-1].Processes {
			if p.State == StateReady && p.ID != chosen.ID {
				assert.LessOrEqual(t, chosen.RemainingTime, p.RemainingTime,
					"at t=%d chose %s over shorter %s", s.Time, chosen.Name, p.Name)
			}
		}
	}
	assert.Equal(t, []string{"A", "C", "D", "B", "E"}, terminationOrder(log))
}

func TestSJFScheduler_IdleTicksAreLogged(t *testing.T) {
	// GIVEN the only process arrives at t=2
	log := (&SJFScheduler{}).Simulate([]Process{proc("P1", 2, 1, 1)}, Config{})

	// THEN two one-tick idle steps precede its arrival
	idle := stepsOfKind(log, EventIdle)
	require.Len(t, idle, 2)
	assert.Equal(t, int64(1), idle[0].Time)
	assert.Equal(t, int64(2), idle[1].Time)
	assert.Equal(t, map[string]int64{"P1": 3}, completionTimes(log))
}

func TestNewScheduler_ValidAlgorithms(t *testing.T) {
	assert.IsType(t, &FCFSScheduler{}, NewScheduler(AlgorithmFCFS))
	assert.IsType(t, &SJFScheduler{}, NewScheduler(AlgorithmSJF))
	assert.IsType(t, &PriorityScheduler{}, NewScheduler(AlgorithmPriority))
	assert.IsType(t, &RoundRobinScheduler{}, NewScheduler(AlgorithmRoundRobin))
}

func TestNewScheduler_UnknownAlgorithm_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown algorithm")
		}
	}()
	NewScheduler("lottery")
}
