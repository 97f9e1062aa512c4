package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityScheduler_HigherPriorityArrival_PreemptsBeforeNextTick(t *testing.T) {
	// GIVEN A (priority 3) running when B (priority 1) arrives at t=2
	processes := []Process{proc("A", 0, 5, 3), proc("B", 2, 2, 1)}

	// WHEN scheduled
	log := (&PriorityScheduler{}).Simulate(processes, Config{})
	assertLogInvariants(t, log, len(processes))

	// THEN A is preempted at t=2, before its next tick
	preempts := stepsOfKind(log, EventPreempt)
	require.Len(t, preempts, 1)
	assert.Equal(t, int64(2), preempts[0].Time)
	assert.Equal(t, "Process B (priority 1) preempts A (priority 3)", preempts[0].Description)
	a, _ := preempts[0].Lookup(preempts[0].ProcessID)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, StateReady, a.State)
	assert.Equal(t, int64(3), a.RemainingTime)

	for i, s := range log.Steps {
		if s.Kind == EventArrival && s.Time == 2 {
			next := log.Steps[i+1]
			assert.Equal(t, EventPreempt, next.Kind, "preemption must follow B's arrival directly")
		}
	}
	assert.Equal(t, map[string]int64{"B": 4, "A": 7}, completionTimes(log))
}

func TestPriorityScheduler_RunningProcess_NotRedispatchedEachTick(t *testing.T) {
	// GIVEN a single process with no competition
	log := (&PriorityScheduler{}).Simulate([]Process{proc("P1", 0, 3, 1)}, Config{})

	// THEN it is dispatched exactly once and ticks three times
	assert.Len(t, stepsOfKind(log, EventDispatch), 1)
	assert.Len(t, stepsOfKind(log, EventTick), 3)
}

func TestPriorityScheduler_EqualPriorityArrival_DoesNotPreempt(t *testing.T) {
	// GIVEN a later arrival with the same priority
	processes := []Process{proc("first", 0, 3, 2), proc("second", 1, 1, 2)}

	log := (&PriorityScheduler{}).Simulate(processes, Config{})

	// THEN the earlier arrival keeps the CPU
	assert.Empty(t, stepsOfKind(log, EventPreempt))
	assert.Equal(t, []string{"first", "second"}, terminationOrder(log))
}

func TestPriorityScheduler_TieBreak_ArrivalThenName(t *testing.T) {
	processes := []Process{
		proc("zeta", 0, 1, 1),
		proc("alpha", 0, 1, 1),
		proc("early", 0, 1, 2),
		proc("beta", 0, 1, 1),
	}

	log := (&PriorityScheduler{}).Simulate(processes, Config{})

	assert.Equal(t, []string{"alpha", "beta", "zeta", "early"}, terminationOrder(log))
}

func TestPriorityScheduler_IdleGap_JumpsToNextArrival(t *testing.T) {
	// GIVEN a gap between the first completion and the next arrival
	processes := []Process{proc("P1", 0, 1, 1), proc("P2", 10, 1, 1)}

	log := (&PriorityScheduler{}).Simulate(processes, Config{})

	// THEN a single idle jump covers the gap
	idle := stepsOfKind(log, EventIdle)
	require.Len(t, idle, 1)
	assert.Equal(t, int64(10), idle[0].Time)
	assert.Equal(t, map[string]int64{"P1": 1, "P2": 11}, completionTimes(log))
}

func TestPriorityScheduler_ChainedPreemptions(t *testing.T) {
	// GIVEN ever more urgent arrivals
	processes := []Process{
		proc("low", 0, 3, 3),
		proc("mid", 1, 2, 2),
		proc("high", 2, 1, 1),
	}

	log := (&PriorityScheduler{}).Simulate(processes, Config{})
	assertLogInvariants(t, log, len(processes))

	preempts := stepsOfKind(log, EventPreempt)
	require.Len(t, preempts, 2)
	assert.Equal(t, int64(1), preempts[0].Time)
	assert.Equal(t, int64(2), preempts[1].Time)
	assert.Equal(t, map[string]int64{"high": 3, "mid": 4, "low": 6}, completionTimes(log))
}

func TestPriorityLess_Ordering(t *testing.T) {
	a := &Process{Name: "a", Priority: 1, ArrivalTime: 5}
	b := &Process{Name: "b", Priority: 2, ArrivalTime: 0}
	c := &Process{Name: "c", Priority: 1, ArrivalTime: 3}
	d := &Process{Name: "d", Priority: 1, ArrivalTime: 3}

	assert.True(t, priorityLess(a, b), "smaller priority value wins")
	assert.True(t, priorityLess(c, a), "earlier arrival wins on equal priority")
	assert.True(t, priorityLess(c, d), "name breaks remaining ties")
	assert.False(t, priorityLess(d, c))
}
