// Defines the Process struct that models one schedulable unit in the simulation.
// Tracks arrival, burst, remaining work, priority and lifecycle state.

package sim

import (
	"fmt"

	"github.com/google/uuid"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateNew     ProcessState = "New"
	StateReady   ProcessState = "Ready"
	StateRunning ProcessState = "Running"
	// StateWaiting is reserved for I/O phases. No strategy assigns it.
	StateWaiting    ProcessState = "Waiting"
	StateTerminated ProcessState = "Terminated"
)

// DefaultPriority is applied by loaders when a process does not set one.
const DefaultPriority = 1

// Process is a value type: copying it yields an independent snapshot.
type Process struct {
	ID   string `json:"id" yaml:"id"`     // Unique identifier, never reused
	Name string `json:"name" yaml:"name"` // Display label

	ArrivalTime   int64 `json:"arrival_time" yaml:"arrival_time"`     // Tick at which the process becomes eligible
	BurstTime     int64 `json:"burst_time" yaml:"burst_time"`         // Total CPU ticks required
	RemainingTime int64 `json:"remaining_time" yaml:"remaining_time"` // CPU ticks still owed, 0 <= RemainingTime <= BurstTime
	Priority      int   `json:"priority" yaml:"priority"`             // Smaller = more urgent; only read by PriorityScheduler

	State ProcessState `json:"state" yaml:"state"`
}

// NewProcess creates a Process in StateNew with a fresh UUID and
// RemainingTime equal to burstTime.
func NewProcess(name string, arrivalTime, burstTime int64, priority int) Process {
	return Process{
		ID:            uuid.New().String(),
		Name:          name,
		ArrivalTime:   arrivalTime,
		BurstTime:     burstTime,
		RemainingTime: burstTime,
		Priority:      priority,
		State:         StateNew,
	}
}

// Validate reports whether the process satisfies the static field constraints.
// RemainingTime and State are not checked: every run resets them.
func (p Process) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("process %q: empty id: %w", p.Name, ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("process %s: empty name: %w", p.ID, ErrInvalidInput)
	}
	if p.ArrivalTime < 0 {
		return fmt.Errorf("process %s: arrival_time must be non-negative, got %d: %w", p.Name, p.ArrivalTime, ErrInvalidInput)
	}
	if p.BurstTime <= 0 {
		return fmt.Errorf("process %s: burst_time must be positive, got %d: %w", p.Name, p.BurstTime, ErrInvalidInput)
	}
	if p.Priority < 1 {
		return fmt.Errorf("process %s: priority must be >= 1, got %d: %w", p.Name, p.Priority, ErrInvalidInput)
	}
	return nil
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (Name: %s, State: %s, Remaining: %d/%d, Arrival: %d, Priority: %d)",
		p.Name, p.State, p.RemainingTime, p.BurstTime, p.ArrivalTime, p.Priority)
}

// validTransitions lists the state edges a strategy may take.
var validTransitions = map[ProcessState]map[ProcessState]bool{
	StateNew:     {StateReady: true},
	StateReady:   {StateRunning: true},
	StateRunning: {StateReady: true, StateTerminated: true},
}

// IsValidTransition reports whether a process may move from one state to
// another within a single step. Staying in the same state is always valid.
func IsValidTransition(from, to ProcessState) bool {
	if from == to {
		return true
	}
	return validTransitions[from][to]
}
