package workload

import (
	"fmt"

	"github.com/inference-sim/schedsim/sim"
)

// Upper bounds on generated workloads. They keep every draw range and
// the resulting simulation horizon far from int64 overflow.
const (
	MaxGeneratedProcesses = 10000
	MaxGeneratedTime      = 1_000_000_000
)

// GeneratorSpec draws a random but reproducible process set.
type GeneratorSpec struct {
	Seed        int64 `json:"seed" yaml:"seed"`
	Count       int   `json:"count" yaml:"count"`
	MaxArrival  int64 `json:"max_arrival" yaml:"max_arrival"`                       // arrivals drawn from [0, MaxArrival]
	MinBurst    int64 `json:"min_burst,omitempty" yaml:"min_burst,omitempty"`       // default 1
	MaxBurst    int64 `json:"max_burst" yaml:"max_burst"`                           // bursts drawn from [MinBurst, MaxBurst]
	MaxPriority int   `json:"max_priority,omitempty" yaml:"max_priority,omitempty"` // priorities drawn from [1, MaxPriority]; default 1
}

// Validate checks the generator bounds.
func (g GeneratorSpec) Validate() error {
	if g.Count <= 0 || g.Count > MaxGeneratedProcesses {
		return fmt.Errorf("count must be in [1, %d], got %d", MaxGeneratedProcesses, g.Count)
	}
	if g.MaxArrival < 0 || g.MaxArrival > MaxGeneratedTime {
		return fmt.Errorf("max_arrival must be in [0, %d], got %d", MaxGeneratedTime, g.MaxArrival)
	}
	if g.MinBurst < 0 {
		return fmt.Errorf("min_burst must be non-negative, got %d", g.MinBurst)
	}
	if g.MaxBurst < g.minBurst() {
		return fmt.Errorf("max_burst (%d) must be >= min_burst (%d)", g.MaxBurst, g.minBurst())
	}
	if g.MaxBurst > MaxGeneratedTime {
		return fmt.Errorf("max_burst must be <= %d, got %d", MaxGeneratedTime, g.MaxBurst)
	}
	if g.MaxPriority < 0 {
		return fmt.Errorf("max_priority must be non-negative, got %d", g.MaxPriority)
	}
	return nil
}

func (g GeneratorSpec) minBurst() int64 {
	if g.MinBurst <= 0 {
		return 1
	}
	return g.MinBurst
}

// GenerateProcesses draws g.Count processes named P1..Pn. Each field comes
// from its own RNG subsystem, so the same seed always yields the same set.
// g must already be valid.
func GenerateProcesses(g GeneratorSpec) []sim.Process {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(g.Seed))
	arrivals := rng.ForSubsystem(sim.SubsystemArrival)
	bursts := rng.ForSubsystem(sim.SubsystemBurst)
	priorities := rng.ForSubsystem(sim.SubsystemPriority)

	minBurst := g.minBurst()
	maxPriority := g.MaxPriority
	if maxPriority <= 0 {
		maxPriority = sim.DefaultPriority
	}

	procs := make([]sim.Process, g.Count)
	for i := range procs {
		arrival := arrivals.Int63n(g.MaxArrival + 1)
		burst := minBurst + bursts.Int63n(g.MaxBurst-minBurst+1)
		priority := 1 + priorities.Intn(maxPriority)
		procs[i] = sim.NewProcess(fmt.Sprintf("P%d", i+1), arrival, burst, priority)
	}
	return procs
}
