package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inference-sim/schedsim/sim/trace"
)

// Algorithm names a scheduling discipline.
type Algorithm string

const (
	AlgorithmFCFS       Algorithm = "FCFS"
	AlgorithmSJF        Algorithm = "SJF"
	AlgorithmPriority   Algorithm = "Priority"
	AlgorithmRoundRobin Algorithm = "RoundRobin"
)

// DefaultQuantum is the Round-Robin time slice used when Config.Quantum is unset or invalid.
const DefaultQuantum = 2

// algorithmLabels maps each algorithm to its display label.
var algorithmLabels = map[Algorithm]string{
	AlgorithmFCFS:       "FCFS (First Come First Serve)",
	AlgorithmSJF:        "SJF (Shortest Job First)",
	AlgorithmPriority:   "Priority (Preemptive)",
	AlgorithmRoundRobin: "Round Robin (RR)",
}

// algorithmAliases maps lower-cased CLI/API spellings to canonical names.
var algorithmAliases = map[string]Algorithm{
	"fcfs":        AlgorithmFCFS,
	"sjf":         AlgorithmSJF,
	"priority":    AlgorithmPriority,
	"roundrobin":  AlgorithmRoundRobin,
	"round-robin": AlgorithmRoundRobin,
	"rr":          AlgorithmRoundRobin,
}

// IsValidAlgorithm reports whether a is one of the four canonical algorithm names.
func IsValidAlgorithm(a Algorithm) bool {
	_, ok := algorithmLabels[a]
	return ok
}

// ParseAlgorithm resolves a canonical name or a case-insensitive alias.
func ParseAlgorithm(name string) (Algorithm, error) {
	if a, ok := algorithmAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown algorithm %q; valid: %s: %w",
		name, strings.Join(AlgorithmNames(), ", "), ErrInvalidInput)
}

// AlgorithmNames returns the canonical algorithm names in sorted order.
func AlgorithmNames() []string {
	names := make([]string, 0, len(algorithmLabels))
	for a := range algorithmLabels {
		names = append(names, string(a))
	}
	sort.Strings(names)
	return names
}

// Label returns the display label, or "-" for an unknown algorithm.
func (a Algorithm) Label() string {
	if l, ok := algorithmLabels[a]; ok {
		return l
	}
	return "-"
}

// Config carries per-run parameters shared by every strategy.
type Config struct {
	Quantum int                    // RoundRobin time slice; <= 0 means DefaultQuantum
	Trace   *trace.SimulationTrace // optional decision trace; nil disables recording
}

// EffectiveQuantum returns Quantum, or DefaultQuantum when Quantum is not positive.
func (c Config) EffectiveQuantum() int {
	if c.Quantum <= 0 {
		return DefaultQuantum
	}
	return c.Quantum
}
