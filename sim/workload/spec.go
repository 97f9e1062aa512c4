package workload

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Algorithm string         `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Quantum   int            `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Processes []ProcessSpec  `json:"processes,omitempty" yaml:"processes,omitempty"`
	Generator *GeneratorSpec `json:"generator,omitempty" yaml:"generator,omitempty"`
}

// ProcessSpec describes one process in a workload file.
type ProcessSpec struct {
	Name        string `json:"name" yaml:"name"`
	ArrivalTime int64  `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int64  `json:"burst_time" yaml:"burst_time"`
	Priority    int    `json:"priority,omitempty" yaml:"priority,omitempty"` // 0 = sim.DefaultPriority
}

// LoadWorkloadSpec reads and parses a YAML workload file.
// Unknown keys are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseWorkloadSpec(data)
}

// ParseWorkloadSpec decodes a YAML workload document.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parsing workload spec: empty document")
		}
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if s.Algorithm != "" {
		if _, err := sim.ParseAlgorithm(s.Algorithm); err != nil {
			return err
		}
	}
	if s.Quantum < 0 {
		return fmt.Errorf("quantum must be non-negative, got %d", s.Quantum)
	}
	if len(s.Processes) == 0 && s.Generator == nil {
		return fmt.Errorf("at least one process or a generator block required")
	}
	if len(s.Processes) > 0 && s.Generator != nil {
		return fmt.Errorf("processes and generator are mutually exclusive")
	}
	seen := make(map[string]bool, len(s.Processes))
	for i, p := range s.Processes {
		if err := validateProcess(&p, i); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("process[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	if s.Generator != nil {
		if err := s.Generator.Validate(); err != nil {
			return fmt.Errorf("generator: %w", err)
		}
	}
	return nil
}

func validateProcess(p *ProcessSpec, idx int) error {
	prefix := fmt.Sprintf("process[%d]", idx)
	if p.Name == "" {
		return fmt.Errorf("%s: name is required", prefix)
	}
	if p.ArrivalTime < 0 {
		return fmt.Errorf("%s (%s): arrival_time must be non-negative, got %d", prefix, p.Name, p.ArrivalTime)
	}
	if p.BurstTime <= 0 {
		return fmt.Errorf("%s (%s): burst_time must be positive, got %d", prefix, p.Name, p.BurstTime)
	}
	if p.Priority < 0 {
		return fmt.Errorf("%s (%s): priority must be >= 1, got %d", prefix, p.Name, p.Priority)
	}
	return nil
}

// ResolveAlgorithm returns the spec's algorithm, or fallback when unset.
func (s *WorkloadSpec) ResolveAlgorithm(fallback sim.Algorithm) (sim.Algorithm, error) {
	if s.Algorithm == "" {
		return fallback, nil
	}
	return sim.ParseAlgorithm(s.Algorithm)
}

// BuildProcesses validates the spec and returns its processes in file order,
// or the generated set when a generator block is present.
func (s *WorkloadSpec) BuildProcesses() ([]sim.Process, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Generator != nil {
		return GenerateProcesses(*s.Generator), nil
	}
	procs := make([]sim.Process, 0, len(s.Processes))
	defaulted := 0
	for _, p := range s.Processes {
		priority := p.Priority
		if priority == 0 {
			priority = sim.DefaultPriority
			defaulted++
		}
		procs = append(procs, sim.NewProcess(p.Name, p.ArrivalTime, p.BurstTime, priority))
	}
	if defaulted > 0 {
		logrus.Warnf("%d process(es) without priority; defaulted to %d", defaulted, sim.DefaultPriority)
	}
	return procs, nil
}
