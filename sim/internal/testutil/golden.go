// Package testutil provides shared test infrastructure for the schedsim engine.
// It holds the golden dataset types and assertion helpers used across
// sim/ and its sub-package tests. It must not import sim.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified scheduling scenario.
type GoldenTestCase struct {
	Name      string          `json:"name"`
	Algorithm string          `json:"algorithm"`
	Quantum   int             `json:"quantum"`
	Processes []GoldenProcess `json:"processes"`
	Expected  GoldenOutcome   `json:"expected"`
}

// GoldenProcess is an input process without an ID; tests assign one.
type GoldenProcess struct {
	Name        string `json:"name"`
	ArrivalTime int64  `json:"arrival_time"`
	BurstTime   int64  `json:"burst_time"`
	Priority    int    `json:"priority"`
}

// GoldenOutcome holds the exact expected results of a scenario.
type GoldenOutcome struct {
	Completion         map[string]int64 `json:"completion"` // process name → termination clock
	CompletionOrder    []string         `json:"completion_order"`
	Makespan           int64            `json:"makespan"`
	Dispatches         int              `json:"dispatches"`
	Preemptions        int              `json:"preemptions"`
	QuantumExpirations int              `json:"quantum_expirations"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}

	return &dataset
}

// WriteTempFile writes content into a file under t.TempDir and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
