// Package sim provides the core CPU scheduling simulation engine for schedsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (new → ready → running → terminated) and state machine
//   - step.go: Step and StepLog, the replayable record every strategy produces
//   - simulator.go: the shared clock/admission engine and the Simulate driver
//   - scheduler.go: the Scheduler interface, FCFS and SJF
//   - priority.go, round_robin.go: the preemptive strategies
//   - metrics.go, gantt.go: derived views of a finished StepLog
//
// # Architecture
//
// The sim package defines the data model and the four strategies; supporting
// code lives in sub-packages:
//   - sim/trace/: decision trace recording (selections, preemptions)
//   - sim/workload/: YAML, CSV and seeded random process-set loaders
//   - sim/replay/: stateful replay sessions (cursor, seek, auto-play)
//
// # Key Interfaces
//
//   - Scheduler: consume a process set and a Config, return a complete StepLog
//
// Every strategy works on private copies of its input and returns a log whose
// snapshots are independent values, so a log can be stepped through in any
// order without re-running the strategy.
package sim
