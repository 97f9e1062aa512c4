// Derives per-process and run-wide scheduling metrics from a StepLog:
// turnaround, waiting and response times, CPU utilization, preemptions.

package sim

import (
	"fmt"
	"io"
	"sort"
)

// ProcessMetrics holds the timing outcome of one process.
type ProcessMetrics struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	ArrivalTime   int64  `json:"arrival_time" yaml:"arrival_time"`
	BurstTime     int64  `json:"burst_time" yaml:"burst_time"`
	Priority      int    `json:"priority" yaml:"priority"`
	FirstDispatch int64  `json:"first_dispatch" yaml:"first_dispatch"` // clock of the first dispatch
	Completion    int64  `json:"completion" yaml:"completion"`         // clock of termination
	Turnaround    int64  `json:"turnaround" yaml:"turnaround"`         // Completion - ArrivalTime
	Waiting       int64  `json:"waiting" yaml:"waiting"`               // Turnaround - BurstTime
	Response      int64  `json:"response" yaml:"response"`             // FirstDispatch - ArrivalTime
	Dispatches    int    `json:"dispatches" yaml:"dispatches"`
	Preemptions   int    `json:"preemptions" yaml:"preemptions"` // priority preemptions and quantum expiries
}

// Metrics aggregates statistics about one simulation run
// for final reporting.
type Metrics struct {
	Algorithm          Algorithm `json:"algorithm" yaml:"algorithm"`
	Makespan           int64     `json:"makespan" yaml:"makespan"`   // clock at the final step
	BusyTime           int64     `json:"busy_time" yaml:"busy_time"` // ticks with a process on the CPU
	IdleTime           int64     `json:"idle_time" yaml:"idle_time"`
	CPUUtilization     float64   `json:"cpu_utilization" yaml:"cpu_utilization"`
	Dispatches         int       `json:"dispatches" yaml:"dispatches"`
	Preemptions        int       `json:"preemptions" yaml:"preemptions"`
	QuantumExpirations int       `json:"quantum_expirations" yaml:"quantum_expirations"`
	AvgTurnaround      float64   `json:"avg_turnaround" yaml:"avg_turnaround"`
	AvgWaiting         float64   `json:"avg_waiting" yaml:"avg_waiting"`
	AvgResponse        float64   `json:"avg_response" yaml:"avg_response"`
	P90Waiting         float64   `json:"p90_waiting" yaml:"p90_waiting"`

	Processes []ProcessMetrics `json:"processes" yaml:"processes"` // input order
}

// ComputeMetrics replays log and derives its metrics. Returns nil for an empty log.
func ComputeMetrics(log *StepLog) *Metrics {
	first, ok := log.At(0)
	if !ok {
		return nil
	}
	final, _ := log.Final()

	m := &Metrics{Algorithm: log.Algorithm, Makespan: final.Time}
	index := make(map[string]int, len(first.Processes))
	m.Processes = make([]ProcessMetrics, len(first.Processes))
	for i, p := range first.Processes {
		index[p.ID] = i
		m.Processes[i] = ProcessMetrics{
			ID:            p.ID,
			Name:          p.Name,
			ArrivalTime:   p.ArrivalTime,
			BurstTime:     p.BurstTime,
			Priority:      p.Priority,
			FirstDispatch: -1,
		}
	}

	for _, s := range log.Steps {
		i, known := index[s.ProcessID]
		switch s.Kind {
		case EventDispatch:
			m.Dispatches++
			if known {
				pm := &m.Processes[i]
				pm.Dispatches++
				if pm.FirstDispatch < 0 {
					pm.FirstDispatch = s.Time
				}
			}
		case EventTick:
			m.BusyTime++
		case EventPreempt, EventQuantumExpired:
			if s.Kind == EventPreempt {
				m.Preemptions++
			} else {
				m.QuantumExpirations++
			}
			if known {
				m.Processes[i].Preemptions++
			}
		case EventTerminate:
			if known {
				m.Processes[i].Completion = s.Time
			}
		}
	}

	m.IdleTime = m.Makespan - m.BusyTime
	if m.Makespan > 0 {
		m.CPUUtilization = float64(m.BusyTime) / float64(m.Makespan)
	}

	turnarounds := make([]int64, len(m.Processes))
	waits := make([]int64, len(m.Processes))
	responses := make([]int64, len(m.Processes))
	for i := range m.Processes {
		pm := &m.Processes[i]
		pm.Turnaround = pm.Completion - pm.ArrivalTime
		pm.Waiting = pm.Turnaround - pm.BurstTime
		pm.Response = pm.FirstDispatch - pm.ArrivalTime
		turnarounds[i], waits[i], responses[i] = pm.Turnaround, pm.Waiting, pm.Response
	}
	m.AvgTurnaround = CalculateMean(turnarounds)
	m.AvgWaiting = CalculateMean(waits)
	m.AvgResponse = CalculateMean(responses)
	sort.Slice(waits, func(i, j int) bool { return waits[i] < waits[j] })
	m.P90Waiting = CalculatePercentile(waits, 90)
	return m
}

// CompletionOrder returns process names in order of termination.
func (m *Metrics) CompletionOrder() []string {
	order := make([]ProcessMetrics, len(m.Processes))
	copy(order, m.Processes)
	sortByCompletion(order)
	names := make([]string, len(order))
	for i, pm := range order {
		names[i] = pm.Name
	}
	return names
}

// Print writes the aggregated metrics in a human-readable block.
func (m *Metrics) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "=== Simulation Metrics ===")
	_, _ = fmt.Fprintf(w, "Algorithm            : %s\n", m.Algorithm.Label())
	_, _ = fmt.Fprintf(w, "Makespan             : %d ticks\n", m.Makespan)
	_, _ = fmt.Fprintf(w, "CPU Utilization      : %.2f%% (busy %d, idle %d)\n", 100*m.CPUUtilization, m.BusyTime, m.IdleTime)
	_, _ = fmt.Fprintf(w, "Dispatches           : %d\n", m.Dispatches)
	_, _ = fmt.Fprintf(w, "Preemptions          : %d\n", m.Preemptions)
	_, _ = fmt.Fprintf(w, "Quantum Expirations  : %d\n", m.QuantumExpirations)
	_, _ = fmt.Fprintf(w, "Average Turnaround   : %.2f ticks\n", m.AvgTurnaround)
	_, _ = fmt.Fprintf(w, "Average Waiting      : %.2f ticks\n", m.AvgWaiting)
	_, _ = fmt.Fprintf(w, "Average Response     : %.2f ticks\n", m.AvgResponse)
	_, _ = fmt.Fprintf(w, "P90 Waiting          : %.2f ticks\n", m.P90Waiting)
}
