package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

var validOutputFormats = map[string]bool{"table": true, "json": true, "yaml": true}

func isValidOutputFormat(f string) bool {
	return validOutputFormats[f]
}

// indexedStep is a step together with its position in the log.
type indexedStep struct {
	Index    int `json:"index" yaml:"index"`
	sim.Step `yaml:",inline"`
}

// runResult is everything `run` prints, in every output format.
type runResult struct {
	Algorithm sim.Algorithm       `json:"algorithm" yaml:"algorithm"`
	Label     string              `json:"label" yaml:"label"`
	Quantum   int                 `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Total     int                 `json:"total_steps" yaml:"total_steps"`
	Steps     []indexedStep       `json:"steps" yaml:"steps"`
	Gantt     []sim.TimeSlice     `json:"gantt,omitempty" yaml:"gantt,omitempty"`
	Metrics   *sim.Metrics        `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Trace     *trace.TraceSummary `json:"trace,omitempty" yaml:"trace,omitempty"`
}

func newRunResult(log *sim.StepLog, tr *trace.SimulationTrace) *runResult {
	res := &runResult{
		Algorithm: log.Algorithm,
		Label:     log.Algorithm.Label(),
		Quantum:   log.Quantum,
		Total:     log.Len(),
		Steps:     make([]indexedStep, log.Len()),
		Gantt:     sim.GanttSlices(log),
		Metrics:   sim.ComputeMetrics(log),
	}
	for i, s := range log.Steps {
		res.Steps[i] = indexedStep{Index: i, Step: s}
	}
	if tr.Enabled() {
		res.Trace = trace.Summarize(tr)
	}
	return res
}

// selectStep narrows the result to a single step and drops the run summaries.
func (r *runResult) selectStep(i int) error {
	if i < 0 || i >= len(r.Steps) {
		return fmt.Errorf("step %d out of range [0, %d)", i, len(r.Steps))
	}
	r.Steps = r.Steps[i : i+1]
	r.Gantt, r.Metrics, r.Trace = nil, nil, nil
	return nil
}

func writeResult(w io.Writer, format string, r *runResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		renderTable(w, r)
		return nil
	}
}

func renderTable(w io.Writer, r *runResult) {
	outputTitle(w, r.Label)
	for _, s := range r.Steps {
		outputStep(w, r.Algorithm, s, r.Total)
	}
	renderSummary(w, r)
}

// renderSummary prints the Gantt schedule, metrics and trace summary when present.
func renderSummary(w io.Writer, r *runResult) {
	if len(r.Gantt) > 0 {
		outputGantt(w, r.Gantt)
	}
	if r.Metrics != nil {
		outputSchedule(w, r.Metrics)
		r.Metrics.Print(w)
	}
	if r.Trace != nil {
		outputTraceSummary(w, r.Trace)
	}
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
	_, _ = fmt.Fprintln(w, " ", title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
}

// stepColumns returns the process table header for alg. Arrival is shown
// only for FCFS; Remaining for the strategies that track partial progress;
// Priority only for Priority.
func stepColumns(alg sim.Algorithm) []string {
	cols := []string{"Process"}
	if alg == sim.AlgorithmFCFS {
		cols = append(cols, "Arrival")
	}
	cols = append(cols, "Burst")
	if alg != sim.AlgorithmFCFS {
		cols = append(cols, "Remaining")
	}
	if alg == sim.AlgorithmPriority {
		cols = append(cols, "Priority")
	}
	return append(cols, "State")
}

func stepRow(alg sim.Algorithm, p sim.Process) []string {
	row := []string{p.Name}
	if alg == sim.AlgorithmFCFS {
		row = append(row, strconv.FormatInt(p.ArrivalTime, 10))
	}
	row = append(row, strconv.FormatInt(p.BurstTime, 10))
	if alg != sim.AlgorithmFCFS {
		row = append(row, strconv.FormatInt(p.RemainingTime, 10))
	}
	if alg == sim.AlgorithmPriority {
		row = append(row, strconv.Itoa(p.Priority))
	}
	return append(row, string(p.State))
}

// stepRows renders the snapshot sorted by process name.
func stepRows(alg sim.Algorithm, procs []sim.Process) [][]string {
	sorted := make([]sim.Process, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	rows := make([][]string, len(sorted))
	for i, p := range sorted {
		rows[i] = stepRow(alg, p)
	}
	return rows
}

func outputStep(w io.Writer, alg sim.Algorithm, s indexedStep, total int) {
	_, _ = fmt.Fprintf(w, "\nStep %d / %d   t=%d   %s\n", s.Index+1, total, s.Time, s.Description)
	table := tablewriter.NewWriter(w)
	table.SetHeader(stepColumns(alg))
	table.AppendBulk(stepRows(alg, s.Processes))
	table.Render()
}

func outputGantt(w io.Writer, gantt []sim.TimeSlice) {
	_, _ = fmt.Fprintln(w, "\nGantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, g := range gantt {
		padding := strings.Repeat(" ", max(0, (8-len(g.Name))/2))
		_, _ = fmt.Fprint(w, padding, g.Name, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, g := range gantt {
		_, _ = fmt.Fprint(w, g.Start, "\t")
		if i == len(gantt)-1 {
			_, _ = fmt.Fprint(w, g.Stop)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func outputSchedule(w io.Writer, m *sim.Metrics) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	rows := make([][]string, len(m.Processes))
	for i, pm := range m.Processes {
		rows[i] = []string{
			pm.Name,
			strconv.Itoa(pm.Priority),
			strconv.FormatInt(pm.BurstTime, 10),
			strconv.FormatInt(pm.ArrivalTime, 10),
			strconv.FormatInt(pm.Waiting, 10),
			strconv.FormatInt(pm.Turnaround, 10),
			strconv.FormatInt(pm.Completion, 10),
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", m.AvgTurnaround),
		fmt.Sprintf("Makespan\n%d", m.Makespan)})
	table.Render()
}

func outputTraceSummary(w io.Writer, s *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "=== Decision Trace ===")
	_, _ = fmt.Fprintf(w, "Selections           : %d (%d processes)\n", s.TotalSelections, s.UniqueProcesses)
	_, _ = fmt.Fprintf(w, "Priority Preemptions : %d\n", s.PriorityPreemptions)
	_, _ = fmt.Fprintf(w, "Quantum Expirations  : %d\n", s.QuantumExpirations)
	names := make([]string, 0, len(s.SelectionDistribution))
	for n := range s.SelectionDistribution {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		_, _ = fmt.Fprintf(w, "  %-18s dispatched %d, preempted %d\n", n, s.SelectionDistribution[n], s.PreemptedDistribution[n])
	}
}
