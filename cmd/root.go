package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
	"github.com/inference-sim/schedsim/sim/workload"
)

var (
	// CLI flags shared by run and play
	algorithmName string // Scheduling algorithm (overrides the workload file)
	quantum       int    // RoundRobin time slice; 0 = workload file value or default
	workloadPath  string // YAML workload file
	csvPath       string // CSV process table
	logLevel      string // Log verbosity level
	traceLevel    string // Decision trace level

	// run-only flags
	outputFormat string // table, json or yaml
	stepIndex    int    // print only this step; -1 = all
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Step-by-step CPU scheduling simulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates a workload and prints its step log and metrics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scheduling simulation and print every step",
	Run: func(cmd *cobra.Command, args []string) {
		in, err := loadInput()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !isValidOutputFormat(outputFormat) {
			logrus.Fatalf("Unknown output format %q; valid: table, json, yaml", outputFormat)
		}

		log, tr, err := in.simulate()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		res := newRunResult(log, tr)
		if stepIndex >= 0 {
			if err := res.selectStep(stepIndex); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if err := writeResult(cmd.OutOrStdout(), outputFormat, res); err != nil {
			logrus.Fatalf("Writing output failed: %v", err)
		}
	},
}

// runInput is the resolved algorithm, quantum and process set of one invocation.
type runInput struct {
	algorithm sim.Algorithm
	quantum   int
	processes []sim.Process
	trace     trace.TraceLevel
}

// loadInput resolves the input flags. --workload and --csv are mutually
// exclusive; --algorithm and --quantum override values from the workload file.
func loadInput() (*runInput, error) {
	if (workloadPath == "") == (csvPath == "") {
		return nil, fmt.Errorf("exactly one of --workload or --csv is required")
	}
	if !trace.IsValidTraceLevel(traceLevel) {
		return nil, fmt.Errorf("unknown trace level %q; valid: none, decisions", traceLevel)
	}
	in := &runInput{quantum: quantum, trace: trace.TraceLevel(traceLevel)}

	if algorithmName != "" {
		alg, err := sim.ParseAlgorithm(algorithmName)
		if err != nil {
			return nil, err
		}
		in.algorithm = alg
	}

	if workloadPath != "" {
		spec, err := workload.LoadWorkloadSpec(workloadPath)
		if err != nil {
			return nil, err
		}
		if in.algorithm == "" {
			if in.algorithm, err = spec.ResolveAlgorithm(""); err != nil {
				return nil, err
			}
		}
		if in.quantum == 0 {
			in.quantum = spec.Quantum
		}
		if in.processes, err = spec.BuildProcesses(); err != nil {
			return nil, fmt.Errorf("workload %s: %w", workloadPath, err)
		}
	} else {
		procs, err := workload.LoadProcessesCSVFile(csvPath)
		if err != nil {
			return nil, err
		}
		in.processes = procs
	}

	if in.algorithm == "" {
		return nil, fmt.Errorf("no algorithm given; use --algorithm (%v)", sim.AlgorithmNames())
	}
	logrus.Infof("Loaded %d processes for %s", len(in.processes), in.algorithm.Label())
	return in, nil
}

func (in *runInput) simulate() (*sim.StepLog, *trace.SimulationTrace, error) {
	var tr *trace.SimulationTrace
	if in.trace == trace.TraceLevelDecisions {
		tr = trace.NewSimulationTrace(trace.TraceConfig{Level: in.trace})
	}
	log, err := sim.Simulate(in.algorithm, in.processes, sim.Config{Quantum: in.quantum, Trace: tr})
	return log, tr, err
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addInputFlags registers the flags that select a workload.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&algorithmName, "algorithm", "", "Scheduling algorithm: FCFS, SJF, Priority, RoundRobin")
	cmd.Flags().IntVar(&quantum, "quantum", 0, "Round Robin time quantum in ticks (default 2)")
	cmd.Flags().StringVar(&workloadPath, "workload", "", "Path to YAML workload file")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to CSV process table (name,burst,arrival[,priority])")
	cmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level: none, decisions")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addInputFlags(runCmd)
	runCmd.Flags().StringVar(&outputFormat, "output", "table", "Output format: table, json, yaml")
	runCmd.Flags().IntVar(&stepIndex, "step", -1, "Print only the step at this index")

	rootCmd.AddCommand(runCmd)
}
