package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inference-sim/schedsim/sim"
)

// algorithmsCmd lists the supported scheduling algorithms
var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the supported scheduling algorithms",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sim.AlgorithmNames() {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, sim.Algorithm(name).Label())
		}
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}
