// main.go
//
// Entry point for schedsim; CLI handling lives in the Cobra commands under cmd/.

package main

import (
	"github.com/inference-sim/schedsim/cmd"
)

func main() {
	cmd.Execute()
}
