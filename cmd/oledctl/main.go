// Command oledctl drives the online ILP learner from the command line: it
// streams a YAML example file through a Learner, reports cumulative
// statistics, can pretty-print the resulting theory, and can expose the
// same statistics as Prometheus metrics for a longer-running demo.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "oledctl",
		Short: "oledctl — drive the online event-calculus rule learner",
		Long:  "oledctl runs the online ILP learner over a stream of ground event-calculus examples, reporting the induced theory and its running statistics.",
	}

	root.AddCommand(
		runCmd(),
		renderCmd(),
		serveMetricsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
