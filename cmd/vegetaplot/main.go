// vegetaplot renders latency plot inputs to PNG charts headlessly.
//
//	vegetaplot render results.json --out-dir plots --filename latency.png
//	vegetaplot render results.csv --parquet latency.parquet
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tsenart/vegeta/src/logger"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vegetaplot",
		Short:         "Render vegeta latency series to PNG charts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vegetaplot v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	})
	root.AddCommand(newRenderCmd())

	cobra.OnFinalize(logger.Sync)
	return root
}
