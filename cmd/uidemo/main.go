// Command uidemo drives a small sample view tree through the GPU
// resource coordinator and the Run loop, offscreen, using the null
// driver. It exists to exercise the core end to end from a single
// entry point rather than to render anything a user would look at.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "uidemo",
		Short: "Drive a sample view tree through the GPU coordinator",
		Long: `uidemo wires the view tree and the GPU resource coordinator
together and runs them for a handful of frames, entirely offscreen
against the null driver. It exists to exercise the core end to end
from a single entry point.`,
		Example: `  # Run 60 frames offscreen and exit
  uidemo run --frames 60

  # Print the build version
  uidemo version`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging(debug)
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
