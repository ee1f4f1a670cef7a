// Command dbrx is a thin cobra-driven wrapper over propval's
// merge/substitute pipeline and the app package's run-to-completion
// entry point, with a get-config/run subcommand split and flag set
// modeled on the getopt-parsed CLI of the engine this package wraps,
// rendered with cobra/pflag the way a multi-command ops tool
// composes its subcommand tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "dbrx/examplebrics"
)

func main() {
	root := &cobra.Command{
		Use:   "dbrx",
		Short: "Run or inspect a dataflow bric configuration",
	}
	root.AddCommand(newGetConfigCmd())
	root.AddCommand(newRunCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
