// Command ember is a thin cobra front-end over the interp package: it
// parses flags into interp.Options and hands off to New(...).Eval /
// .REPL / .EvalPath. No interpreter logic lives here.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	unrestricted bool
	ballastCells int
)

var rootCmd = &cobra.Command{
	Use: "ember",
	Short: "Run and explore ember source",
	Long: `ember is the command-line front end for the ember language
interpreter: evaluate a single expression, run a script file, or drop
into an interactive REPL.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&unrestricted, "unrestricted", false,
		"allow FFI/process/environment access from evaluated code")
	rootCmd.PersistentFlags().IntVar(&ballastCells, "ballast", 0,
		"GC ballast cell count before the first recycle (0 uses the default)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
