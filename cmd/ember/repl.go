package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ember-lang/ember/interp"
)

func init() {
	rootCmd.AddCommand(newReplCmd())
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use: "repl",
		Short: "Start an interactive read-eval-print loop",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	i := interp.New(interp.Options{
		Stdin: os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Args: os.Args,
		BallastCells: ballastCells,
		Unrestricted: unrestricted,
	})
	_, err := i.REPL()
	return err
}
