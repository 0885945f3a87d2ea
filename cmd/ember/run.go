package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ember-lang/ember/interp"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use: "run <file>",
		Short: "Evaluate a script file",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func runFile(path string) error {
	i := interp.New(interp.Options{
		Stdin: os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Args: os.Args,
		BallastCells: ballastCells,
		Unrestricted: unrestricted,
	})
	v, err := i.EvalPath(path)
	if err != nil {
		return err
	}
	fmt.Println(interp.Mold(v))
	return nil
}
