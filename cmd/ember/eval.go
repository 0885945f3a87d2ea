package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ember-lang/ember/interp"
)

func init() {
	rootCmd.AddCommand(newEvalCmd())
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use: "eval <source>",
		Short: "Evaluate a single expression and print its result",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(args[0])
		},
	}
}

func runEval(src string) error {
	i := interp.New(interp.Options{
		Stdin: os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Args: os.Args,
		BallastCells: ballastCells,
		Unrestricted: unrestricted,
	})
	v, err := i.Eval(src)
	if err != nil {
		return err
	}
	fmt.Println(interp.Mold(v))
	return nil
}
