package main

import "github.com/spf13/cobra"

var noColor bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "golox",
		Short:         "golox is a tree-walking interpreter for Lox",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	root.AddCommand(newTokenizeCmd(), newParseCmd(), newEvaluateCmd(), newRunCmd())
	return root
}
