package main

import (
	"fmt"
	"os"

	"github.com/sdecook/golox/internal/lox/diag"
	"github.com/sdecook/golox/internal/lox/token"
	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print the token stream produced by the scanner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			tokens, diags := token.Scan(string(src))
			for _, t := range tokens {
				fmt.Println(t.String())
			}
			diag.RenderAll(os.Stderr, diags, !noColor)

			return exitWith(diag.WorstExitCode(diags))
		},
	}
}
