package main

import (
	"fmt"
	"os"

	"github.com/sdecook/golox/internal/lox/diag"
	"github.com/sdecook/golox/internal/lox/parser"
	"github.com/sdecook/golox/internal/lox/token"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a single expression and print its parenthesised form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			tokens, scanDiags := token.Scan(string(src))
			expr, parseDiags := parser.ParseExpression(tokens)

			diags := append(scanDiags, parseDiags...)
			if len(diags) == 0 {
				fmt.Println(expr.String())
			}
			diag.RenderAll(os.Stderr, diags, !noColor)

			return exitWith(diag.WorstExitCode(diags))
		},
	}
}
