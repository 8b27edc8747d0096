package main

import (
	"fmt"
	"os"

	"github.com/sdecook/golox/internal/lox/diag"
	"github.com/sdecook/golox/internal/lox/interp"
	"github.com/sdecook/golox/internal/lox/parser"
	"github.com/sdecook/golox/internal/lox/token"
	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <file>",
		Short: "Parse a single expression, evaluate it, and print its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			tokens, scanDiags := token.Scan(string(src))
			expr, parseDiags := parser.ParseExpression(tokens)

			diags := append(scanDiags, parseDiags...)
			if len(diags) > 0 {
				diag.RenderAll(os.Stderr, diags, !noColor)
				return exitWith(diag.WorstExitCode(diags))
			}

			it := interp.New(nil, os.Stdout)
			value, err := it.Eval(expr)
			if err != nil {
				renderRuntimeError(err)
				return exitWith(70)
			}
			fmt.Println(value.String())
			return nil
		},
	}
}
