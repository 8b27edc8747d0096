package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sdecook/golox/internal/lox/diag"
	"github.com/sdecook/golox/internal/lox/interp"
	"github.com/sdecook/golox/internal/lox/parser"
	"github.com/sdecook/golox/internal/lox/resolver"
	"github.com/sdecook/golox/internal/lox/token"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a full program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				return exitWith(runFile(args[0]))
			}
			return watchAndRun(args[0])
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the script whenever the source file changes")
	return cmd
}

// runFile executes path once and returns the process exit code it earns,
// per spec §6's table for `run`.
func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	tokens, scanDiags := token.Scan(string(src))
	prog, parseDiags := parser.ParseProgram(tokens)
	diags := append(scanDiags, parseDiags...)
	if len(diags) > 0 {
		diag.RenderAll(os.Stderr, diags, !noColor)
		return diag.WorstExitCode(diags)
	}

	locals, resolveDiags := resolver.Resolve(prog)
	if len(resolveDiags) > 0 {
		diag.RenderAll(os.Stderr, resolveDiags, !noColor)
		return diag.WorstExitCode(resolveDiags)
	}

	it := interp.New(locals, os.Stdout)
	if err := it.Run(prog); err != nil {
		renderRuntimeError(err)
		return 70
	}
	return 0
}

// watchAndRun re-runs path on every write, purely a development
// convenience: it adds no language semantics, and each run goes through
// runFile exactly as a one-shot `run` would (spec §6).
func watchAndRun(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "watching %s for changes (ctrl-c to stop)\n", path)
	runFile(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for event := range watcher.Events {
		eventAbs, err := filepath.Abs(event.Name)
		if err != nil || eventAbs != abs {
			continue
		}
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			continue
		}
		fmt.Fprintln(os.Stderr, "----------------------------------------")
		runFile(path)
	}
	return nil
}
