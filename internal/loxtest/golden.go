// Package loxtest is an in-process descendant of the teacher's test/
// package: rather than shelling out to a separate reference binary and
// diffing stdout/stderr/exit code (there being only one implementation
// here), it runs a Lox program straight through the interp package and
// diffs the result against a recorded transcript.
package loxtest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/sdecook/golox/internal/lox/diag"
	"github.com/sdecook/golox/internal/lox/interp"
	"github.com/sdecook/golox/internal/lox/parser"
	"github.com/sdecook/golox/internal/lox/resolver"
	"github.com/sdecook/golox/internal/lox/token"
)

// Result is the captured outcome of one run, the in-process analogue of
// the teacher's TestResult.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type diagnosable interface {
	AsDiagnostic() diag.Diagnostic
}

// Run drives src through the same tokenize/parse/resolve/interpret
// pipeline cmd/golox's `run` subcommand uses.
func Run(src string) Result {
	var stdout, stderr bytes.Buffer

	tokens, scanDiags := token.Scan(src)
	prog, parseDiags := parser.ParseProgram(tokens)
	if diags := append(scanDiags, parseDiags...); len(diags) > 0 {
		diag.RenderAll(&stderr, diags, false)
		return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: diag.WorstExitCode(diags)}
	}

	locals, resolveDiags := resolver.Resolve(prog)
	if len(resolveDiags) > 0 {
		diag.RenderAll(&stderr, resolveDiags, false)
		return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: diag.WorstExitCode(resolveDiags)}
	}

	if err := interp.New(locals, &stdout).Run(prog); err != nil {
		if d, ok := err.(diagnosable); ok {
			diag.Render(&stderr, d.AsDiagnostic(), false)
		} else {
			fmt.Fprintln(&stderr, err)
		}
		return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: 70}
	}
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: 0}
}

// parseGolden reads the "EXIT n / --- stdout --- / ... / --- stderr --- /
// ..." transcript format used by testdata/*.golden.
func parseGolden(raw string) Result {
	var r Result
	head, rest, _ := strings.Cut(raw, "--- stdout ---\n")
	fmt.Sscanf(strings.TrimSpace(head), "EXIT %d", &r.ExitCode)

	stdout, stderr, _ := strings.Cut(rest, "--- stderr ---\n")
	r.Stdout = stdout
	r.Stderr = stderr
	return r
}

const width = 72

// RunGolden runs the .lox file at path and compares it against its
// sibling .golden transcript, printing a fatih/color pass/fail line laid
// out like the teacher's TestCase.PrintResult.
func RunGolden(t *testing.T, path string) {
	t.Helper()
	name := filepath.Base(path)

	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	goldenPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".golden"
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatal(err)
	}

	want := parseGolden(string(golden))
	got := Run(string(src))

	if diff := cmp.Diff(want, got); diff != "" {
		spacing := strings.Repeat(" ", max(1, width-len("  [failed] ")-len(name)))
		fmt.Printf("  [%s]%s%s\n", color.RedString("failed"), spacing, name)
		t.Errorf("%s: golden mismatch (-want +got):\n%s", name, diff)
		return
	}
	spacing := strings.Repeat(" ", max(1, width-len("  [passed] ")-len(name)))
	fmt.Printf("  [%s]%s%s\n", color.GreenString("passed"), spacing, name)
}
