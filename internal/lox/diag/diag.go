// Package diag defines the diagnostics shared by every stage of the
// pipeline (scanner, parser, resolver, interpreter) and the single place
// that renders them to a terminal.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Stage identifies which pipeline phase raised a Diagnostic. It maps
// directly onto the exit codes in spec §6/§7.
type Stage int

const (
	Lexical Stage = iota
	Syntax
	Static
	Runtime
)

// ExitCode returns the process exit code associated with the stage a
// Diagnostic belongs to.
func (s Stage) ExitCode() int {
	if s == Runtime {
		return 70
	}
	return 65
}

// Diagnostic is a single error or warning produced by the pipeline.
type Diagnostic struct {
	Stage   Stage
	Line    int
	Lexeme  string // optional; "" when not tied to a specific token
	AtEnd   bool   // true when Lexeme refers to EOF ("end")
	Message string
}

func (d Diagnostic) Error() string {
	var sb strings.Builder
	Render(&sb, d, false)
	return strings.TrimRight(sb.String(), "\n")
}

// Render writes d to w using the templates from spec §7:
//
//	compile-time: "[line N] Error[ at '<lex>']: <message>"
//	runtime:      "<message>\n[line N]"
//
// When useColor is true, the "Error" label is highlighted with fatih/color
// and, for compile-time diagnostics with a known Lexeme, a caret line
// follows whose width is the lexeme's display width as measured by
// go-runewidth (so wide runes count double).
func Render(w io.Writer, d Diagnostic, useColor bool) {
	errLabel := "Error"
	if useColor {
		errLabel = color.New(color.FgRed, color.Bold).Sprint("Error")
	}

	if d.Stage == Runtime {
		fmt.Fprintf(w, "%s\n[line %d]\n", d.Message, d.Line)
		return
	}

	where := ""
	switch {
	case d.AtEnd:
		where = " at end"
	case d.Lexeme != "":
		where = fmt.Sprintf(" at '%s'", d.Lexeme)
	}
	fmt.Fprintf(w, "[line %d] %s%s: %s\n", d.Line, errLabel, where, d.Message)

	if useColor && d.Lexeme != "" && !d.AtEnd {
		caretWidth := runewidth.StringWidth(d.Lexeme)
		if caretWidth < 1 {
			caretWidth = 1
		}
		fmt.Fprintf(w, "  %s\n", color.New(color.FgYellow).Sprint(strings.Repeat("^", caretWidth)))
	}
}

// RenderAll renders every diagnostic in order.
func RenderAll(w io.Writer, diags []Diagnostic, useColor bool) {
	for _, d := range diags {
		Render(w, d, useColor)
	}
}

// WorstExitCode returns the exit code for the most severe stage present in
// diags, or 0 if diags is empty. Runtime (70) only ever appears alone since
// the interpreter halts the pipeline at the first runtime error.
func WorstExitCode(diags []Diagnostic) int {
	code := 0
	for _, d := range diags {
		if c := d.Stage.ExitCode(); c > code {
			code = c
		}
	}
	return code
}
