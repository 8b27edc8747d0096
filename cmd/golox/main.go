// Command golox is the Lox interpreter's command-line front end: a thin
// cobra dispatcher over the four pipeline stages in internal/lox (spec §6).
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitError carries a specific process exit code through cobra's error
// return without cobra printing anything extra for it (RunE already wrote
// diagnostics to stderr itself).
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// exitWith returns nil for a clean run and an *exitError otherwise, so
// RunE's caller can turn it into os.Exit without cobra layering its own
// "Error:" prefix on top of diagnostics already rendered to stderr.
func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}
