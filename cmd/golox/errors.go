package main

import (
	"fmt"
	"os"

	"github.com/sdecook/golox/internal/lox/diag"
)

// diagnosable is satisfied by interp's runtime errors, letting this package
// render them through the same colorized template as every other stage
// without interp exporting its error type.
type diagnosable interface {
	AsDiagnostic() diag.Diagnostic
}

func renderRuntimeError(err error) {
	if d, ok := err.(diagnosable); ok {
		diag.Render(os.Stderr, d.AsDiagnostic(), !noColor)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
