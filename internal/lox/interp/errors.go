package interp

import (
	"fmt"

	"github.com/sdecook/golox/internal/lox/diag"
)

// runtimeError is a true evaluation failure (spec §7 "Runtime"). It is
// plumbed up through ordinary Go error returns rather than os.Exit so the
// interpreter stays usable as a library; cmd/golox is the only place that
// turns one into a process exit.
type runtimeError struct {
	diag.Diagnostic
}

func newRuntimeError(line int, format string, args ...any) *runtimeError {
	return &runtimeError{diag.Diagnostic{
		Stage:   diag.Runtime,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}}
}

func (e *runtimeError) Error() string { return e.Diagnostic.Error() }

// AsDiagnostic exposes the underlying diag.Diagnostic so cmd/golox can
// render it with the same colorized template every other stage uses,
// without this package exporting runtimeError itself.
func (e *runtimeError) AsDiagnostic() diag.Diagnostic { return e.Diagnostic }

// undefinedVariableError is raised by Environment, which has no line
// number to attach; the interpreter converts it to a runtimeError carrying
// the referencing node's line (see asRuntimeError).
type undefinedVariableError struct{ name string }

func (e *undefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.name)
}

func undefinedVariable(name string) error {
	return &undefinedVariableError{name: name}
}

// undefinedPropertyError is raised by Instance.Get, which likewise has no
// line number to attach.
type undefinedPropertyError struct{ name string }

func (e *undefinedPropertyError) Error() string {
	return fmt.Sprintf("Undefined property '%s'.", e.name)
}

// asRuntimeError attaches line to err if it is one of the line-less
// sentinel errors above, and passes everything else through unchanged (in
// particular, it is a no-op for *runtimeError and *returnSignal).
func asRuntimeError(err error, line int) error {
	switch e := err.(type) {
	case *undefinedVariableError:
		return newRuntimeError(line, e.Error())
	case *undefinedPropertyError:
		return newRuntimeError(line, e.Error())
	default:
		return err
	}
}

// returnSignal is not an error; it is the control-flow unwind a Return
// statement uses to escape arbitrarily nested blocks and reach exactly the
// enclosing function invocation (spec §4.5, §9 "Return as control flow").
// It satisfies the error interface purely so it can travel the same
// plumbing as a runtimeError; Function.Call is where it is caught with a
// type assertion and turned back into a value.
type returnSignal struct {
	Value Object
}

func (r *returnSignal) Error() string { return "return" }
