package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/lox/interp"
	"github.com/sdecook/golox/internal/lox/parser"
	"github.com/sdecook/golox/internal/lox/resolver"
	"github.com/sdecook/golox/internal/lox/token"
)

// runLines executes src as a full program and returns the lines it
// printed, failing the test on any pipeline error.
func runLines(t *testing.T, src string) []string {
	t.Helper()

	toks, scanDiags := token.Scan(src)
	require.Empty(t, scanDiags)
	prog, parseDiags := parser.ParseProgram(toks)
	require.Empty(t, parseDiags)
	locals, resolveDiags := resolver.Resolve(prog)
	require.Empty(t, resolveDiags)

	var out bytes.Buffer
	err := interp.New(locals, &out).Run(prog)
	require.NoError(t, err)

	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestClosureCaptureIsIndependentPerInvocation(t *testing.T) {
	lines := runLines(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				return count;
			}
			return counter;
		}

		var a = makeCounter();
		var b = makeCounter();
		print a();
		print a();
		print b();
	`)
	assert.Equal(t, []string{"1", "2", "1"}, lines)
}

func TestInitializerAlwaysReturnsTheConstructedInstance(t *testing.T) {
	lines := runLines(t, `
		class Box {
			init(v) {
				this.v = v;
				return;
			}
		}
		var b = Box(42);
		print b.v;
		print b.init(99) == b;
	`)
	assert.Equal(t, []string{"42", "true"}, lines)
}

func TestMethodBindingCapturesReceiverAtExtraction(t *testing.T) {
	lines := runLines(t, `
		class Greeter {
			init(name) { this.name = name; }
			greet() { print "hi " + this.name; }
		}
		var g = Greeter("Ada");
		var m = g.greet;
		m();
	`)
	assert.Equal(t, []string{"hi Ada"}, lines)
}

func TestInstancePrintsClassNameInAngleBrackets(t *testing.T) {
	lines := runLines(t, `
		class Box {}
		print Box();
	`)
	assert.Equal(t, []string{"<Box instance>"}, lines)
}

func TestSuperDispatchesToParentBoundToCurrentThis(t *testing.T) {
	lines := runLines(t, `
		class Animal {
			speak() { print this.name + " makes a sound"; }
		}
		class Dog < Animal {
			init(name) { this.name = name; }
			speak() {
				super.speak();
				print this.name + " barks";
			}
		}
		Dog("Rex").speak();
	`)
	assert.Equal(t, []string{"Rex makes a sound", "Rex barks"}, lines)
}

func TestAndShortCircuitsWithoutEvaluatingRight(t *testing.T) {
	lines := runLines(t, `
		fun boom() { print "evaluated"; return true; }
		print false and boom();
	`)
	assert.Equal(t, []string{"false"}, lines)
}

func TestOrShortCircuitsWithoutEvaluatingRight(t *testing.T) {
	lines := runLines(t, `
		fun boom() { print "evaluated"; return false; }
		print true or boom();
	`)
	assert.Equal(t, []string{"true"}, lines)
}

func TestTruthinessOnlyFalseAndNilAreFalsey(t *testing.T) {
	lines := runLines(t, `
		print 0 and "zero is truthy";
		print "" and "empty string is truthy";
		print nil and "nil is falsey, this line is never printed as its own value";
		print false and "false is falsey";
	`)
	assert.Equal(t, []string{"zero is truthy", "empty string is truthy", "nil", "false"}, lines)
}

func TestMixedTypeEqualityIsFalseWithoutError(t *testing.T) {
	lines := runLines(t, `
		print 1 == "1";
		print nil == false;
		print 0 == false;
	`)
	assert.Equal(t, []string{"false", "false", "false"}, lines)
}

func TestRuntimeTypeErrorHaltsAndReportsLine(t *testing.T) {
	toks, _ := token.Scan("\"a\" - 1;")
	prog, diags := parser.ParseProgram(toks)
	require.Empty(t, diags)
	locals, diags := resolver.Resolve(prog)
	require.Empty(t, diags)

	var out bytes.Buffer
	err := interp.New(locals, &out).Run(prog)
	require.Error(t, err)
	assert.Equal(t, "Operands must be numbers.\n[line 1]", err.Error())
}
