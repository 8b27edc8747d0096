package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/lox/ast"
	"github.com/sdecook/golox/internal/lox/parser"
	"github.com/sdecook/golox/internal/lox/resolver"
	"github.com/sdecook/golox/internal/lox/token"
)

func resolveSrc(t *testing.T, src string) (*ast.Program, resolver.Locals, []string) {
	t.Helper()
	toks, scanDiags := token.Scan(src)
	require.Empty(t, scanDiags)
	prog, parseDiags := parser.ParseProgram(toks)
	require.Empty(t, parseDiags)

	locals, diags := resolver.Resolve(prog)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return prog, locals, msgs
}

// resolverSoundness: a Variable reference nested three blocks inside its
// declaration must resolve to hop depth 3.
func TestResolverSoundnessHopDepth(t *testing.T) {
	src := `
		{
			var a = 1;
			{
				{
					{
						print a;
					}
				}
			}
		}
	`
	_, locals, diags := resolveSrc(t, src)
	require.Empty(t, diags)
	require.Len(t, locals, 1)

	for _, depth := range locals {
		assert.Equal(t, 3, depth)
	}
}

func TestResolverRejectsSelfReferentialInitializer(t *testing.T) {
	_, _, diags := resolveSrc(t, `{ var a = a; }`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Can't read local variable in its own initializer.")
}

func TestResolverRejectsShadowingRedeclaration(t *testing.T) {
	_, _, diags := resolveSrc(t, `{ var a = 1; var a = 2; }`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Already a variable with this name in this scope.")
}

func TestResolverRejectsReturnOutsideFunction(t *testing.T) {
	_, _, diags := resolveSrc(t, `return 1;`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Can't return from top-level code.")
}

func TestResolverRejectsReturnValueFromInitializer(t *testing.T) {
	_, _, diags := resolveSrc(t, `
		class C {
			init() { return 1; }
		}
	`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Can't return a value from an initializer.")
}

func TestResolverRejectsThisOutsideClass(t *testing.T) {
	_, _, diags := resolveSrc(t, `print this;`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Can't use 'this' outside of a class.")
}

func TestResolverRejectsSuperWithoutSuperclass(t *testing.T) {
	_, _, diags := resolveSrc(t, `
		class C {
			m() { super.m(); }
		}
	`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Can't use 'super' without a superclass.")
}

func TestResolverRejectsClassInheritingFromItself(t *testing.T) {
	_, _, diags := resolveSrc(t, `class C < C {}`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "A class can't inherit from itself.")
}
