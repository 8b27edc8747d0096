package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/lox/ast"
	"github.com/sdecook/golox/internal/lox/parser"
	"github.com/sdecook/golox/internal/lox/token"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	toks, diags := token.Scan(src)
	require.Empty(t, diags)
	expr, diags := parser.ParseExpression(toks)
	require.Empty(t, diags)
	require.NotNil(t, expr)
	return expr
}

func TestParseExpressionParenthesisedForm(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":     "(+ 1.0 (* 2.0 3.0))",
		"-5":            "(- 5.0)",
		"!true":         "(! true)",
		"(1 + 2)":       "(group (+ 1.0 2.0))",
		"1 == 2":        "(== 1.0 2.0)",
		"true and false": "(and true false)",
	}
	for src, want := range cases {
		expr := parseExpr(t, src)
		assert.Equal(t, want, ast.Print(expr))
	}
}

func TestParseExpressionInvalidSyntaxReportsDiagnostic(t *testing.T) {
	toks, _ := token.Scan("(1 + 2")
	expr, diags := parser.ParseExpression(toks)
	assert.Nil(t, expr)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Expect ')' after expression.")
}

func TestParseProgramSynchronizesPastErrors(t *testing.T) {
	src := `
		var a = ;
		print "still parses";
	`
	toks, _ := token.Scan(src)
	prog, diags := parser.ParseProgram(toks)
	require.Len(t, diags, 1)
	require.Len(t, prog.Stmts, 1)

	printStmt, ok := prog.Stmts[0].(*ast.PrintStmt)
	require.True(t, ok)
	assert.Equal(t, `"still parses"`, printStmt.Expr.String())
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	src := `class Dog < Animal { speak() { print "bark"; } }`
	toks, _ := token.Scan(src)
	prog, diags := parser.ParseProgram(toks)
	require.Empty(t, diags)
	require.Len(t, prog.Stmts, 1)

	class, ok := prog.Stmts[0].(*ast.ClassStmt)
	require.True(t, ok)
	assert.Equal(t, "Dog", class.Name.Lexeme)
	require.NotNil(t, class.Superclass)
	assert.Equal(t, "Animal", class.Superclass.Name.Lexeme)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "speak", class.Methods[0].Name.Lexeme)
}

func TestAssignToNonVariableTargetIsInvalid(t *testing.T) {
	toks, _ := token.Scan(`1 + 2 = 3;`)
	_, diags := parser.ParseProgram(toks)
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "Invalid assignment target.")
}
