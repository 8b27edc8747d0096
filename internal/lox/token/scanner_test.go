package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/lox/token"
)

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, diags := token.Scan("(){},.-+;*!= ==<=>=!<>/")
	require.Empty(t, diags)

	types := make([]token.Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	assert.Equal(t, []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.BANG, token.LESS, token.GREATER, token.SLASH, token.EOF,
	}, types)
}

func TestScanNumberLiteralCanonicalForm(t *testing.T) {
	toks, diags := token.Scan("123\n45.67")
	require.Empty(t, diags)
	require.Len(t, toks, 3) // two numbers plus EOF

	assert.Equal(t, "123.0", toks[0].Literal)
	assert.Equal(t, "45.67", toks[1].Literal)
}

func TestScanMultilineStringTracksLineNumber(t *testing.T) {
	src := "\"line one\nline two\" 1"
	toks, diags := token.Scan(src)
	require.Empty(t, diags)
	require.Len(t, toks, 3)

	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "line one\nline two", toks[0].Literal)
	// the NUMBER token after the string must report the line it actually
	// starts on, not the string's starting line
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanUnterminatedStringReportsLexicalError(t *testing.T) {
	_, diags := token.Scan(`"unterminated`)
	require.Len(t, diags, 1)
	assert.Equal(t, "Unterminated string.", diags[0].Message)
}

func TestScanUnexpectedCharacterReportsAndContinues(t *testing.T) {
	toks, diags := token.Scan("@1")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unexpected character")

	// scanning resumes after the bad character instead of aborting
	require.Len(t, toks, 2)
	assert.Equal(t, token.NUMBER, toks[0].Type)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, diags := token.Scan("class fancyName")
	require.Empty(t, diags)
	require.Len(t, toks, 3)
	assert.Equal(t, token.CLASS, toks[0].Type)
	assert.Equal(t, token.IDENTIFIER, toks[1].Type)
	assert.Equal(t, "fancyName", toks[1].Lexeme)
}
