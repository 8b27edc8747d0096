package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sdecook/golox/internal/lox/diag"
)

// Scanner turns Lox source text into a token stream. A lexical error does
// not abort scanning: it is recorded as a Diagnostic and scanning resumes
// at the next character (spec §4.1).
type Scanner struct {
	line int
	src  []byte
	idx  int
	ch   byte

	diags []diag.Diagnostic
}

// New returns a Scanner over src, ready to Scan.
func New(src string) *Scanner {
	return &Scanner{
		line: 1,
		src:  []byte(src),
		idx:  -1,
	}
}

// Scan consumes the whole source and returns its tokens (always terminated
// by a single EOF token) plus any lexical diagnostics encountered.
func Scan(src string) ([]Token, []diag.Diagnostic) {
	s := New(src)
	return s.scan(), s.diags
}

func (s *Scanner) next() bool {
	if s.idx == len(s.src)-1 {
		return false
	}
	s.idx++
	s.ch = s.src[s.idx]
	return true
}

func (s *Scanner) peek() byte {
	if s.idx >= len(s.src)-1 {
		return 0
	}
	return s.src[s.idx+1]
}

func (s *Scanner) peekTwo() byte {
	if s.idx >= len(s.src)-2 {
		return 0
	}
	return s.src[s.idx+2]
}

func (s *Scanner) comment() {
	for s.peek() != '\n' && s.next() {
	}
}

func (s *Scanner) stringLiteral() (string, bool) {
	start := s.idx
	startLine := s.line

	for {
		if !s.next() {
			s.diags = append(s.diags, diag.Diagnostic{
				Stage: diag.Lexical, Line: startLine, Message: "Unterminated string.",
			})
			return "", false
		}
		if s.ch == '\n' {
			s.line++
		}
		if s.ch == '"' {
			break
		}
	}

	return string(s.src[start : s.idx+1]), true
}

func (s *Scanner) numberLiteral() (lexeme, literal string) {
	start := s.idx

	for isDigit(s.peek()) {
		s.next()
	}
	if s.peek() == '.' && isDigit(s.peekTwo()) {
		s.next()
		for isDigit(s.peek()) {
			s.next()
		}
	}

	lexeme = string(s.src[start : s.idx+1])
	f, _ := strconv.ParseFloat(lexeme, 64)
	literal = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(literal, ".") {
		literal += ".0"
	}
	return lexeme, literal
}

func (s *Scanner) identifier() string {
	start := s.idx
	for isAlphaNumeric(s.peek()) {
		s.next()
	}
	return string(s.src[start : s.idx+1])
}

func (s *Scanner) scan() []Token {
	toks := make([]Token, 0, len(s.src)/2+1)

	for s.next() {
		switch s.ch {
		case ' ', '\t', '\r':
			// skip
		case '\n':
			s.line++
		case '(':
			toks = append(toks, s.tok(LEFT_PAREN))
		case ')':
			toks = append(toks, s.tok(RIGHT_PAREN))
		case '{':
			toks = append(toks, s.tok(LEFT_BRACE))
		case '}':
			toks = append(toks, s.tok(RIGHT_BRACE))
		case ',':
			toks = append(toks, s.tok(COMMA))
		case '.':
			toks = append(toks, s.tok(DOT))
		case '-':
			toks = append(toks, s.tok(MINUS))
		case '+':
			toks = append(toks, s.tok(PLUS))
		case ';':
			toks = append(toks, s.tok(SEMICOLON))
		case '*':
			toks = append(toks, s.tok(STAR))
		case '/':
			if s.peek() == '/' {
				s.comment()
			} else {
				toks = append(toks, s.tok(SLASH))
			}
		case '=':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, Token{Type: EQUAL_EQUAL, Lexeme: "==", Line: s.line})
			} else {
				toks = append(toks, s.tok(EQUAL))
			}
		case '!':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, Token{Type: BANG_EQUAL, Lexeme: "!=", Line: s.line})
			} else {
				toks = append(toks, s.tok(BANG))
			}
		case '<':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, Token{Type: LESS_EQUAL, Lexeme: "<=", Line: s.line})
			} else {
				toks = append(toks, s.tok(LESS))
			}
		case '>':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, Token{Type: GREATER_EQUAL, Lexeme: ">=", Line: s.line})
			} else {
				toks = append(toks, s.tok(GREATER))
			}
		case '"':
			if str, ok := s.stringLiteral(); ok {
				toks = append(toks, Token{Type: STRING, Lexeme: str, Literal: strings.Trim(str, `"`), Line: s.line})
			}
		default:
			switch {
			case isDigit(s.ch):
				lexeme, literal := s.numberLiteral()
				toks = append(toks, Token{Type: NUMBER, Lexeme: lexeme, Literal: literal, Line: s.line})
			case isAlpha(s.ch):
				ident := s.identifier()
				if kw, ok := Keywords[ident]; ok {
					toks = append(toks, Token{Type: kw, Lexeme: ident, Line: s.line})
				} else {
					toks = append(toks, Token{Type: IDENTIFIER, Lexeme: ident, Line: s.line})
				}
			default:
				s.diags = append(s.diags, diag.Diagnostic{
					Stage:   diag.Lexical,
					Line:    s.line,
					Message: fmt.Sprintf("Unexpected character: %s", string(s.ch)),
				})
			}
		}
	}

	toks = append(toks, Token{Type: EOF, Line: s.line})
	return toks
}

func (s *Scanner) tok(typ Type) Token {
	return Token{Type: typ, Lexeme: string(s.ch), Line: s.line}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
