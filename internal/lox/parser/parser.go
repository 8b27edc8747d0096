// Package parser implements the recursive-descent parser that turns a
// token stream into the syntax tree defined by package ast.
package parser

import (
	"github.com/sdecook/golox/internal/lox/ast"
	"github.com/sdecook/golox/internal/lox/diag"
	"github.com/sdecook/golox/internal/lox/token"
)

// Parser consumes a fixed token slice produced by the scanner.
type Parser struct {
	tokens []token.Token
	idx    int
	ids    ast.IDGen
	diags  []diag.Diagnostic
}

// New returns a Parser over tokens (which must end with a single EOF, as
// produced by token.Scan).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// parseError unwinds parsing to the nearest synchronization point. It is
// always recovered within this package; it never escapes ParseProgram or
// ParseExpression.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// ParseProgram parses declaration* EOF, the grammar used by the `run`
// subcommand.
func ParseProgram(tokens []token.Token) (*ast.Program, []diag.Diagnostic) {
	p := New(tokens)
	return p.program(), p.diags
}

// ParseExpression parses a single expression, the grammar used by the
// `parse` and `evaluate` subcommands (spec §4.2).
func ParseExpression(tokens []token.Token) (ast.Expr, []diag.Diagnostic) {
	p := New(tokens)
	expr := p.safeExpression()
	return expr, p.diags
}

func (p *Parser) safeExpression() (expr ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				expr = nil
				return
			}
			panic(r)
		}
	}()
	return p.expression()
}

func (p *Parser) program() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		if stmt, ok := p.safeDeclaration(); ok {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	return prog
}

func (p *Parser) safeDeclaration() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); isParseErr {
				p.synchronize()
				stmt, ok = nil, false
				return
			}
			panic(r)
		}
	}()
	return p.declaration(), true
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Node: p.ids.New(), Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		methods = append(methods, p.function("method").(*ast.FunctionStmt))
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
		for p.match(token.COMMA) {
			if len(params) >= 255 {
				p.errorAt(p.current(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.block().(*ast.BlockStmt)

	return &ast.FunctionStmt{Name: name, Params: params, Body: body.Stmts}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	return &ast.VarStmt{Name: name, Initializer: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.LEFT_BRACE):
		return p.block()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()

	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")

	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}

	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after while condition.")
	body := p.statement()

	return &ast.WhileStmt{Condition: condition, Body: body}
}

// forStmt desugars "for" into a "while" wrapped in a block, per spec §4.2.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}

	if condition == nil {
		condition = &ast.Literal{Node: p.ids.New(), Token: token.Token{Type: token.TRUE}, Value: "true"}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) block() ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		if stmt, ok := p.safeDeclaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return &ast.BlockStmt{Stmts: stmts}
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Node: p.ids.New(), Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Node: p.ids.New(), Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		right := p.logicAnd()
		expr = &ast.Logical{Node: p.ids.New(), Left: expr, Op: ast.LogicalOr, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		right := p.equality()
		expr = &ast.Logical{Node: p.ids.New(), Left: expr, Op: ast.LogicalAnd, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EQUAL_EQUAL, token.BANG_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Node: p.ids.New(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Node: p.ids.New(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Node: p.ids.New(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Node: p.ids.New(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Node: p.ids.New(), Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Node: p.ids.New(), Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		args = append(args, p.expression())
		for p.match(token.COMMA) {
			if len(args) >= 255 {
				p.errorAt(p.current(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")

	return &ast.Call{Node: p.ids.New(), Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.TRUE):
		return &ast.Literal{Node: p.ids.New(), Token: p.previous(), Value: "true"}
	case p.match(token.FALSE):
		return &ast.Literal{Node: p.ids.New(), Token: p.previous(), Value: "false"}
	case p.match(token.NIL):
		return &ast.Literal{Node: p.ids.New(), Token: p.previous(), Value: "nil"}
	case p.match(token.NUMBER, token.STRING):
		tok := p.previous()
		return &ast.Literal{Node: p.ids.New(), Token: tok, Value: tok.Literal}
	case p.match(token.THIS):
		return &ast.This{Node: p.ids.New(), Keyword: p.previous()}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Node: p.ids.New(), Keyword: keyword, Method: method}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Node: p.ids.New(), Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Node: p.ids.New(), Expr: expr}
	default:
		p.errorAt(p.current(), "Expect expression.")
		panic(parseError{})
	}
}

// ---------------- helpers ----------------

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.current(), msg)
	panic(parseError{})
}

func (p *Parser) check(t token.Type) bool {
	return !p.atEnd() && p.current().Type == t
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.atEnd() {
		p.idx++
	}
	return tok
}

func (p *Parser) atEnd() bool { return p.current().Type == token.EOF }

func (p *Parser) current() token.Token { return p.tokens[p.idx] }

func (p *Parser) previous() token.Token {
	if p.idx > 0 {
		return p.tokens[p.idx-1]
	}
	return p.current()
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	p.diags = append(p.diags, diag.Diagnostic{
		Stage:   diag.Syntax,
		Line:    tok.Line,
		Lexeme:  tok.Lexeme,
		AtEnd:   tok.Type == token.EOF,
		Message: msg,
	})
}

// synchronize discards tokens until a likely statement boundary, per
// spec §4.2's panic-mode recovery.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.current().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
