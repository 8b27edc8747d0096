// Package resolver implements the static pre-pass that binds every
// variable reference to a lexical hop depth (spec §4.3), so the
// interpreter never has to fall back to a dynamic scope search except for
// genuine globals.
package resolver

import (
	"github.com/sdecook/golox/internal/lox/ast"
	"github.com/sdecook/golox/internal/lox/diag"
)

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Locals maps an Expr's Node.ID to the number of enclosing scopes to cross
// to find its binding. A node with no entry is a genuine global reference.
type Locals map[int]int

// Resolver walks a Program and produces Locals plus any static-semantic
// diagnostics (spec §4.3, §7 "Static semantic").
type Resolver struct {
	scopes    []map[string]bool
	locals    Locals
	funcType  functionType
	classType classType
	diags     []diag.Diagnostic
}

// Resolve runs the resolver over prog.
func Resolve(prog *ast.Program) (Locals, []diag.Diagnostic) {
	r := &Resolver{locals: make(Locals)}
	for _, stmt := range prog.Stmts {
		r.resolveStmt(stmt)
	}
	return r.locals, r.diags
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, make(map[string]bool)) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name]; ok {
		r.errf(line, name, "Already a variable with this name in this scope.")
	}
	scope[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal records the hop depth for expr if name is bound in some
// enclosing scope; a miss leaves expr unannotated, meaning "global".
func (r *Resolver) resolveLocal(id int, name string) {
	for depth := 0; depth < len(r.scopes); depth++ {
		scope := r.scopes[len(r.scopes)-1-depth]
		if _, ok := scope[name]; ok {
			r.locals[id] = depth
			return
		}
	}
}

func (r *Resolver) errf(line int, lexeme, msg string) {
	r.diags = append(r.diags, diag.Diagnostic{
		Stage: diag.Static, Line: line, Lexeme: lexeme, Message: msg,
	})
}

// ---------------- statements ----------------

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.VarStmt:
		r.declare(s.Name.Lexeme, s.Name.Line)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)
	case *ast.BlockStmt:
		r.beginScope()
		for _, d := range s.Stmts {
			r.resolveStmt(d)
		}
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		r.declare(s.Name.Lexeme, s.Name.Line)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s, functionFunction)
	case *ast.ReturnStmt:
		if r.funcType == functionNone {
			r.errf(s.Keyword.Line, s.Keyword.Lexeme, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.funcType == functionInitializer {
				r.errf(s.Keyword.Line, s.Keyword.Lexeme, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	enclosing := r.funcType
	r.funcType = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param.Lexeme, param.Line)
		r.define(param.Lexeme)
	}
	for _, stmt := range fn.Body {
		r.resolveStmt(stmt)
	}
	r.endScope()

	r.funcType = enclosing
}

func (r *Resolver) resolveClass(c *ast.ClassStmt) {
	enclosingClass := r.classType
	r.classType = classClass

	r.declare(c.Name.Lexeme, c.Name.Line)
	r.define(c.Name.Lexeme)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.errf(c.Superclass.Name.Line, c.Superclass.Name.Lexeme, "A class can't inherit from itself.")
		}
		r.classType = classSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range c.Methods {
		typ := functionMethod
		if method.Name.Lexeme == "init" {
			typ = functionInitializer
		}
		r.resolveFunction(method, typ)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	r.classType = enclosingClass
}

// ---------------- expressions ----------------

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// nothing to resolve
	case *ast.Grouping:
		r.resolveExpr(e.Expr)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.errf(e.Name.Line, e.Name.Lexeme, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.ID(), e.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.ID(), e.Name.Lexeme)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object) // the property name is resolved dynamically
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.classType == classNone {
			r.errf(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e.ID(), "this")
	case *ast.Super:
		switch r.classType {
		case classNone:
			r.errf(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.errf(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'super' without a superclass.")
			return
		}
		r.resolveLocal(e.ID(), "super")
	default:
		panic("resolver: unhandled expression type")
	}
}
