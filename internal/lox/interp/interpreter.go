// Package interp implements the tree-walking evaluator: the lexical
// environment chain and the callable objects (functions, closures,
// classes, bound methods, instances) described in spec §3 and §4.5.
package interp

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sdecook/golox/internal/lox/ast"
	"github.com/sdecook/golox/internal/lox/resolver"
	"github.com/sdecook/golox/internal/lox/token"
)

// Interpreter walks a syntax tree, writing `print` output to out and
// producing runtime values for expressions (spec §4.5).
type Interpreter struct {
	Globals *Environment
	locals  resolver.Locals
	out     io.Writer
}

// New returns an Interpreter with a fresh global environment pre-seeded
// with the native `clock` function (spec §4.4).
func New(locals resolver.Locals, out io.Writer) *Interpreter {
	globals := NewGlobalEnvironment()
	globals.Define("clock", &NativeFunction{
		Name: "clock",
		Arg:  0,
		Fn: func(args []Object) Object {
			return Number(float64(time.Now().UnixNano()) / 1e9)
		},
	})
	return &Interpreter{Globals: globals, locals: locals, out: out}
}

// Run executes a full program (the `run` subcommand). It returns the first
// runtime error encountered; everything already printed to out stays
// printed, matching spec §7 ("Runtime... unwinds the entire call stack").
func (i *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Stmts {
		if err := i.execStmt(i.Globals, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates a single expression (the `evaluate` subcommand). No
// resolver pass precedes it, since a bare expression declares no
// variables of its own; any identifier it references falls through to
// globals, which for `evaluate` holds only `clock`.
func (i *Interpreter) Eval(expr ast.Expr) (Object, error) {
	return i.evalExpr(i.Globals, expr)
}

// ---------------- statements ----------------

func (i *Interpreter) execStmt(env *Environment, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evalExpr(env, s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := i.evalExpr(env, s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, v.String())
		return nil

	case *ast.VarStmt:
		var value Object = Nil{}
		if s.Initializer != nil {
			v, err := i.evalExpr(env, s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.execBlock(s.Stmts, NewEnclosedEnvironment(env))

	case *ast.IfStmt:
		cond, err := i.evalExpr(env, s.Condition)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return i.execStmt(env, s.Then)
		}
		if s.Else != nil {
			return i.execStmt(env, s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evalExpr(env, s.Condition)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := i.execStmt(env, s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		env.Define(s.Name.Lexeme, &Function{Decl: s, Closure: env})
		return nil

	case *ast.ReturnStmt:
		var value Object = Nil{}
		if s.Value != nil {
			v, err := i.evalExpr(env, s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{Value: value}

	case *ast.ClassStmt:
		return i.execClassStmt(env, s)

	default:
		panic("interp: unhandled statement type")
	}
}

// execBlock runs stmts under env, stopping at the first error (runtime
// error or return unwind) so the caller can propagate it (spec §4.5
// "Block").
func (i *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) error {
	for _, stmt := range stmts {
		if err := i.execStmt(env, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execClassStmt(env *Environment, s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := i.evalExpr(env, s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	// The class's own name is visible (for self-reference and recursion)
	// one scope out from its methods, so it's defined before the
	// superclass binding is pushed.
	env.Define(s.Name.Lexeme, Nil{})

	classEnv := env
	if superclass != nil {
		classEnv = NewEnclosedEnvironment(env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			Decl:          m,
			Closure:       classEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return env.Assign(s.Name.Lexeme, class)
}

// ---------------- expressions ----------------

func (i *Interpreter) evalExpr(env *Environment, expr ast.Expr) (Object, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return i.evalLiteral(e), nil

	case *ast.Grouping:
		return i.evalExpr(env, e.Expr)

	case *ast.Unary:
		right, err := i.evalExpr(env, e.Right)
		if err != nil {
			return nil, err
		}
		return i.evalUnary(e, right)

	case *ast.Binary:
		left, err := i.evalExpr(env, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evalExpr(env, e.Right)
		if err != nil {
			return nil, err
		}
		return i.evalBinary(e, left, right)

	case *ast.Logical:
		left, err := i.evalExpr(env, e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op == ast.LogicalOr {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return i.evalExpr(env, e.Right)

	case *ast.Variable:
		return i.lookUpVariable(env, e.ID(), e.Name.Lexeme, e.Name.Line)

	case *ast.Assign:
		value, err := i.evalExpr(env, e.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := i.locals[e.ID()]; ok {
			env.AssignAt(depth, e.Name.Lexeme, value)
			return value, nil
		}
		if err := env.Assign(e.Name.Lexeme, value); err != nil {
			return nil, asRuntimeError(err, e.Name.Line)
		}
		return value, nil

	case *ast.Call:
		return i.evalCall(env, e)

	case *ast.Get:
		obj, err := i.evalExpr(env, e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, newRuntimeError(e.Name.Line, "Only instances have properties.")
		}
		v, err := instance.Get(e.Name.Lexeme)
		if err != nil {
			return nil, asRuntimeError(err, e.Name.Line)
		}
		return v, nil

	case *ast.Set:
		obj, err := i.evalExpr(env, e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, newRuntimeError(e.Name.Line, "Only instances have fields.")
		}
		value, err := i.evalExpr(env, e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name.Lexeme, value)
		return value, nil

	case *ast.This:
		v, err := i.lookUpVariable(env, e.ID(), "this", e.Keyword.Line)
		return v, err

	case *ast.Super:
		return i.evalSuper(env, e)

	default:
		panic("interp: unhandled expression type")
	}
}

func (i *Interpreter) evalLiteral(e *ast.Literal) Object {
	switch e.Token.Type {
	case token.STRING:
		return String(e.Token.Literal)
	case token.NUMBER:
		n, _ := strconv.ParseFloat(e.Token.Literal, 64)
		return Number(n)
	case token.TRUE:
		return Bool(true)
	case token.FALSE:
		return Bool(false)
	default: // token.NIL
		return Nil{}
	}
}

func (i *Interpreter) lookUpVariable(env *Environment, id int, name string, line int) (Object, error) {
	if depth, ok := i.locals[id]; ok {
		return env.GetAt(depth, name), nil
	}
	v, err := env.Get(name)
	if err != nil {
		return nil, asRuntimeError(err, line)
	}
	return v, nil
}

func (i *Interpreter) evalUnary(e *ast.Unary, right Object) (Object, error) {
	switch e.Op.Lexeme {
	case "!":
		return Bool(!IsTruthy(right)), nil
	case "-":
		n, ok := right.(Number)
		if !ok {
			return nil, newRuntimeError(e.Op.Line, "Operand must be a number.")
		}
		return -n, nil
	}
	panic("interp: unreachable unary operator " + e.Op.Lexeme)
}

func (i *Interpreter) evalBinary(e *ast.Binary, left, right Object) (Object, error) {
	switch e.Op.Lexeme {
	case "+":
		if l, ok := left.(Number); ok {
			if r, ok := right.(Number); ok {
				return l + r, nil
			}
		}
		if l, ok := left.(String); ok {
			if r, ok := right.(String); ok {
				return l + r, nil
			}
		}
		return nil, newRuntimeError(e.Op.Line, "Operands must be two numbers or two strings.")
	case "-":
		l, r, err := i.asNumbers(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case "*":
		l, r, err := i.asNumbers(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case "/":
		l, r, err := i.asNumbers(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil
	case ">":
		l, r, err := i.asNumbers(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l > r), nil
	case ">=":
		l, r, err := i.asNumbers(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l >= r), nil
	case "<":
		l, r, err := i.asNumbers(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l < r), nil
	case "<=":
		l, r, err := i.asNumbers(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l <= r), nil
	case "==":
		return Bool(isEqual(left, right)), nil
	case "!=":
		return Bool(!isEqual(left, right)), nil
	}
	panic("interp: unreachable binary operator " + e.Op.Lexeme)
}

func (i *Interpreter) asNumbers(line int, left, right Object) (Number, Number, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return 0, 0, newRuntimeError(line, "Operands must be numbers.")
	}
	return l, r, nil
}

func (i *Interpreter) evalCall(env *Environment, e *ast.Call) (Object, error) {
	calleeVal, err := i.evalExpr(env, e.Callee)
	if err != nil {
		return nil, err
	}

	callee, ok := calleeVal.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren.Line, "Can only call functions and classes.")
	}

	args := make([]Object, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evalExpr(env, a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	if len(args) != callee.Arity() {
		return nil, newRuntimeError(e.Paren.Line, "Expected %d arguments but got %d.", callee.Arity(), len(args))
	}

	return callee.Call(i, args)
}

func (i *Interpreter) evalSuper(env *Environment, e *ast.Super) (Object, error) {
	depth := i.locals[e.ID()]
	superclass, _ := env.GetAt(depth, "super").(*Class)

	// `this` lives one scope closer to the use site than `super` (spec
	// §4.5 "super.method"): the resolver pushes the `super` scope, then a
	// nested `this` scope, around every method body.
	this, _ := env.GetAt(depth-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(e.Method.Line, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(this), nil
}
