package interp

import (
	"fmt"

	"github.com/sdecook/golox/internal/lox/ast"
)

// Callable is any Lox value that can appear on the left of a call
// expression (spec §3 "Callable"): a native function, a Lox function
// (including a bound method), or a class.
type Callable interface {
	Object
	Arity() int
	Call(i *Interpreter, args []Object) (Object, error)
}

// NativeFunction is a fixed-arity function implemented by the host. The
// only one spec.md requires is `clock` (spec §4.4), pre-defined in
// globals by New.
type NativeFunction struct {
	Name string
	Arg  int
	Fn   func(args []Object) Object
}

func (f *NativeFunction) Type() ObjectType { return TCallable }
func (f *NativeFunction) String() string   { return "<native fn>" }
func (f *NativeFunction) Arity() int       { return f.Arg }
func (f *NativeFunction) Call(_ *Interpreter, args []Object) (Object, error) {
	return f.Fn(args), nil
}

// Function is a Lox function or method: a declaration closed over the
// environment active at its point of declaration (spec §3 "Callable").
type Function struct {
	Decl          *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Type() ObjectType { return TCallable }
func (f *Function) String() string   { return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme) }
func (f *Function) Arity() int       { return len(f.Decl.Params) }

// Call implements spec §4.5's "Function call" rule 4: a fresh environment
// parented on the closure, parameters bound, body executed, falling off
// the end yielding Nil. An initializer is the exception: it always yields
// the bound `this`, and so does an explicit `return;` inside one.
func (f *Function) Call(i *Interpreter, args []Object) (Object, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for idx, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[idx])
	}

	err := i.execBlock(f.Decl.Body, env)
	if ret, ok := err.(*returnSignal); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// bind returns a copy of f whose closure additionally binds `this` to
// instance, implementing spec §4.5's "Property access" method binding.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// Class is a Lox class: a name, optional superclass, and method table
// (spec §3 "Callable").
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() ObjectType { return TCallable }
func (c *Class) String() string   { return c.Name }

// FindMethod walks c then its superclass chain (spec §4.5 "Property
// access": "Method lookup walks the instance's class, then its superclass
// chain").
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of `init`, or zero if the class has none (spec §4.5
// "Function call" rule 5).
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs an instance and, if present, runs `init` on it before
// returning it (spec §4.5 "Function call" rule 5).
func (c *Class) Call(i *Interpreter, args []Object) (Object, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
