package interp

import "github.com/dolthub/swiss"

// Environment is a single frame of the lexical scope chain (spec §4.4).
//
// The global frame (no parent) backs its value table with a swiss-table
// hash map, since it is the one frame that grows without bound over a
// script's lifetime and is consulted by every unresolved reference; every
// other frame is a short-lived block or call frame and keeps a plain Go
// map, which is cheaper to allocate for the handful of bindings such a
// frame typically holds.
type Environment struct {
	parent  *Environment
	values  map[string]Object
	globals *swiss.Map[string, Object]
}

// NewGlobalEnvironment returns the root environment.
func NewGlobalEnvironment() *Environment {
	return &Environment{globals: swiss.NewMap[string, Object](64)}
}

// NewEnclosedEnvironment returns a child frame of parent.
func NewEnclosedEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]Object, 8)}
}

func (e *Environment) isGlobal() bool { return e.globals != nil }

// Define unconditionally inserts or overwrites name in this frame.
func (e *Environment) Define(name string, value Object) {
	if e.isGlobal() {
		e.globals.Put(name, value)
		return
	}
	e.values[name] = value
}

// Get looks up name in this frame, then its ancestors, per spec §4.4.
func (e *Environment) Get(name string) (Object, error) {
	if e.isGlobal() {
		if v, ok := e.globals.Get(name); ok {
			return v, nil
		}
		return nil, undefinedVariable(name)
	}
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	return e.parent.Get(name)
}

// Assign updates name in the nearest frame that defines it.
func (e *Environment) Assign(name string, value Object) error {
	if e.isGlobal() {
		if _, ok := e.globals.Get(name); ok {
			e.globals.Put(name, value)
			return nil
		}
		return undefinedVariable(name)
	}
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	return e.parent.Assign(name, value)
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.parent
	}
	return env
}

// GetAt follows exactly depth parent links before reading name, per
// spec §4.4. It is used for every reference the resolver annotated.
func (e *Environment) GetAt(depth int, name string) Object {
	// A resolved local is, by construction (spec §8 "resolver soundness"),
	// always present in the frame the resolver computed.
	return e.ancestor(depth).values[name]
}

// AssignAt follows exactly depth parent links before writing name.
func (e *Environment) AssignAt(depth int, name string, value Object) {
	e.ancestor(depth).values[name] = value
}
