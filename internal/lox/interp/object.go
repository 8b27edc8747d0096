package interp

import "strconv"

// ObjectType tags the dynamic kind of a runtime value (spec §3).
type ObjectType int

const (
	TNil ObjectType = iota
	TBool
	TNumber
	TString
	TCallable
	TInstance
)

// Object is any Lox runtime value. Nil, Bool, Number, and String are plain
// defined types over Go primitives, so Go's == already implements spec
// §4.5's equality rule ("values of different runtime kinds are unequal")
// for them: comparing two interface values compares dynamic type first.
// Callable and Instance values are always pointers, so == on them is
// Go's native reference identity, which is exactly what spec §3 specifies
// for instance equality.
type Object interface {
	Type() ObjectType
	String() string
}

// Nil is Lox's nil value.
type Nil struct{}

func (Nil) Type() ObjectType { return TNil }
func (Nil) String() string   { return "nil" }

// Bool is a Lox boolean.
type Bool bool

func (b Bool) Type() ObjectType { return TBool }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }

// Number is a Lox number, always double precision.
type Number float64

func (n Number) Type() ObjectType { return TNumber }

// String renders n the way `print` and `evaluate` do: integral values
// never show a trailing ".0" (spec §4.5, §9). strconv's shortest-round-trip
// 'f' formatter already has exactly this behaviour for whole numbers, so
// no special case is needed the way the parenthesised-printer's literal
// rendering (ast.Literal.Value) needs one.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// String is a Lox string.
type String string

func (s String) Type() ObjectType { return TString }
func (s String) String() string   { return string(s) }

// IsTruthy implements spec §4.5's truthiness rule: only false and nil are
// falsey.
func IsTruthy(o Object) bool {
	switch v := o.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// isEqual implements spec §4.5's equality rule.
func isEqual(a, b Object) bool {
	return a == b
}

// Instance is a runtime object of a Class, with a mutable field table.
// Equality is reference identity, which Go's == gives for free on a
// pointer receiver (see the Object doc comment above).
type Instance struct {
	Class  *Class
	Fields map[string]Object
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Object)}
}

func (i *Instance) Type() ObjectType { return TInstance }
func (i *Instance) String() string   { return "<" + i.Class.Name + " instance>" }

// Get implements property access (spec §4.5 "Property access"): fields are
// checked before methods, and a found method is bound to i before being
// returned.
func (i *Instance) Get(name string) (Object, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if method := i.Class.FindMethod(name); method != nil {
		return method.bind(i), nil
	}
	return nil, &undefinedPropertyError{name: name}
}

// Set implements property assignment (spec §4.5 "Property set").
func (i *Instance) Set(name string, value Object) {
	i.Fields[name] = value
}
