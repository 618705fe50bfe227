package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/phasor/internal/ast"
)

type ObjectType string

const (
	COMPLEX_OBJ  = "COMPLEX"
	LIST_OBJ     = "LIST"
	STRING_OBJ   = "STRING"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
)

// Object is a runtime value. The set of implementations is closed:
// Complex, List, String, Function and Builtin.
// Objects are never modified after construction.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Complex is the only numeric type. Booleans are Complex 1 and 0.
type Complex struct {
	Re float64
	Im float64
}

func (c *Complex) Type() ObjectType { return COMPLEX_OBJ }
func (c *Complex) Inspect() string {
	switch {
	case c.Im == 0:
		return formatFloat(c.Re)
	case c.Re == 0:
		return formatFloat(c.Im) + "i"
	}
	im := formatFloat(c.Im)
	if !strings.HasPrefix(im, "-") {
		im = "+" + im
	}
	return formatFloat(c.Re) + im + "i"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// List is an ordered, immutable sequence of values.
type List struct {
	Elements []Object
}

func NewList(elements []Object) *List {
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Len() int { return len(l.Elements) }

func (l *List) Get(i int) Object { return l.Elements[i] }

// Map returns a new list of fn applied to every element, stopping at the
// first error.
func (l *List) Map(fn func(Object) (Object, error)) (*List, error) {
	out := make([]Object, len(l.Elements))
	for i, el := range l.Elements {
		v, err := fn(el)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &List{Elements: out}, nil
}

// String is a fully resolved string value.
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Function is a user function value: parameter names and a body closed
// over its defining environment.
type Function struct {
	Params []string
	Body   *ast.ExprBody
	Env    *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return "fn(" + strings.Join(f.Params, ", ") + ") { ... }"
}

// BuiltinFunction implements a builtin. args has already been checked
// against the builtin's arity.
type BuiltinFunction func(args ...Object) (Object, error)

type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name }

// Call checks the argument count and runs the builtin.
func (b *Builtin) Call(args ...Object) (Object, error) {
	if len(args) != b.Arity {
		return nil, &ArgumentError{
			Op:     b.Name,
			Kind:   errInvalidArgument,
			Detail: "expects " + strconv.Itoa(b.Arity) + " argument(s), got " + strconv.Itoa(len(args)),
		}
	}
	return b.Fn(args...)
}
