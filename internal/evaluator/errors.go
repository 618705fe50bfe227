package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/phasor/internal/diagnostics"
)

var (
	errInvalidArgument = diagnostics.ErrInvalidArgument
	errUnequalLength   = diagnostics.ErrUnequalLength
	errDomain          = diagnostics.ErrDomain
)

// ArgumentError reports an operation applied to values it is not defined
// for. Kind is one of diagnostics.ErrInvalidArgument, ErrUnequalLength or
// ErrDomain. Right is nil for unary operations.
type ArgumentError struct {
	Op     string
	Left   Object
	Right  Object
	Kind   error
	Detail string
}

func (e *ArgumentError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	var operands []string
	for _, o := range []Object{e.Left, e.Right} {
		if o != nil {
			operands = append(operands, describe(o))
		}
	}
	if len(operands) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(operands, ", "))
		b.WriteString(")")
	}
	return b.String()
}

func (e *ArgumentError) Unwrap() error { return e.Kind }

func describe(o Object) string {
	if s, ok := o.(*String); ok {
		return strconv.Quote(s.Value)
	}
	return o.Inspect()
}

func invalid(op string, a, b Object) error {
	return &ArgumentError{Op: op, Left: a, Right: b, Kind: errInvalidArgument}
}
