package evaluator

import (
	"fmt"
	"math"
)

func typeOf(o Object) string {
	if o == nil {
		return "nothing"
	}
	return string(o.Type())
}

// AsComplex returns o as a Complex or an invalid-argument error.
func AsComplex(o Object) (*Complex, error) {
	if c, ok := o.(*Complex); ok {
		return c, nil
	}
	return nil, fmt.Errorf("expected %s, got %s: %w", COMPLEX_OBJ, typeOf(o), errInvalidArgument)
}

// AsList returns o as a List or an invalid-argument error.
func AsList(o Object) (*List, error) {
	if l, ok := o.(*List); ok {
		return l, nil
	}
	return nil, fmt.Errorf("expected %s, got %s: %w", LIST_OBJ, typeOf(o), errInvalidArgument)
}

// AsString returns o as a String or an invalid-argument error.
func AsString(o Object) (*String, error) {
	if s, ok := o.(*String); ok {
		return s, nil
	}
	return nil, fmt.Errorf("expected %s, got %s: %w", STRING_OBJ, typeOf(o), errInvalidArgument)
}

// AsFunction returns o if it is a user function or a builtin.
func AsFunction(o Object) (Object, error) {
	if IsFunction(o) {
		return o, nil
	}
	return nil, fmt.Errorf("expected a function, got %s: %w", typeOf(o), errInvalidArgument)
}

func IsFunction(o Object) bool {
	switch o.(type) {
	case *Function, *Builtin:
		return true
	}
	return false
}

func IsListOrString(o Object) bool {
	switch o.(type) {
	case *List, *String:
		return true
	}
	return false
}

func IsRealStrict(c *Complex) bool { return c.Im == 0 }
func IsImagStrict(c *Complex) bool { return c.Re == 0 }
func IsZeroStrict(c *Complex) bool { return IsRealStrict(c) && IsImagStrict(c) }

// The fuzzy checks treat a component below tiny in magnitude as zero.

func IsRealFuzz(c *Complex, tiny float64) bool { return math.Abs(c.Im) < tiny }
func IsImagFuzz(c *Complex, tiny float64) bool { return math.Abs(c.Re) < tiny }
func IsZeroFuzz(c *Complex, tiny float64) bool {
	return IsRealFuzz(c, tiny) && IsImagFuzz(c, tiny)
}

func IsIntegral(f float64) bool { return f == math.Floor(f) }

// EqualLength succeeds when a and b are lists of the same length.
func EqualLength(a, b Object) error {
	la, err := AsList(a)
	if err != nil {
		return err
	}
	lb, err := AsList(b)
	if err != nil {
		return err
	}
	if la.Len() != lb.Len() {
		return fmt.Errorf("%d and %d elements: %w", la.Len(), lb.Len(), errUnequalLength)
	}
	return nil
}
