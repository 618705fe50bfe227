package evaluator

import (
	"math"

	"github.com/funvibe/phasor/internal/config"
)

// Binary operations are defined on Complex and List operands:
//
//	Complex, Complex  the scalar formula
//	Complex, List     the scalar applied with each element on the right
//	List, Complex     the scalar applied with each element on the left
//	List, List        applied pairwise; the lists must be the same length
//
// Anything else is an ArgumentError.

type scalarFn func(a, b *Complex) (Object, error)

func broadcast(op string, a, b Object, scalar scalarFn) (Object, error) {
	switch x := a.(type) {
	case *Complex:
		switch y := b.(type) {
		case *Complex:
			return scalar(x, y)
		case *List:
			return mapList(y, func(e Object) (Object, error) { return broadcast(op, x, e, scalar) })
		}
	case *List:
		switch y := b.(type) {
		case *Complex:
			return mapList(x, func(e Object) (Object, error) { return broadcast(op, e, y, scalar) })
		case *List:
			if x.Len() != y.Len() {
				return nil, &ArgumentError{Op: op, Left: a, Right: b, Kind: errUnequalLength}
			}
			out := make([]Object, x.Len())
			for i := range x.Elements {
				v, err := broadcast(op, x.Get(i), y.Get(i), scalar)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return NewList(out), nil
		}
	}
	return nil, invalid(op, a, b)
}

// mapList is List.Map returning a nil Object on failure.
func mapList(l *List, fn func(Object) (Object, error)) (Object, error) {
	out, err := l.Map(fn)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func pure(f func(a, b *Complex) *Complex) scalarFn {
	return func(a, b *Complex) (Object, error) { return f(a, b), nil }
}

func predicate(f func(a, b *Complex) bool) scalarFn {
	return func(a, b *Complex) (Object, error) { return FromBool(f(a, b)), nil }
}

func addComplex(a, b *Complex) *Complex { return &Complex{a.Re + b.Re, a.Im + b.Im} }
func subComplex(a, b *Complex) *Complex { return &Complex{a.Re - b.Re, a.Im - b.Im} }

func mulComplex(a, b *Complex) *Complex {
	return &Complex{a.Re*b.Re - a.Im*b.Im, a.Re*b.Im + a.Im*b.Re}
}

// divComplex multiplies by the conjugate of b. A zero divisor gives
// infinities or NaN like float division.
func divComplex(a, b *Complex) *Complex {
	z := mulComplex(a, &Complex{b.Re, -b.Im})
	d := b.Re*b.Re + b.Im*b.Im
	return &Complex{z.Re / d, z.Im / d}
}

func modulus(c *Complex) float64 { return math.Hypot(c.Re, c.Im) }
func phase(c *Complex) float64   { return math.Atan2(c.Im, c.Re) }

func Add(a, b Object) (Object, error) { return broadcast(config.OpAdd, a, b, pure(addComplex)) }
func Sub(a, b Object) (Object, error) { return broadcast(config.OpSub, a, b, pure(subComplex)) }
func Mul(a, b Object) (Object, error) { return broadcast(config.OpMul, a, b, pure(mulComplex)) }
func Div(a, b Object) (Object, error) { return broadcast(config.OpDiv, a, b, pure(divComplex)) }

// Mod is the float remainder of two operands that are real within tiny.
// The imaginary parts are ignored.
func Mod(a, b Object, tiny float64) (Object, error) {
	return broadcast(config.OpMod, a, b, func(x, y *Complex) (Object, error) {
		if !IsRealFuzz(x, tiny) || !IsRealFuzz(y, tiny) {
			return nil, &ArgumentError{Op: config.OpMod, Left: x, Right: y, Kind: errInvalidArgument,
				Detail: "operands must be real"}
		}
		if y.Re == 0 {
			return nil, &ArgumentError{Op: config.OpMod, Left: x, Right: y, Kind: errDomain,
				Detail: "modulo by zero"}
		}
		return &Complex{Re: math.Mod(x.Re, y.Re)}, nil
	})
}

func Pow(a, b Object) (Object, error) { return broadcast(config.OpPow, a, b, powComplex) }

func powComplex(a, b *Complex) (Object, error) {
	if IsZeroStrict(b) {
		return &Complex{Re: 1}, nil
	}
	if IsZeroStrict(a) {
		if !IsRealStrict(b) || b.Re < 0 {
			return nil, &ArgumentError{Op: config.OpPow, Left: a, Right: b, Kind: errDomain,
				Detail: "can not raise 0 to a negative or complex power"}
		}
		return &Complex{}, nil
	}
	if IsRealStrict(a) && IsRealStrict(b) && (a.Re > 0 || IsIntegral(b.Re)) {
		return &Complex{Re: math.Pow(a.Re, b.Re)}, nil
	}

	// Polar form: |a|^b.re damped by e^(arg(a)*b.im), rotated by
	// arg(a)*b.re + b.im*ln|a|.
	r, theta := modulus(a), phase(a)
	length := math.Pow(r, b.Re)
	angle := theta * b.Re
	if !IsRealStrict(b) {
		length /= math.Exp(theta * b.Im)
		angle += b.Im * math.Log(r)
	}
	return &Complex{length * math.Cos(angle), length * math.Sin(angle)}, nil
}

// Eq compares both components exactly.
func Eq(a, b Object) (Object, error) {
	return broadcast(config.OpEq, a, b, predicate(func(x, y *Complex) bool {
		return x.Re == y.Re && x.Im == y.Im
	}))
}

// The ordering comparisons compare moduli.

func Lt(a, b Object) (Object, error) {
	return broadcast(config.OpLt, a, b, predicate(func(x, y *Complex) bool { return modulus(x) < modulus(y) }))
}

func Lte(a, b Object) (Object, error) {
	return broadcast(config.OpLte, a, b, predicate(func(x, y *Complex) bool { return modulus(x) <= modulus(y) }))
}

func Gt(a, b Object) (Object, error) {
	return broadcast(config.OpGt, a, b, predicate(func(x, y *Complex) bool { return modulus(x) > modulus(y) }))
}

func Gte(a, b Object) (Object, error) {
	return broadcast(config.OpGte, a, b, predicate(func(x, y *Complex) bool { return modulus(x) >= modulus(y) }))
}

// Abs returns the modulus of a Complex, or of every element of a List.
func Abs(a Object) (Object, error) {
	switch x := a.(type) {
	case *Complex:
		return &Complex{Re: modulus(x)}, nil
	case *List:
		return mapList(x, Abs)
	}
	return nil, invalid(config.AbsFuncName, a, nil)
}

// Zip pairs same-index elements of two lists of equal length.
func Zip(a, b Object) (Object, error) {
	x, okA := a.(*List)
	y, okB := b.(*List)
	if !okA || !okB {
		return nil, invalid(config.ZipFuncName, a, b)
	}
	if x.Len() != y.Len() {
		return nil, &ArgumentError{Op: config.ZipFuncName, Left: a, Right: b, Kind: errUnequalLength}
	}
	out := make([]Object, x.Len())
	for i := range x.Elements {
		out[i] = NewList([]Object{x.Get(i), y.Get(i)})
	}
	return NewList(out), nil
}

// Truthy reports whether o counts as true: anything but an exact zero.
func Truthy(o Object) bool {
	if o == nil {
		return false
	}
	if c, ok := o.(*Complex); ok {
		return !IsZeroStrict(c)
	}
	return true
}

func FromBool(b bool) *Complex {
	if b {
		return &Complex{Re: 1}
	}
	return &Complex{}
}

// binaryOp returns the operation named by a config op name.
func binaryOp(name string, tiny float64) (func(a, b Object) (Object, error), bool) {
	switch name {
	case config.OpAdd:
		return Add, true
	case config.OpSub:
		return Sub, true
	case config.OpMul:
		return Mul, true
	case config.OpDiv:
		return Div, true
	case config.OpMod:
		return func(a, b Object) (Object, error) { return Mod(a, b, tiny) }, true
	case config.OpPow:
		return Pow, true
	case config.OpEq:
		return Eq, true
	case config.OpLt:
		return Lt, true
	case config.OpLte:
		return Lte, true
	case config.OpGt:
		return Gt, true
	case config.OpGte:
		return Gte, true
	}
	return nil, false
}
