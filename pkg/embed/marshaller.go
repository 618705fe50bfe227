package phasor

import (
	"fmt"
	"math"
	"reflect"

	"github.com/funvibe/phasor/internal/evaluator"
)

// Marshaller handles conversion between Go and phasor values.
type Marshaller struct {
	// Tiny is the tolerance used when a complex value must become a
	// real Go number.
	Tiny float64
}

func NewMarshaller(tiny float64) *Marshaller {
	return &Marshaller{Tiny: tiny}
}

var objectType = reflect.TypeOf((*evaluator.Object)(nil)).Elem()

// ToValue converts a Go value to an Object. Numbers become complex
// values, strings stay strings and slices or arrays become lists.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Object, error) {
	if val == nil {
		return nil, fmt.Errorf("cannot convert nil")
	}
	if obj, ok := val.(evaluator.Object); ok {
		return obj, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &evaluator.Complex{Re: float64(v.Int())}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &evaluator.Complex{Re: float64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return &evaluator.Complex{Re: v.Float()}, nil
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return &evaluator.Complex{Re: real(c), Im: imag(c)}, nil
	case reflect.Bool:
		return evaluator.FromBool(v.Bool()), nil
	case reflect.String:
		return &evaluator.String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Func:
		return m.funcToBuiltin("", v)
	default:
		return nil, fmt.Errorf("unsupported Go type %s", v.Type())
	}
}

// FromValue converts an Object to a Go value. With a nil targetType a
// complex value becomes float64 when it is real and complex128 otherwise,
// and a list becomes []interface{}.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}
	if targetType == objectType {
		return obj, nil
	}

	switch o := obj.(type) {
	case *evaluator.Complex:
		return m.complexTo(o, targetType)
	case *evaluator.String:
		if targetType != nil && targetType.Kind() != reflect.String && targetType.Kind() != reflect.Interface {
			return nil, fmt.Errorf("cannot convert string to %s", targetType)
		}
		return o.Value, nil
	case *evaluator.List:
		return m.listToSlice(o, targetType)
	case *evaluator.Builtin, *evaluator.Function:
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type for conversion: %s", o.Type())
	}
}

func (m *Marshaller) complexTo(c *evaluator.Complex, targetType reflect.Type) (interface{}, error) {
	if targetType == nil || targetType.Kind() == reflect.Interface {
		if evaluator.IsRealFuzz(c, m.Tiny) {
			return c.Re, nil
		}
		return complex(c.Re, c.Im), nil
	}

	switch targetType.Kind() {
	case reflect.Complex64, reflect.Complex128:
		return reflect.ValueOf(complex(c.Re, c.Im)).Convert(targetType).Interface(), nil
	case reflect.Float32, reflect.Float64:
		if !evaluator.IsRealFuzz(c, m.Tiny) {
			return nil, fmt.Errorf("%s is not real", c.Inspect())
		}
		return reflect.ValueOf(c.Re).Convert(targetType).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !evaluator.IsRealFuzz(c, m.Tiny) || !evaluator.IsIntegral(c.Re) || math.IsInf(c.Re, 0) {
			return nil, fmt.Errorf("%s is not an integer", c.Inspect())
		}
		return reflect.ValueOf(c.Re).Convert(targetType).Interface(), nil
	case reflect.Bool:
		return evaluator.Truthy(c), nil
	}
	return nil, fmt.Errorf("cannot convert %s to %s", c.Inspect(), targetType)
}

func (m *Marshaller) sliceToList(v reflect.Value) (*evaluator.List, error) {
	elements := make([]evaluator.Object, v.Len())
	for i := 0; i < v.Len(); i++ {
		obj, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements[i] = obj
	}
	return evaluator.NewList(elements), nil
}

func (m *Marshaller) listToSlice(l *evaluator.List, targetType reflect.Type) (interface{}, error) {
	if targetType == nil || targetType.Kind() == reflect.Interface {
		out := make([]interface{}, l.Len())
		for i, el := range l.Elements {
			v, err := m.FromValue(el, nil)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	if targetType.Kind() != reflect.Slice {
		return nil, fmt.Errorf("cannot convert list to %s", targetType)
	}

	elemType := targetType.Elem()
	out := reflect.MakeSlice(targetType, l.Len(), l.Len())
	for i, el := range l.Elements {
		v, err := m.FromValue(el, elemType)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(v))
	}
	return out.Interface(), nil
}

// funcToBuiltin wraps a Go function. Its arguments are converted from
// objects, its first result back to an object, and a trailing error
// result is returned as the call error.
func (m *Marshaller) funcToBuiltin(name string, fn reflect.Value) (*evaluator.Builtin, error) {
	fnType := fn.Type()
	if fnType.IsVariadic() {
		return nil, fmt.Errorf("variadic functions are not supported")
	}
	errorType := reflect.TypeOf((*error)(nil)).Elem()

	call := func(args ...evaluator.Object) (evaluator.Object, error) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			v, err := m.FromValue(arg, fnType.In(i))
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i+1, err)
			}
			in[i] = reflect.ValueOf(v)
		}
		out := fn.Call(in)
		if n := len(out); n > 0 && fnType.Out(n-1) == errorType {
			if err, _ := out[n-1].Interface().(error); err != nil {
				return nil, err
			}
			out = out[:n-1]
		}
		if len(out) == 0 {
			return &evaluator.Complex{}, nil
		}
		return m.ToValue(out[0].Interface())
	}

	return &evaluator.Builtin{Name: name, Arity: fnType.NumIn(), Fn: call}, nil
}
