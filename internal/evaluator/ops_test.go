package evaluator

import (
	"errors"
	"math"
	"testing"

	"github.com/funvibe/phasor/internal/diagnostics"
)

func c(re, im float64) *Complex { return &Complex{Re: re, Im: im} }

func list(elements ...Object) *List { return NewList(elements) }

func TestInspect(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{c(3, 0), "3"},
		{c(0, 2), "2i"},
		{c(1, 2), "1+2i"},
		{c(1, -2), "1-2i"},
		{c(0, 0), "0"},
		{c(-1.5, 0), "-1.5"},
		{c(1e21, 0), "1e+21"},
		{list(c(1, 0), list(c(0, 2))), "[1, [2i]]"},
		{list(), "[]"},
		{&String{Value: "hi"}, "hi"},
		{&Function{Params: []string{"x", "y"}}, "fn(x, y) { ... }"},
		{Builtins()["abs"], "builtin abs"},
	}
	for _, tt := range tests {
		if got := tt.obj.Inspect(); got != tt.want {
			t.Errorf("Inspect() = %q, want %q", got, tt.want)
		}
	}
}

func TestComplexArithmetic(t *testing.T) {
	tests := []struct {
		name string
		fn   func(a, b Object) (Object, error)
		a, b *Complex
		want string
	}{
		{"add", Add, c(1, 2), c(3, -1), "4+1i"},
		{"sub", Sub, c(1, 2), c(3, -1), "-2+3i"},
		{"mul", Mul, c(1, 2), c(3, -1), "5+5i"},
		{"div", Div, c(1, 2), c(1, 1), "1.5+0.5i"},
		{"div by imaginary", Div, c(4, 0), c(0, 2), "-2i"},
		{"real div", Div, c(1, 0), c(4, 0), "0.25"},
		{"eq", Eq, c(1, 2), c(1, 2), "1"},
		{"eq imag differs", Eq, c(1, 2), c(1, 3), "0"},
		{"lt by modulus", Lt, c(0, 3), c(4, 0), "1"},
		{"lt negative", Lt, c(-5, 0), c(4, 0), "0"},
		{"lte equal modulus", Lte, c(1, 0), c(-1, 0), "1"},
		{"gt", Gt, c(-5, 0), c(4, 0), "1"},
		{"gte", Gte, c(0, 2), c(2, 0), "1"},
		{"pow real", Pow, c(2, 0), c(10, 0), "1024"},
		{"pow negative base integral", Pow, c(-2, 0), c(3, 0), "-8"},
		{"pow zero exponent", Pow, c(0, 0), c(0, 0), "1"},
		{"pow zero base", Pow, c(0, 0), c(2, 0), "0"},
		{"pow any base zero exponent", Pow, c(3, 4), c(0, 0), "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got.Inspect() != tt.want {
				t.Errorf("got %s, want %s", got.Inspect(), tt.want)
			}
		})
	}
}

func near(t *testing.T, got Object, re, im float64) {
	t.Helper()
	z, ok := got.(*Complex)
	if !ok {
		t.Fatalf("got %T, want *Complex", got)
	}
	if math.Abs(z.Re-re) > 1e-9 || math.Abs(z.Im-im) > 1e-9 {
		t.Errorf("got %s, want %v%+vi", z.Inspect(), re, im)
	}
}

func TestPow_Polar(t *testing.T) {
	got, err := Pow(c(-1, 0), c(0.5, 0))
	if err != nil {
		t.Fatal(err)
	}
	near(t, got, 0, 1)

	got, err = Pow(c(0, 1), c(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	near(t, got, -1, 0)

	got, err = Pow(c(-8, 0), c(1.0/3, 0))
	if err != nil {
		t.Fatal(err)
	}
	near(t, got, 1, math.Sqrt(3))

	// i^i = e^(-pi/2)
	got, err = Pow(c(0, 1), c(0, 1))
	if err != nil {
		t.Fatal(err)
	}
	near(t, got, math.Exp(-math.Pi/2), 0)
}

func TestPow_Domain(t *testing.T) {
	for _, exp := range []*Complex{c(-1, 0), c(0, 1), c(2, 1)} {
		_, err := Pow(c(0, 0), exp)
		if !errors.Is(err, diagnostics.ErrDomain) {
			t.Errorf("Pow(0, %s) error = %v, want ErrDomain", exp.Inspect(), err)
		}
	}
}

func TestMod(t *testing.T) {
	const tiny = 1e-10
	tests := []struct {
		a, b Object
		want string
		kind error
	}{
		{c(7, 0), c(3, 0), "1", nil},
		{c(-7, 0), c(3, 0), "-1", nil},
		{c(7, 1e-12), c(3, 0), "1", nil},
		{c(7.5, 0), c(2, 0), "1.5", nil},
		{list(c(5, 0), c(6, 0)), c(4, 0), "[1, 2]", nil},
		{c(0, 1), c(2, 0), "", diagnostics.ErrInvalidArgument},
		{c(5, 0), c(0, 0), "", diagnostics.ErrDomain},
	}
	for _, tt := range tests {
		got, err := Mod(tt.a, tt.b, tiny)
		if tt.kind != nil {
			if !errors.Is(err, tt.kind) {
				t.Errorf("Mod(%s, %s) error = %v, want %v", tt.a.Inspect(), tt.b.Inspect(), err, tt.kind)
			}
			continue
		}
		if err != nil {
			t.Errorf("Mod(%s, %s) error: %v", tt.a.Inspect(), tt.b.Inspect(), err)
			continue
		}
		if got.Inspect() != tt.want {
			t.Errorf("Mod(%s, %s) = %s, want %s", tt.a.Inspect(), tt.b.Inspect(), got.Inspect(), tt.want)
		}
	}
}

func TestBroadcast(t *testing.T) {
	tests := []struct {
		name string
		fn   func(a, b Object) (Object, error)
		a, b Object
		want string
	}{
		{"scalar left", Sub, c(10, 0), list(c(1, 0), c(2, 0)), "[9, 8]"},
		{"scalar right", Sub, list(c(1, 0), c(2, 0)), c(10, 0), "[-9, -8]"},
		{"pairwise", Mul, list(c(1, 0), c(2, 0)), list(c(3, 0), c(4, 0)), "[3, 8]"},
		{"nested", Add, c(1, 0), list(list(c(1, 0)), list(c(2, 0))), "[[2], [3]]"},
		{"pow list base", Pow, list(c(2, 0), c(3, 0)), c(2, 0), "[4, 9]"},
		{"comparison", Eq, list(c(1, 0), c(2, 0)), c(1, 0), "[1, 0]"},
		{"empty", Add, list(), c(1, 0), "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got.Inspect() != tt.want {
				t.Errorf("got %s, want %s", got.Inspect(), tt.want)
			}
		})
	}
}

func TestBroadcast_Shape(t *testing.T) {
	scalar := c(2, 1)
	l := list(c(1, 0), c(0, 3), c(-4, 2))
	left, err := Sub(scalar, l)
	if err != nil {
		t.Fatal(err)
	}
	right, err := Sub(l, scalar)
	if err != nil {
		t.Fatal(err)
	}
	for _, got := range []Object{left, right} {
		if got.(*List).Len() != l.Len() {
			t.Fatalf("length = %d, want %d", got.(*List).Len(), l.Len())
		}
	}
	for i := range l.Elements {
		want, _ := Sub(scalar, l.Get(i))
		if left.(*List).Get(i).Inspect() != want.Inspect() {
			t.Errorf("left[%d] = %s, want %s", i, left.(*List).Get(i).Inspect(), want.Inspect())
		}
		want, _ = Sub(l.Get(i), scalar)
		if right.(*List).Get(i).Inspect() != want.Inspect() {
			t.Errorf("right[%d] = %s, want %s", i, right.(*List).Get(i).Inspect(), want.Inspect())
		}
	}
}

func TestBinary_Errors(t *testing.T) {
	str := &String{Value: "a"}
	tests := []struct {
		name string
		fn   func(a, b Object) (Object, error)
		a, b Object
		kind error
	}{
		{"unequal lists", Add, list(c(1, 0)), list(c(1, 0), c(2, 0)), diagnostics.ErrUnequalLength},
		{"nested unequal lists", Add, list(list(c(1, 0))), list(list()), diagnostics.ErrUnequalLength},
		{"string", Add, c(1, 0), str, diagnostics.ErrInvalidArgument},
		{"string in list", Mul, list(str), c(2, 0), diagnostics.ErrInvalidArgument},
		{"function", Lt, Builtins()["zip"], c(1, 0), diagnostics.ErrInvalidArgument},
		{"strings", Eq, str, str, diagnostics.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn(tt.a, tt.b)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %v", err, tt.kind)
			}
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("error %T is not an *ArgumentError", err)
			}
		})
	}
}

func TestArgumentError_Message(t *testing.T) {
	_, err := Add(c(1, 0), &String{Value: "a"})
	want := `add: invalid argument (1, "a")`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}

	_, err = Pow(c(0, 0), c(-1, 0))
	want = "pow: domain error: can not raise 0 to a negative or complex power (0, -1)"
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}

func TestAbs(t *testing.T) {
	got, err := Abs(c(3, 4))
	if err != nil || got.Inspect() != "5" {
		t.Errorf("Abs(3+4i) = %v, %v", got, err)
	}
	got, err = Abs(list(c(-3, 0), c(0, 4)))
	if err != nil || got.Inspect() != "[3, 4]" {
		t.Errorf("Abs(list) = %v, %v", got, err)
	}
	if _, err := Abs(&String{Value: "x"}); !errors.Is(err, diagnostics.ErrInvalidArgument) {
		t.Errorf("Abs(string) error = %v", err)
	}
}

func TestZip(t *testing.T) {
	got, err := Zip(list(c(1, 0), c(2, 0)), list(c(3, 0), c(4, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if got.Inspect() != "[[1, 3], [2, 4]]" {
		t.Errorf("Zip = %s", got.Inspect())
	}
	if _, err := Zip(list(c(1, 0)), list()); !errors.Is(err, diagnostics.ErrUnequalLength) {
		t.Errorf("unequal Zip error = %v", err)
	}
	if _, err := Zip(c(1, 0), list()); !errors.Is(err, diagnostics.ErrInvalidArgument) {
		t.Errorf("Zip(complex, list) error = %v", err)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		obj  Object
		want bool
	}{
		{c(0, 0), false},
		{c(0, 1e-300), true},
		{c(-1, 0), true},
		{list(), true},
		{&String{}, true},
		{nil, false},
	}
	for _, tt := range tests {
		if got := Truthy(tt.obj); got != tt.want {
			t.Errorf("Truthy(%v) = %v, want %v", tt.obj, got, tt.want)
		}
	}
	if FromBool(true).Inspect() != "1" || FromBool(false).Inspect() != "0" {
		t.Errorf("FromBool renders %s and %s", FromBool(true).Inspect(), FromBool(false).Inspect())
	}
}

func TestBuiltin_Call(t *testing.T) {
	b := Builtins()["bool"]
	got, err := b.Call(c(0, 0))
	if err != nil || got.Inspect() != "0" {
		t.Errorf("bool(0) = %v, %v", got, err)
	}
	if _, err := b.Call(); !errors.Is(err, diagnostics.ErrInvalidArgument) {
		t.Errorf("bool() error = %v, want ErrInvalidArgument", err)
	}
	got, err = Builtins()["zip"].Call(list(c(1, 0)), list(c(2, 0)))
	if err != nil || got.Inspect() != "[[1, 2]]" {
		t.Errorf("zip = %v, %v", got, err)
	}
}
