package phasor_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/funvibe/phasor/internal/diagnostics"
	"github.com/funvibe/phasor/internal/evaluator"
	phasor "github.com/funvibe/phasor/pkg/embed"
)

func TestEmbedAPI(t *testing.T) {
	in := phasor.New()

	if err := in.Set("v", []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := in.Set("z", complex(0, 1)); err != nil {
		t.Fatal(err)
	}

	got, err := in.Eval("w = v * z; w ^ 2")
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	want := []interface{}{-1.0, -4.0, -9.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Eval = %#v, want %#v", got, want)
	}

	w, err := in.Get("w")
	if err != nil {
		t.Fatalf("Get(w) error: %v", err)
	}
	if want := []interface{}{complex(0, 1), complex(0, 2), complex(0, 3)}; !reflect.DeepEqual(w, want) {
		t.Errorf("Get(w) = %#v, want %#v", w, want)
	}

	s, err := in.Eval(`"len ${v}"`)
	if err != nil || s != "len [1, 2, 3]" {
		t.Errorf("string Eval = %v, %v", s, err)
	}
}

func TestEmbed_Call(t *testing.T) {
	in := phasor.New()

	if err := in.Set("double", func(x float64) float64 { return x * 2 }); err != nil {
		t.Fatal(err)
	}
	got, err := in.Call("double", 21)
	if err != nil || got != 42.0 {
		t.Errorf("Call(double, 21) = %v, %v", got, err)
	}

	if err := in.Set("half", func(n int) (int, error) {
		if n%2 != 0 {
			return 0, fmt.Errorf("%d is odd", n)
		}
		return n / 2, nil
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := in.Call("half", 3); err == nil {
		t.Errorf("Call(half, 3) succeeded, want the function's error")
	}
	if _, err := in.Call("half", 2.5); err == nil {
		t.Errorf("Call(half, 2.5) succeeded, want a conversion error")
	}

	if got, err := in.Call("abs", complex(3, 4)); err != nil || got != 5.0 {
		t.Errorf("Call(abs, 3+4i) = %v, %v", got, err)
	}
	if _, err := in.Call("abs"); !errors.Is(err, diagnostics.ErrInvalidArgument) {
		t.Errorf("Call(abs) with no argument error = %v", err)
	}
	if _, err := in.Call("missing"); !errors.Is(err, diagnostics.ErrUnboundIdentifier) {
		t.Errorf("Call(missing) error = %v", err)
	}
}

func TestEmbed_Errors(t *testing.T) {
	in := phasor.New()

	_, err := in.Eval("1 + q")
	if !errors.Is(err, diagnostics.ErrUnboundIdentifier) {
		t.Errorf("Eval error = %v, want unbound identifier", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := in.EvalContext(ctx, "1"); !errors.Is(err, diagnostics.ErrCancelled) {
		t.Errorf("EvalContext error = %v, want cancelled", err)
	}

	if err := in.Set("m", map[string]int{}); err == nil {
		t.Errorf("Set of a map succeeded")
	}
}

func TestEmbed_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.phx")
	if err := os.WriteFile(path, []byte("k = 2i; r = k * k"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := phasor.New()
	if err := in.LoadFile(path); err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if r, err := in.Get("r"); err != nil || r != -4.0 {
		t.Errorf("Get(r) = %v, %v", r, err)
	}
}

func TestMarshaller_FromValue(t *testing.T) {
	m := phasor.NewMarshaller(1e-10)
	list := evaluator.NewList([]evaluator.Object{&evaluator.Complex{Re: 1}, &evaluator.Complex{Re: 2}})

	got, err := m.FromValue(list, reflect.TypeOf([]int{}))
	if err != nil || !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("FromValue([]int) = %#v, %v", got, err)
	}

	if _, err := m.FromValue(&evaluator.Complex{Re: 1, Im: 1}, reflect.TypeOf(0.0)); err == nil {
		t.Errorf("complex value converted to float64")
	}

	b, err := m.FromValue(&evaluator.Complex{Re: 1}, reflect.TypeOf(true))
	if err != nil || b != true {
		t.Errorf("FromValue(bool) = %v, %v", b, err)
	}
}
