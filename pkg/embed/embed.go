// Package phasor embeds the phasor expression language in Go programs.
//
//	in := phasor.New()
//	in.Set("v", []float64{1, 2, 3})
//	out, err := in.Eval("v * 2i")
package phasor

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/evaluator"
	"github.com/funvibe/phasor/internal/lexer"
	"github.com/funvibe/phasor/internal/parser"
	"github.com/funvibe/phasor/internal/pipeline"
)

// Interpreter keeps one environment across Eval calls, so bindings made
// by one program are visible to the next.
type Interpreter struct {
	lang       *config.Language
	env        *evaluator.Environment
	marshaller *Marshaller
}

// New creates an interpreter for the built-in language.
func New() *Interpreter {
	return NewWithLanguage(config.Default())
}

// NewWithLanguage creates an interpreter for a custom language table.
func NewWithLanguage(lang *config.Language) *Interpreter {
	env := evaluator.NewEnvironment()
	evaluator.RegisterBuiltins(env)
	return &Interpreter{
		lang:       lang,
		env:        env,
		marshaller: NewMarshaller(lang.Tiny),
	}
}

// Set binds a Go value to name. Functions become builtins callable
// through Call.
func (in *Interpreter) Set(name string, val interface{}) error {
	var (
		obj evaluator.Object
		err error
	)
	if fn := reflect.ValueOf(val); fn.Kind() == reflect.Func {
		obj, err = in.marshaller.funcToBuiltin(name, fn)
	} else {
		obj, err = in.marshaller.ToValue(val)
	}
	if err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	in.env.Push(name, obj)
	return nil
}

// Get returns the innermost binding of name as a Go value.
func (in *Interpreter) Get(name string) (interface{}, error) {
	obj, err := in.env.Lookup(name)
	if err != nil {
		return nil, err
	}
	return in.marshaller.FromValue(obj, nil)
}

// Call runs the builtin bound to name with Go arguments.
func (in *Interpreter) Call(name string, args ...interface{}) (interface{}, error) {
	obj, err := in.env.Lookup(name)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*evaluator.Builtin)
	if !ok {
		return nil, fmt.Errorf("%s is not callable", name)
	}

	objs := make([]evaluator.Object, len(args))
	for i, arg := range args {
		if objs[i], err = in.marshaller.ToValue(arg); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
	}
	result, err := b.Call(objs...)
	if err != nil {
		return nil, err
	}
	return in.marshaller.FromValue(result, nil)
}

// Eval runs code and returns the value of its last statement.
func (in *Interpreter) Eval(code string) (interface{}, error) {
	return in.EvalContext(context.Background(), code)
}

// EvalContext is Eval with cancellation.
func (in *Interpreter) EvalContext(ctx context.Context, code string) (interface{}, error) {
	obj, err := in.run(ctx, code, "<eval>")
	if err != nil {
		return nil, err
	}
	return in.marshaller.FromValue(obj, nil)
}

// LoadFile runs the program at path for its bindings.
func (in *Interpreter) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = in.run(context.Background(), string(content), path)
	return err
}

func (in *Interpreter) run(c context.Context, code, path string) (evaluator.Object, error) {
	ctx := pipeline.NewContext(code, path, in.lang)
	ctx.Env = in.env
	ctx.Context = c

	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{},
	).Run(ctx)

	switch len(ctx.Errors) {
	case 0:
	case 1:
		return nil, ctx.Errors[0]
	default:
		msgs := make([]string, len(ctx.Errors))
		for i, e := range ctx.Errors {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("%d errors:\n%s", len(msgs), strings.Join(msgs, "\n"))
	}

	obj, _ := ctx.Result.(evaluator.Object)
	return obj, nil
}
