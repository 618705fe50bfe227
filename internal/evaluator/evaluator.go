// Package evaluator holds the runtime value model, the broadcasting
// arithmetic over it, and the tree-walking evaluator.
package evaluator

import (
	"context"
	"strings"

	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/diagnostics"
)

// maxEvalDepth is the maximum nesting depth of Eval calls.
// Long operator chains build deep left-leaning trees, so this is far above
// the parser's group nesting limit.
const maxEvalDepth = 10000

type Evaluator struct {
	// Context for cancellation
	Context context.Context
	Lang    *config.Language

	evalDepth int
}

func New(lang *config.Language) *Evaluator {
	if lang == nil {
		lang = config.Default()
	}
	return &Evaluator{Lang: lang}
}

// Eval evaluates node in env. Errors carry the source offset of the node
// that failed.
func (e *Evaluator) Eval(node ast.Node, env *Environment) (Object, error) {
	e.evalDepth++
	defer func() { e.evalDepth-- }()

	if e.evalDepth > maxEvalDepth {
		return nil, diagnostics.NewError(diagnostics.ErrE003, offsetOf(node),
			"maximum evaluation depth exceeded")
	}

	if e.Context != nil {
		select {
		case <-e.Context.Done():
			return nil, diagnostics.NewError(diagnostics.ErrE002, offsetOf(node),
				"execution cancelled: %v", e.Context.Err())
		default:
		}
	}

	obj, err := e.evalCore(node, env)
	if err != nil {
		return nil, locate(err, node)
	}
	return obj, nil
}

func (e *Evaluator) evalCore(node ast.Node, env *Environment) (Object, error) {
	switch node := node.(type) {
	case *ast.ExprBody:
		return e.evalBody(node, env)
	case *ast.ComplexLiteral:
		return &Complex{Re: node.Re, Im: node.Im}, nil
	case *ast.ListLiteral:
		return e.evalList(node, env)
	case *ast.StringLiteral:
		return e.evalString(node, env)
	case *ast.Identifier:
		return env.Lookup(node.Name)
	case *ast.Operation:
		return e.evalOperation(node, env)
	}
	return nil, diagnostics.NewError(diagnostics.ErrP001, offsetOf(node),
		"can not evaluate %T", node)
}

// evalBody yields the value of the last statement. An empty body is 0.
func (e *Evaluator) evalBody(body *ast.ExprBody, env *Environment) (Object, error) {
	var result Object = &Complex{}
	for _, stmt := range body.Statements {
		v, err := e.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalList(list *ast.ListLiteral, env *Environment) (Object, error) {
	elements := make([]Object, len(list.Elements))
	for i, el := range list.Elements {
		v, err := e.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return NewList(elements), nil
}

// evalString rebuilds the string from its raw text, replacing every span
// with its escape value or the rendered value of its interpolation.
// An empty interpolation renders as nothing.
func (e *Evaluator) evalString(sl *ast.StringLiteral, env *Environment) (Object, error) {
	var b strings.Builder
	base := 0
	for _, sp := range sl.Spans {
		b.WriteString(sl.Raw[base:sp.Start])
		switch sp.Kind {
		case ast.SpanEscape:
			b.WriteString(sp.Value)
		case ast.SpanExpr:
			if sp.Expr != nil && len(sp.Expr.Statements) > 0 {
				v, err := e.Eval(sp.Expr, env)
				if err != nil {
					return nil, err
				}
				b.WriteString(v.Inspect())
			}
		}
		base = sp.End + 1
	}
	b.WriteString(sl.Raw[base:])
	return &String{Value: b.String()}, nil
}

func (e *Evaluator) evalOperation(op *ast.Operation, env *Environment) (Object, error) {
	name, ok := e.Lang.OpName(op.Operator)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrP002, op.Token.Offset,
			"unknown operator %q", op.Operator)
	}

	if name == config.OpBind {
		return e.evalBind(op, env)
	}

	left, err := e.Eval(op.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(op.Right, env)
	if err != nil {
		return nil, err
	}

	fn, ok := binaryOp(name, e.Lang.Tiny)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrP002, op.Token.Offset,
			"operator %q has no implementation", op.Operator)
	}
	return fn(left, right)
}

// evalBind pushes a new binding for the identifier on the left and yields
// the bound value.
func (e *Evaluator) evalBind(op *ast.Operation, env *Environment) (Object, error) {
	ident, ok := op.Left.(*ast.Identifier)
	if !ok {
		return nil, &ArgumentError{Op: config.OpBind, Kind: errInvalidArgument,
			Detail: "left side must be an identifier, got " + op.Left.String()}
	}
	val, err := e.Eval(op.Right, env)
	if err != nil {
		return nil, err
	}
	return env.Push(ident.Name, val), nil
}

func offsetOf(node ast.Node) int {
	if provider, ok := node.(ast.TokenProvider); ok {
		return provider.GetToken().Offset
	}
	return diagnostics.NoOffset
}

// locate attaches the offset of node to errors that have none yet.
func locate(err error, node ast.Node) error {
	if de, ok := diagnostics.As(err); ok {
		if de.Offset == diagnostics.NoOffset {
			de.Offset = offsetOf(node)
		}
		return err
	}
	return diagnostics.Locate(err, offsetOf(node))
}
