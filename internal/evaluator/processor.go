package evaluator

import (
	"github.com/funvibe/phasor/internal/pipeline"
)

type EvaluatorProcessor struct{}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.HasErrors() {
		return ctx
	}

	env, ok := ctx.Env.(*Environment)
	if !ok || env == nil {
		env = NewEnvironment()
		RegisterBuiltins(env)
		ctx.Env = env
	}

	eval := New(ctx.Language)
	eval.Context = ctx.Context

	result, err := eval.Eval(ctx.AstRoot, env)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Result = result
	ctx.Tracef("result %s %s", result.Type(), result.Inspect())
	return ctx
}
