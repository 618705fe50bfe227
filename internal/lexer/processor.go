package lexer

import (
	"github.com/funvibe/phasor/internal/pipeline"
)

// LexerProcessor splits ctx.SourceCode into statements.
// In independent mode the parser scans each statement itself and this
// stage does nothing.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Independent {
		return ctx
	}
	stmts, err := New(ctx.SourceCode, ctx.Language).Statements()
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Statements = stmts
	ctx.Tracef("scanned %d statement(s)", len(stmts))
	return ctx
}
