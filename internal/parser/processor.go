package parser

import (
	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/lexer"
	"github.com/funvibe/phasor/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}
	p := New(ctx.Language)

	if ctx.Independent {
		// Each statement is scanned and built on its own, so every broken
		// statement is reported, not just the first.
		root := &ast.ExprBody{}
		for _, piece := range lexer.SplitStatements(ctx.SourceCode, ctx.Language) {
			body, err := p.buildAt(piece.Text, piece.Offset)
			if err != nil {
				ctx.AddError(err)
				continue
			}
			root.Statements = append(root.Statements, body.Statements...)
		}
		ctx.AstRoot = root
		ctx.Tracef("built %d statement(s) independently, %d error(s)", len(root.Statements), len(ctx.Errors))
		return ctx
	}

	root, err := p.BuildStatements(ctx.Statements)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.AstRoot = root
	ctx.Tracef("built %d statement(s), nesting depth %d", len(root.Statements), ast.Depth(root)-1)
	return ctx
}
