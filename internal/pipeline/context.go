package pipeline

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/diagnostics"
	"github.com/funvibe/phasor/internal/token"
)

// Processor is a single stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Inspector is any value that can render itself for display.
type Inspector interface {
	Inspect() string
}

// PipelineContext carries the state of one run through the stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	Language   *config.Language

	// Independent builds each statement on its own so that one malformed
	// statement does not stop the others from being reported.
	Independent bool

	Statements []token.Statement
	AstRoot    *ast.ExprBody
	Result     Inspector

	// Env is the evaluator environment, kept between runs so a REPL
	// session sees earlier bindings. Typed loosely to avoid an import cycle.
	Env interface{}
	// Context cancels evaluation when done. Nil means no cancellation.
	Context context.Context

	Errors []*diagnostics.DiagnosticError

	// RunID tags trace output of this run.
	RunID  uuid.UUID
	Logger *log.Logger
}

// NewContext returns a context for source read from path.
func NewContext(source, path string, lang *config.Language) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		FilePath:   path,
		Language:   lang,
		RunID:      uuid.New(),
	}
}

// AddError records err, converting foreign errors to diagnostics.
func (ctx *PipelineContext) AddError(err error) {
	de, ok := diagnostics.As(err)
	if !ok {
		de = &diagnostics.DiagnosticError{Message: err.Error(), Offset: diagnostics.NoOffset}
	}
	if de.File == "" {
		de.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, de)
}

func (ctx *PipelineContext) HasErrors() bool { return len(ctx.Errors) > 0 }

// Tracef logs a trace line when trace mode is on.
func (ctx *PipelineContext) Tracef(format string, args ...interface{}) {
	if !config.IsTraceMode || ctx.Logger == nil {
		return
	}
	ctx.Logger.Printf("[%s] "+format, append([]interface{}{ctx.RunID}, args...)...)
}
