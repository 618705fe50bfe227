package pipeline

import "github.com/funvibe/phasor/internal/config"

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	if ctx.Language == nil {
		ctx.Language = config.Default()
	}
	for _, processor := range p.processors {
		ctx.Tracef("stage %T", processor)
		ctx = processor.Process(ctx)
		// Later stages see ctx.Errors and decide themselves whether
		// there is anything left to do.
	}
	return ctx
}
