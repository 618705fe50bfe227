package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/evaluator"
	"github.com/funvibe/phasor/internal/lexer"
	"github.com/funvibe/phasor/internal/parser"
	"github.com/funvibe/phasor/internal/pipeline"
	"github.com/funvibe/phasor/internal/prettyprinter"
)

// options are the command line switches shared by file, -e and REPL runs.
type options struct {
	tokens  bool
	ast     bool
	check   bool
	format  bool
	timeout time.Duration
	color   bool
	logger  *log.Logger
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	var (
		langPath string
		expr     string
		verbose  bool
		opts     options
	)
	flag.StringVar(&langPath, "lang", "", "language definition file (YAML)")
	flag.StringVar(&expr, "e", "", "evaluate the given source and exit")
	flag.BoolVar(&opts.tokens, "tokens", false, "print scanned statements")
	flag.BoolVar(&opts.ast, "ast", false, "print the syntax tree")
	flag.BoolVar(&opts.check, "check", false, "report every malformed statement without evaluating")
	flag.BoolVar(&opts.format, "fmt", false, "print the program in canonical form")
	flag.DurationVar(&opts.timeout, "timeout", 0, "abort evaluation after this long (0 = never)")
	flag.BoolVar(&verbose, "v", false, "trace pipeline stages to stderr")
	flag.Parse()

	log.SetFlags(0)
	if verbose {
		config.IsTraceMode = true
		opts.logger = log.New(os.Stderr, "", 0)
	}
	opts.color = colorEnabled(os.Stderr)

	args := flag.Args()
	lang, err := loadLanguage(langPath, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "- %s\n", err)
		os.Exit(1)
	}

	switch {
	case expr != "":
		os.Exit(runSource(expr, "", lang, opts, os.Stdout, os.Stderr))
	case len(args) > 0:
		os.Exit(runFile(args[0], lang, opts))
	default:
		os.Exit(runREPL(lang, opts))
	}
}

// loadLanguage reads -lang, else a phasor.yaml next to the source file
// or in the working directory, else the built-in language.
func loadLanguage(path string, args []string) (*config.Language, error) {
	if path != "" {
		return config.Load(path)
	}
	dir := "."
	if len(args) > 0 {
		dir = filepath.Dir(args[0])
	}
	found, err := config.Find(dir)
	if err != nil || found == "" {
		return config.Default(), nil
	}
	return config.Load(found)
}

func runFile(path string, lang *config.Language, opts options) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "- %s\n", errors.Wrapf(err, "reading %s", path))
		return 1
	}
	return runSource(string(src), path, lang, opts, os.Stdout, os.Stderr)
}

// runSource runs src through the pipeline and prints what opts ask for.
// It returns the process exit code.
func runSource(src, path string, lang *config.Language, opts options, out, errOut io.Writer) int {
	ctx := pipeline.NewContext(src, path, lang)
	ctx.Logger = opts.logger
	ctx.Independent = opts.check
	if opts.timeout > 0 {
		c, cancel := context.WithTimeout(context.Background(), opts.timeout)
		defer cancel()
		ctx.Context = c
	}

	stages := newStages()
	if opts.check || opts.format {
		stages = stages[:2]
	}
	ctx = pipeline.New(stages...).Run(ctx)

	if opts.tokens {
		for i, stmt := range ctx.Statements {
			fmt.Fprintf(out, "%d: %q\n", i, stmt.Texts())
		}
	}
	if opts.ast && ctx.AstRoot != nil {
		fmt.Fprint(out, prettyprinter.NewTreePrinter().Print(ctx.AstRoot))
	}
	if opts.format && ctx.AstRoot != nil && !ctx.HasErrors() {
		fmt.Fprintln(out, prettyprinter.NewCodePrinter(lang).Print(ctx.AstRoot))
	}

	if ctx.HasErrors() {
		reportErrors(errOut, ctx, opts.color)
		return 1
	}
	if ctx.Result != nil {
		fmt.Fprintln(out, ctx.Result.Inspect())
	}
	return 0
}

func newStages() []pipeline.Processor {
	return []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{},
	}
}

func reportErrors(w io.Writer, ctx *pipeline.PipelineContext, color bool) {
	for _, err := range ctx.Errors {
		msg := err.Error()
		if color {
			msg = "\x1b[31m" + msg + "\x1b[0m"
		}
		fmt.Fprintf(w, "- %s\n", msg)
	}
}

// colorEnabled follows the NO_COLOR convention and only colours terminals.
func colorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
