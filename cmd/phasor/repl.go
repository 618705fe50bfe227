package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/diagnostics"
	"github.com/funvibe/phasor/internal/evaluator"
	"github.com/funvibe/phasor/internal/parser"
	"github.com/funvibe/phasor/internal/pipeline"
)

const (
	historyFile = ".phasor_history"
	promptMain  = "phx> "
	promptCont  = "...> "
)

const replHelp = `:help          show this text
:names         list bound names
:reset         drop every binding
:quit          leave the REPL`

func runREPL(lang *config.Language, opts options) int {
	fmt.Println("phasor REPL, :help for commands, Ctrl+D to exit")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := &session{lang: lang, opts: opts, out: os.Stdout, errOut: os.Stderr}
	for {
		src, ok := readComplete(ln, lang)
		if !ok {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(line, ":") {
			if s.command(line) {
				break
			}
			continue
		}
		s.eval(src)
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// session evaluates REPL input against one environment.
type session struct {
	lang   *config.Language
	opts   options
	env    interface{}
	out    io.Writer
	errOut io.Writer
}

func (s *session) eval(src string) {
	ctx := pipeline.NewContext(src, "", s.lang)
	ctx.Logger = s.opts.logger
	ctx.Env = s.env
	ctx = pipeline.New(newStages()...).Run(ctx)
	if ctx.Env != nil {
		s.env = ctx.Env
	}
	if ctx.HasErrors() {
		reportErrors(s.errOut, ctx, s.opts.color)
		return
	}
	if ctx.Result != nil {
		fmt.Fprintln(s.out, ctx.Result.Inspect())
	}
}

// command runs a ':' command and reports whether the REPL should exit.
func (s *session) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(s.out, replHelp)
	case ":names":
		if env, ok := s.env.(*evaluator.Environment); ok {
			fmt.Fprintln(s.out, strings.Join(env.Names(), " "))
		}
	case ":reset":
		s.env = nil
	default:
		fmt.Fprintf(s.errOut, "- unknown command %s\n", fields[0])
	}
	return false
}

// readComplete reads lines until the buffer no longer ends inside an
// open group or string. A Ctrl+C drops the current input.
func readComplete(ln *liner.State, lang *config.Language) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if !incomplete(src, lang) {
			return src, true
		}
	}
}

// incomplete reports whether src fails only because a group or string
// is still open.
func incomplete(src string, lang *config.Language) bool {
	_, err := parser.Build(src, lang)
	return errors.Is(err, diagnostics.ErrIncompleteGroup)
}
