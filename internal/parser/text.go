package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/diagnostics"
)

// ScanText finds the escapes and interpolations in the raw text of a string
// literal, the part between the quotes. Interpolation bodies are built
// as nested programs.
func ScanText(raw string, lang *config.Language) ([]ast.Span, error) {
	return New(lang).scanText(raw, 0)
}

type textFrame int

const (
	frameInterp textFrame = iota
	frameString
)

// scanText walks raw, which starts at source offset base. Only escapes at
// the top level produce spans; escapes inside an interpolation belong to
// the nested text and are handled when that text is built.
func (p *Parser) scanText(raw string, base int) ([]ast.Span, error) {
	lang := p.lang
	at := func(i int, marker string) bool {
		return marker != "" && strings.HasPrefix(raw[i:], marker)
	}

	var (
		spans []ast.Span
		stack []textFrame
		start int
	)

	for i := 0; i < len(raw); {
		_, w := utf8.DecodeRuneInString(raw[i:])

		if len(stack) == 0 {
			switch {
			case at(i, lang.Escape):
				j := i + len(lang.Escape)
				if j >= len(raw) {
					return nil, diagnostics.NewError(diagnostics.ErrL002, base+i,
						"escape at end of string")
				}
				r, ew := utf8.DecodeRuneInString(raw[j:])
				value := string(r)
				if mapped, ok := lang.WhitespaceEscapes[value]; ok {
					value = mapped
				}
				spans = append(spans, ast.Span{Kind: ast.SpanEscape, Start: i, End: j + ew - 1, Value: value})
				i = j + ew
			case at(i, lang.InterpOpen):
				start = i
				stack = append(stack, frameInterp)
				i += len(lang.InterpOpen)
			default:
				i += w
			}
			continue
		}

		if len(stack) > lang.MaxDepth {
			return nil, diagnostics.NewError(diagnostics.ErrL003, base+i,
				"nesting deeper than %d", lang.MaxDepth)
		}

		switch stack[len(stack)-1] {
		case frameString:
			switch {
			case at(i, lang.Escape):
				i += len(lang.Escape)
				if i < len(raw) {
					_, ew := utf8.DecodeRuneInString(raw[i:])
					i += ew
				}
			case at(i, lang.InterpOpen):
				stack = append(stack, frameInterp)
				i += len(lang.InterpOpen)
			case at(i, lang.StringClose):
				stack = stack[:len(stack)-1]
				i += len(lang.StringClose)
			default:
				i += w
			}

		case frameInterp:
			switch {
			case at(i, lang.StringOpen):
				stack = append(stack, frameString)
				i += len(lang.StringOpen)
			case at(i, lang.InterpOpen):
				stack = append(stack, frameInterp)
				i += len(lang.InterpOpen)
			case at(i, lang.InterpClose):
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					bodyStart := start + len(lang.InterpOpen)
					body, err := p.buildAt(raw[bodyStart:i], base+bodyStart)
					if err != nil {
						return nil, err
					}
					body.Token.Text = raw[start : i+len(lang.InterpClose)]
					body.Token.Offset = base + start
					spans = append(spans, ast.Span{
						Kind:  ast.SpanExpr,
						Start: start,
						End:   i + len(lang.InterpClose) - 1,
						Expr:  body,
					})
				}
				i += len(lang.InterpClose)
			default:
				i += w
			}
		}
	}

	if len(stack) > 0 {
		return nil, diagnostics.NewError(diagnostics.ErrL002, base+start,
			"incomplete interpolation %q", raw[start:])
	}
	return spans, nil
}
