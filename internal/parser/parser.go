// Package parser turns scanned statements into an AST.
//
// Grouping fragments produced by the lexer are rebuilt recursively: the
// interior of a parenthesised group becomes a nested ExprBody, list
// interiors are split on the list separator and each element is built on
// its own, and string literals are scanned for escapes and interpolations.
package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/diagnostics"
	"github.com/funvibe/phasor/internal/lexer"
	"github.com/funvibe/phasor/internal/token"
)

// Parser builds ASTs for one language definition.
// A Parser is not safe for concurrent use.
type Parser struct {
	lang  *config.Language
	depth int
}

func New(lang *config.Language) *Parser {
	return &Parser{lang: lang}
}

// Build scans and builds text as a whole program.
func Build(text string, lang *config.Language) (*ast.ExprBody, error) {
	return New(lang).Build(text)
}

// Build scans and builds text as a whole program.
func (p *Parser) Build(text string) (*ast.ExprBody, error) {
	return p.buildAt(text, 0)
}

// BuildStatements builds statements that were already scanned from the
// start of a source text.
func (p *Parser) BuildStatements(stmts []token.Statement) (*ast.ExprBody, error) {
	body := &ast.ExprBody{}
	for _, stmt := range stmts {
		node, err := p.buildStatement(stmt, 0)
		if err != nil {
			return nil, err
		}
		if node != nil {
			body.Statements = append(body.Statements, node)
		}
	}
	return body, nil
}

// buildAt builds text that starts at byte offset base of the source, so
// tokens and errors carry source offsets.
func (p *Parser) buildAt(text string, base int) (*ast.ExprBody, error) {
	// The whole program is depth zero; every group body below it adds one.
	p.depth++
	defer func() { p.depth-- }()

	if p.depth-1 > p.lang.MaxDepth {
		return nil, diagnostics.NewError(diagnostics.ErrL003, base,
			"nesting deeper than %d", p.lang.MaxDepth)
	}

	stmts, err := lexer.New(text, p.lang).Statements()
	if err != nil {
		if de, ok := diagnostics.As(err); ok {
			de.Shift(base)
		}
		return nil, err
	}

	body := &ast.ExprBody{}
	for _, stmt := range stmts {
		node, err := p.buildStatement(stmt, base)
		if err != nil {
			return nil, err
		}
		if node != nil {
			body.Statements = append(body.Statements, node)
		}
	}
	return body, nil
}

// operand is one classified fragment of a statement: either a value node
// or an operator waiting to be reduced.
type operand struct {
	node ast.Node
	op   string
	tok  token.Fragment
}

func (o operand) isOp() bool { return o.node == nil }

func (p *Parser) buildStatement(stmt token.Statement, base int) (ast.Node, error) {
	items := make([]operand, 0, len(stmt))
	for i, frag := range stmt {
		text := strings.TrimSpace(frag.Text)
		if text == "" {
			continue
		}
		tok := token.Fragment{Text: text, Offset: base + frag.Offset + strings.Index(frag.Text, text)}
		if head, neg, ok := p.splitNegative(tok, stmt[i+1:]); ok {
			items = append(items, operand{op: head.Text, tok: head}, operand{op: neg.Text, tok: neg})
			continue
		}
		item, err := p.classify(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	items = p.foldNegatives(items)
	return p.resolve(items)
}

// classify turns a single fragment into an operand. tok.Offset is already
// a source offset.
func (p *Parser) classify(tok token.Fragment) (operand, error) {
	lang := p.lang
	text := tok.Text
	first, _ := utf8.DecodeRuneInString(text)

	switch {
	case strings.HasPrefix(text, lang.ExprOpen):
		node, err := p.buildGroup(tok)
		return operand{node: node, tok: tok}, err

	case strings.HasPrefix(text, lang.ListOpen):
		node, err := p.buildList(tok)
		return operand{node: node, tok: tok}, err

	case strings.HasPrefix(text, lang.StringOpen):
		node, err := p.buildString(tok)
		return operand{node: node, tok: tok}, err

	case p.looksNumeric(text, first):
		node, err := p.parseNumber(tok)
		return operand{node: node, tok: tok}, err

	case lang.IsOperator(text):
		return operand{op: text, tok: tok}, nil

	case p.allOperatorChars(text):
		return operand{}, diagnostics.NewError(diagnostics.ErrP002, tok.Offset,
			"unknown operator %q", text)
	}
	return operand{node: &ast.Identifier{Token: tok, Name: text}, tok: tok}, nil
}

func (p *Parser) looksNumeric(text string, first rune) bool {
	if p.lang.IsNumberStart(first) {
		return true
	}
	if p.lang.Negative == "" || !strings.HasPrefix(text, p.lang.Negative) {
		return false
	}
	rest := text[len(p.lang.Negative):]
	next, _ := utf8.DecodeRuneInString(rest)
	return rest != "" && p.lang.IsNumberStart(next) && !p.lang.IsOperator(text)
}

// splitNegative separates a trailing negative sign from an operator run
// such as "*-" when a number follows, so that "2*-3" reads as "2 * -3".
func (p *Parser) splitNegative(tok token.Fragment, rest token.Statement) (head, neg token.Fragment, ok bool) {
	lang := p.lang
	text := tok.Text
	if lang.Negative == "" || len(rest) == 0 || lang.IsOperator(text) || !p.allOperatorChars(text) {
		return head, neg, false
	}
	cut := len(text) - len(lang.Negative)
	if cut <= 0 || text[cut:] != lang.Negative || !lang.IsOperator(text[:cut]) || !lang.IsOperator(lang.Negative) {
		return head, neg, false
	}
	next := strings.TrimSpace(rest[0].Text)
	first, _ := utf8.DecodeRuneInString(next)
	if !lang.IsNumberStart(first) {
		return head, neg, false
	}
	head = token.Fragment{Text: text[:cut], Offset: tok.Offset}
	neg = token.Fragment{Text: lang.Negative, Offset: tok.Offset + cut}
	return head, neg, true
}

func (p *Parser) allOperatorChars(text string) bool {
	for _, r := range text {
		if !p.lang.IsOperatorChar(r) {
			return false
		}
	}
	return text != ""
}

// interior returns the text between an opening and closing marker of a
// group fragment, and the source offset at which it starts.
func interior(tok token.Fragment, open, close string) (string, int, error) {
	end := strings.LastIndex(tok.Text, close)
	if end < len(open) {
		return "", 0, diagnostics.NewError(diagnostics.ErrL001, tok.Offset,
			"unmatched %s", open)
	}
	return tok.Text[len(open):end], tok.Offset + len(open), nil
}

func (p *Parser) buildGroup(tok token.Fragment) (ast.Node, error) {
	text, offset, err := interior(tok, p.lang.ExprOpen, p.lang.ExprClose)
	if err != nil {
		return nil, err
	}
	body, err := p.buildAt(text, offset)
	if err != nil {
		return nil, err
	}
	body.Token = tok
	return body, nil
}

func (p *Parser) buildList(tok token.Fragment) (ast.Node, error) {
	text, offset, err := interior(tok, p.lang.ListOpen, p.lang.ListClose)
	if err != nil {
		return nil, err
	}
	list := &ast.ListLiteral{Token: tok}
	if strings.TrimSpace(text) == "" {
		return list, nil
	}

	for _, piece := range lexer.ListSplitter(p.lang).Split(text) {
		body, err := p.buildAt(piece.Text, offset+piece.Offset)
		if err != nil {
			return nil, err
		}
		switch len(body.Statements) {
		case 0:
			return nil, diagnostics.NewError(diagnostics.ErrP001, offset+piece.Offset,
				"empty list element")
		case 1:
			list.Elements = append(list.Elements, body.Statements[0])
		default:
			// A bare statement sequence has no bracket token of its own.
			body.Token = token.Fragment{Offset: offset + piece.Offset}
			list.Elements = append(list.Elements, body)
		}
	}
	return list, nil
}

func (p *Parser) buildString(tok token.Fragment) (ast.Node, error) {
	open, close := p.lang.StringOpen, p.lang.StringClose
	if len(tok.Text) < len(open)+len(close) || !strings.HasSuffix(tok.Text, close) {
		return nil, diagnostics.NewError(diagnostics.ErrL002, tok.Offset,
			"incomplete group %q", tok.Text)
	}
	raw := tok.Text[len(open) : len(tok.Text)-len(close)]
	spans, err := p.scanText(raw, tok.Offset+len(open))
	if err != nil {
		return nil, err
	}
	return &ast.StringLiteral{Token: tok, Raw: raw, Spans: spans}, nil
}

// foldNegatives merges a negative sign in prefix position with the numeric
// literal that follows it. Prefix position is the start of the statement or
// directly after another operator.
func (p *Parser) foldNegatives(items []operand) []operand {
	neg := p.lang.Negative
	if neg == "" {
		return items
	}
	out := items[:0]
	for i := 0; i < len(items); i++ {
		it := items[i]
		prefix := len(out) == 0 || out[len(out)-1].isOp()
		if it.isOp() && it.op == neg && prefix && i+1 < len(items) {
			if lit, ok := items[i+1].node.(*ast.ComplexLiteral); ok {
				tok := token.Fragment{Text: neg + lit.Token.Text, Offset: it.tok.Offset}
				// Negate only the non-zero part; a -0 imaginary part would
				// move a negative real base onto the other branch of pow.
				folded := &ast.ComplexLiteral{Token: tok, Re: -lit.Re}
				if lit.Im != 0 {
					folded = &ast.ComplexLiteral{Token: tok, Im: -lit.Im}
				}
				out = append(out, operand{node: folded, tok: tok})
				i++
				continue
			}
		}
		out = append(out, it)
	}
	return out
}
