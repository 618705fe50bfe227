package prettyprinter

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/config"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders an AST back to source text in the given language.
// Operations get parentheses only where the precedence table needs them;
// all operators are left-associative.
type CodePrinter struct {
	lang *config.Language
	buf  bytes.Buffer

	parentPrec int
	isRight    bool
}

func NewCodePrinter(lang *config.Language) *CodePrinter {
	if lang == nil {
		lang = config.Default()
	}
	return &CodePrinter{lang: lang}
}

// Print renders node and returns the text.
func (p *CodePrinter) Print(node ast.Node) string {
	p.buf.Reset()
	p.printNode(node, 0, false)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

// printNode prints n as an operand of an operator with precedence
// parentPrec; 0 means n is not an operand.
func (p *CodePrinter) printNode(n ast.Node, parentPrec int, isRight bool) {
	if n == nil {
		p.write("<???>")
		return
	}
	oldPrec, oldRight := p.parentPrec, p.isRight
	p.parentPrec, p.isRight = parentPrec, isRight
	n.Accept(p)
	p.parentPrec, p.isRight = oldPrec, oldRight
}

// strength is the binding strength of op, higher binds tighter.
func (p *CodePrinter) strength(op string) int {
	idx := p.lang.PrecedenceOf(op)
	if idx < 0 {
		return len(p.lang.Precedence) + 1
	}
	return len(p.lang.Precedence) - idx
}

func (p *CodePrinter) statementSeparator() string {
	if p.lang.StatementSeparator == "\n" {
		return "\n"
	}
	return p.lang.StatementSeparator + " "
}

func (p *CodePrinter) VisitExprBody(n *ast.ExprBody) {
	bare := n.Token.Text == ""
	if !bare {
		p.write(p.lang.ExprOpen)
	}
	for i, stmt := range n.Statements {
		if i > 0 {
			p.write(p.statementSeparator())
		}
		p.printNode(stmt, 0, false)
	}
	if !bare {
		p.write(p.lang.ExprClose)
	}
}

func (p *CodePrinter) VisitListLiteral(n *ast.ListLiteral) {
	p.write(p.lang.ListOpen)
	for i, el := range n.Elements {
		if i > 0 {
			p.write(p.lang.ListSeparator + " ")
		}
		p.printNode(el, 0, false)
	}
	p.write(p.lang.ListClose)
}

func (p *CodePrinter) VisitComplexLiteral(n *ast.ComplexLiteral) {
	switch {
	case n.Im == 0:
		p.write(p.number(n.Re))
	case n.Re == 0:
		p.write(p.number(n.Im) + p.lang.Imaginary)
	default:
		// Not a single literal in source; write it as a sum.
		op := p.operatorFor(config.OpAdd)
		p.write(p.lang.ExprOpen + p.number(n.Re) + " " + op + " " + p.number(n.Im) + p.lang.Imaginary + p.lang.ExprClose)
	}
}

func (p *CodePrinter) number(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) {
		// Overflowing literals parse to infinity; print one back.
		s = strings.Replace(s, "Inf", "1e999", 1)
		s = strings.TrimPrefix(s, "+")
	}
	if exp, _ := utf8.DecodeRuneInString(p.lang.Exponent); exp != 'e' && exp != utf8.RuneError {
		s = strings.Replace(s, "e", string(exp), 1)
	}
	if strings.HasPrefix(s, "-") && p.lang.Negative != "-" {
		s = p.lang.Negative + s[1:]
	}
	return s
}

// operatorFor returns a token that performs the named operation.
func (p *CodePrinter) operatorFor(name string) string {
	best := ""
	for tok, op := range p.lang.Operators {
		if op == name && (best == "" || tok < best) {
			best = tok
		}
	}
	return best
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(p.lang.StringOpen + n.Raw + p.lang.StringClose)
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitOperation(n *ast.Operation) {
	prec := p.strength(n.Operator)
	needParens := prec < p.parentPrec || (prec == p.parentPrec && p.isRight)
	if needParens {
		p.write(p.lang.ExprOpen)
	}
	p.printNode(n.Left, prec, false)
	p.write(" " + n.Operator + " ")
	p.printNode(n.Right, prec, true)
	if needParens {
		p.write(p.lang.ExprClose)
	}
}
