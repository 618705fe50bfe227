package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/phasor/internal/ast"
)

// --- Tree Printer (Output shows the AST structure) ---

// TreePrinter dumps an AST one node per line, children indented under
// their parent. Interpolations are shown under their string.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// Print dumps node and returns the text.
func (p *TreePrinter) Print(node ast.Node) string {
	p.buf.Reset()
	p.indent = 0
	if node == nil {
		p.line("<nil>")
	} else {
		node.Accept(p)
	}
	return p.buf.String()
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) line(format string, args ...interface{}) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) children(nodes ...ast.Node) {
	p.indent++
	for _, n := range nodes {
		n.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitExprBody(n *ast.ExprBody) {
	p.line("ExprBody @%d", n.Token.Offset)
	p.children(n.Statements...)
}

func (p *TreePrinter) VisitListLiteral(n *ast.ListLiteral) {
	p.line("List @%d (%d)", n.Token.Offset, len(n.Elements))
	p.children(n.Elements...)
}

func (p *TreePrinter) VisitComplexLiteral(n *ast.ComplexLiteral) {
	p.line("Complex @%d %s", n.Token.Offset, n.String())
}

func (p *TreePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.line("String @%d %s", n.Token.Offset, strconv.Quote(n.Raw))
	p.indent++
	for _, sp := range n.Spans {
		switch sp.Kind {
		case ast.SpanEscape:
			p.line("%s [%d:%d] %s", sp.Kind, sp.Start, sp.End, strconv.Quote(sp.Value))
		case ast.SpanExpr:
			p.line("%s [%d:%d]", sp.Kind, sp.Start, sp.End)
			p.children(sp.Expr)
		}
	}
	p.indent--
}

func (p *TreePrinter) VisitIdentifier(n *ast.Identifier) {
	p.line("Identifier @%d %s", n.Token.Offset, n.Name)
}

func (p *TreePrinter) VisitOperation(n *ast.Operation) {
	p.line("Operation @%d %s", n.Token.Offset, n.Operator)
	p.children(n.Left, n.Right)
}
