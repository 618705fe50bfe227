package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/phasor/internal/token"
)

// ListLiteral represents a list literal, e.g. [a, b, c]
type ListLiteral struct {
	Token    token.Fragment // the whole [...] fragment
	Elements []Node
}

func (ll *ListLiteral) Accept(v Visitor)         { v.VisitListLiteral(ll) }
func (ll *ListLiteral) TokenLiteral() string     { return ll.Token.Text }
func (ll *ListLiteral) GetToken() token.Fragment { return ll.Token }
func (ll *ListLiteral) String() string {
	if len(ll.Elements) == 0 {
		return "[]"
	}
	parts := make([]string, len(ll.Elements))
	for i, e := range ll.Elements {
		parts[i] = e.String()
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

// ComplexLiteral represents a numeric literal. Literals are either purely
// real (3, -1.5, 1e-3) or purely imaginary (2i).
type ComplexLiteral struct {
	Token token.Fragment
	Re    float64
	Im    float64
}

func (cl *ComplexLiteral) Accept(v Visitor)         { v.VisitComplexLiteral(cl) }
func (cl *ComplexLiteral) TokenLiteral() string     { return cl.Token.Text }
func (cl *ComplexLiteral) GetToken() token.Fragment { return cl.Token }
func (cl *ComplexLiteral) String() string {
	switch {
	case cl.Im == 0:
		return formatFloat(cl.Re)
	case cl.Re == 0:
		return formatFloat(cl.Im) + "i"
	}
	im := formatFloat(cl.Im)
	if cl.Im > 0 {
		im = "+" + im
	}
	return formatFloat(cl.Re) + im + "i"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type SpanKind int

const (
	SpanEscape SpanKind = iota
	SpanExpr
)

func (k SpanKind) String() string {
	if k == SpanExpr {
		return "expr"
	}
	return "escape"
}

// Span is a region of a string literal's raw text that is replaced when the
// string is evaluated. Start and End are byte offsets into Raw; End is the
// offset of the last byte of the region.
//
// An escape span carries its replacement in Value. An expr span carries the
// parsed interpolation body in Expr.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
	Value string
	Expr  *ExprBody
}

// StringLiteral represents a string literal with its pending escapes and
// interpolations, e.g. "x = ${x}\n"
type StringLiteral struct {
	Token token.Fragment
	Raw   string // text between the quotes
	Spans []Span // ordered, non-overlapping
}

func (sl *StringLiteral) Accept(v Visitor)         { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) TokenLiteral() string     { return sl.Token.Text }
func (sl *StringLiteral) GetToken() token.Fragment { return sl.Token }
func (sl *StringLiteral) String() string           { return strconv.Quote(sl.Raw) }

// Identifier represents a variable reference.
type Identifier struct {
	Token token.Fragment
	Name  string
}

func (i *Identifier) Accept(v Visitor)         { v.VisitIdentifier(i) }
func (i *Identifier) TokenLiteral() string     { return i.Token.Text }
func (i *Identifier) GetToken() token.Fragment { return i.Token }
func (i *Identifier) String() string           { return i.Name }

// Operation represents a binary operator application, e.g. a + b
type Operation struct {
	Token    token.Fragment // The operator fragment
	Operator string
	Left     Node
	Right    Node
}

func (o *Operation) Accept(v Visitor)         { v.VisitOperation(o) }
func (o *Operation) TokenLiteral() string     { return o.Token.Text }
func (o *Operation) GetToken() token.Fragment { return o.Token }
func (o *Operation) String() string {
	return "(" + o.Left.String() + " " + o.Operator + " " + o.Right.String() + ")"
}
