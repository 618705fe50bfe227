package ast

import (
	"strings"

	"github.com/funvibe/phasor/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Fragment
}

// Node is the base interface for all AST nodes.
// Nodes are built once by the parser and never modified afterwards.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	String() string
}

// Visitor has one method per node kind.
type Visitor interface {
	VisitExprBody(n *ExprBody)
	VisitListLiteral(n *ListLiteral)
	VisitComplexLiteral(n *ComplexLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitIdentifier(n *Identifier)
	VisitOperation(n *Operation)
}

// ExprBody is a sequence of statements: a whole program, the contents of a
// parenthesised group, or the body of a string interpolation.
type ExprBody struct {
	Token      token.Fragment // the bracketed group, empty text for a bare sequence
	Statements []Node
}

func (eb *ExprBody) Accept(v Visitor) { v.VisitExprBody(eb) }
func (eb *ExprBody) TokenLiteral() string {
	if len(eb.Statements) > 0 {
		return eb.Statements[0].TokenLiteral()
	}
	return ""
}
func (eb *ExprBody) GetToken() token.Fragment {
	if eb == nil {
		return token.Fragment{}
	}
	return eb.Token
}

func (eb *ExprBody) String() string {
	parts := make([]string, len(eb.Statements))
	for i, s := range eb.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// Depth returns the number of nested group levels under n: lists,
// parenthesised bodies and interpolations each add one.
func Depth(n Node) int {
	switch n := n.(type) {
	case *ExprBody:
		return 1 + maxDepth(n.Statements)
	case *ListLiteral:
		return 1 + maxDepth(n.Elements)
	case *StringLiteral:
		d := 0
		for _, sp := range n.Spans {
			if sp.Expr != nil {
				if sd := Depth(sp.Expr); sd > d {
					d = sd
				}
			}
		}
		return d
	case *Operation:
		l, r := Depth(n.Left), Depth(n.Right)
		if l > r {
			return l
		}
		return r
	}
	return 0
}

func maxDepth(nodes []Node) int {
	d := 0
	for _, n := range nodes {
		if nd := Depth(n); nd > d {
			d = nd
		}
	}
	return d
}
