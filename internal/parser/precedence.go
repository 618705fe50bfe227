package parser

import (
	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/diagnostics"
)

// resolve reduces a flat operand sequence to a single node.
//
// Operands live in a fixed slice and are linked through prev/next indices.
// Each precedence group, tightest first, is applied in one left-to-right
// pass: an operator of the group takes the values on either side, the
// result replaces the left value and the operator and right value are
// unlinked. This makes every operator left-associative.
func (p *Parser) resolve(items []operand) (ast.Node, error) {
	n := len(items)
	if n == 0 {
		return nil, nil
	}

	prev := make([]int, n)
	next := make([]int, n)
	for i := range items {
		prev[i] = i - 1
		next[i] = i + 1
	}

	for _, group := range p.lang.Precedence {
		for i := 0; i < n; {
			it := items[i]
			if !it.isOp() || !contains(group, it.op) {
				i = next[i]
				continue
			}
			l, r := prev[i], next[i]
			if l < 0 || r >= n || items[l].isOp() || items[r].isOp() {
				return nil, diagnostics.NewError(diagnostics.ErrP001, it.tok.Offset,
					"operator %q is missing an operand", it.op)
			}
			items[l].node = &ast.Operation{
				Token:    it.tok,
				Operator: it.op,
				Left:     items[l].node,
				Right:    items[r].node,
			}
			after := next[r]
			next[l] = after
			if after < n {
				prev[after] = l
			}
			i = after
		}
	}

	// Index 0 always survives: a reduction stores its result in the left slot.
	if items[0].isOp() {
		return nil, diagnostics.NewError(diagnostics.ErrP001, items[0].tok.Offset,
			"operator %q is missing an operand", items[0].op)
	}
	if next[0] < n {
		extra := items[next[0]]
		return nil, diagnostics.NewError(diagnostics.ErrP001, extra.tok.Offset,
			"unexpected %q: statement does not reduce to one value", extra.tok.Text)
	}
	return items[0].node, nil
}

func contains(group []string, op string) bool {
	for _, g := range group {
		if g == op {
			return true
		}
	}
	return false
}
