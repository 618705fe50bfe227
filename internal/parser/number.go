package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/diagnostics"
	"github.com/funvibe/phasor/internal/token"
)

// parseNumber reads a numeric fragment: an optional negative prefix, a
// decimal or exponent literal, and an optional imaginary suffix.
// Literals too large for a float64 become infinities.
func (p *Parser) parseNumber(tok token.Fragment) (*ast.ComplexLiteral, error) {
	text := tok.Text
	negative := false
	if neg := p.lang.Negative; neg != "" && strings.HasPrefix(text, neg) {
		negative = true
		text = text[len(neg):]
	}
	imaginary := false
	if im := p.lang.Imaginary; im != "" && strings.HasSuffix(text, im) {
		imaginary = true
		text = text[:len(text)-len(im)]
	}

	malformed := diagnostics.NewError(diagnostics.ErrP003, tok.Offset,
		"malformed number %q", tok.Text)

	// Only decimal mantissas and exponents are accepted; the exponent
	// marker may be any configured character.
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '+', r == '-':
			b.WriteRune(r)
		case p.lang.IsExponent(r):
			b.WriteByte('e')
		default:
			return nil, malformed
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, malformed
	}
	if negative {
		f = -f
	}

	lit := &ast.ComplexLiteral{Token: tok}
	if imaginary {
		lit.Im = f
	} else {
		lit.Re = f
	}
	return lit, nil
}
