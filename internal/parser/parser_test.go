package parser_test

import (
	"errors"
	"math"
	"testing"

	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/diagnostics"
	"github.com/funvibe/phasor/internal/lexer"
	"github.com/funvibe/phasor/internal/parser"
	"github.com/funvibe/phasor/internal/pipeline"
)

func TestBuild(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"precedence", "1 + 2 * 3", "{ (1 + (2 * 3)) }"},
		{"left associative", "1 - 2 - 3", "{ ((1 - 2) - 3) }"},
		{"power is left associative", "2 ^ 3 ^ 2", "{ ((2 ^ 3) ^ 2) }"},
		{"comparison group", "a < b == c", "{ ((a < b) == c) }"},
		{"bind is loosest", "x = 1 + 2", "{ (x = (1 + 2)) }"},
		{"parenthesised", "(1 + 2) * 3", "{ ({ (1 + 2) } * 3) }"},
		{"negative literal", "-1.5", "{ -1.5 }"},
		{"negative after operator", "2 * -3", "{ (2 * -3) }"},
		{"negative after operator without spaces", "2*-3", "{ (2 * -3) }"},
		{"bind negative without spaces", "x=-1", "{ (x = -1) }"},
		{"negative imaginary after comparison", "1<=-2i", "{ (1 <= -2i) }"},
		{"binary minus", "1 - 2", "{ (1 - 2) }"},
		{"binary minus without spaces", "1-2", "{ (1 - 2) }"},
		{"imaginary", "3i", "{ 3i }"},
		{"negative imaginary", "-2i", "{ -2i }"},
		{"exponent", "1e3", "{ 1000 }"},
		{"signed exponent", "25e-1", "{ 2.5 }"},
		{"lists", "[1, [2, 3]]", "{ [ 1, [ 2, 3 ] ] }"},
		{"empty list", "[]", "{ [] }"},
		{"blank list", "[ ]", "{ [] }"},
		{"list element expression", "[1 + 1, x]", "{ [ (1 + 1), x ] }"},
		{"statements", "1; 2", "{ 1; 2 }"},
		{"string", `"hi"`, `{ "hi" }`},
		{"multi char operator", "1 <= 2", "{ (1 <= 2) }"},
		{"empty", "", "{  }"},
		{"comment only", "// nothing", "{  }"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := parser.Build(tc.input, config.Default())
			if err != nil {
				t.Fatalf("Build(%q) error: %v", tc.input, err)
			}
			if got := root.String(); got != tc.want {
				t.Errorf("Build(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestBuild_NegativeLiteralSigns(t *testing.T) {
	root, err := parser.Build("-8; 2 ^ -2i", config.Default())
	if err != nil {
		t.Fatal(err)
	}
	re := root.Statements[0].(*ast.ComplexLiteral)
	if re.Re != -8 || math.Signbit(re.Im) {
		t.Errorf("-8 built as (%v, %v), want imaginary part +0", re.Re, re.Im)
	}
	im := root.Statements[1].(*ast.Operation).Right.(*ast.ComplexLiteral)
	if im.Im != -2 || math.Signbit(im.Re) {
		t.Errorf("-2i built as (%v, %v), want real part +0", im.Re, im.Im)
	}
}

func TestBuild_Literals(t *testing.T) {
	root, err := parser.Build("-1.5; 2i; 1e-3i", config.Default())
	if err != nil {
		t.Fatal(err)
	}
	want := []struct{ re, im float64 }{{-1.5, 0}, {0, 2}, {0, 1e-3}}
	if len(root.Statements) != len(want) {
		t.Fatalf("got %d statements, want %d", len(root.Statements), len(want))
	}
	for i, w := range want {
		lit, ok := root.Statements[i].(*ast.ComplexLiteral)
		if !ok {
			t.Fatalf("statement %d is %T, want *ast.ComplexLiteral", i, root.Statements[i])
		}
		if lit.Re != w.re || lit.Im != w.im {
			t.Errorf("statement %d = (%v, %v), want (%v, %v)", i, lit.Re, lit.Im, w.re, w.im)
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		kind   error
		offset int
	}{
		{"dangling operator", "1 +", diagnostics.ErrMalformedStatement, 2},
		{"two values", "1 2", diagnostics.ErrMalformedStatement, 2},
		{"leading operator", "+ 1", diagnostics.ErrMalformedStatement, 0},
		{"negated identifier", "- x", diagnostics.ErrMalformedStatement, 0},
		{"operator run", "1 -+ 2", diagnostics.ErrUnknownOperator, 2},
		{"negative run before identifier", "1 *- x", diagnostics.ErrUnknownOperator, 2},
		{"undeclared operator", "1 ** 2", diagnostics.ErrUnknownOperator, 2},
		{"unknown character inside group", "2 * (1 # 2)", diagnostics.ErrUnmatchedDelimiter, 7},
		{"brace inside list", "[1, {2]", diagnostics.ErrUnmatchedDelimiter, 4},
		{"unknown operator in group", "1 + (2 ++ 3)", diagnostics.ErrUnknownOperator, 7},
		{"unknown operator in list", "[1, 2 ++ 3]", diagnostics.ErrUnknownOperator, 6},
		{"unknown operator in interpolation", `"a ${1 ++ 2}"`, diagnostics.ErrUnknownOperator, 7},
		{"two dots", "1.2.3", diagnostics.ErrMalformedNumber, 0},
		{"double imaginary", "3ii", diagnostics.ErrMalformedNumber, 0},
		{"empty list element", "[1,,2]", diagnostics.ErrMalformedStatement, 3},
		{"unmatched closer", ")", diagnostics.ErrUnmatchedDelimiter, 0},
		{"open group", "(1", diagnostics.ErrIncompleteGroup, 0},
		{"malformed interpolation", `"${1 +}"`, diagnostics.ErrMalformedStatement, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.Build(tc.input, config.Default())
			if !errors.Is(err, tc.kind) {
				t.Fatalf("Build(%q) error = %v, want %v", tc.input, err, tc.kind)
			}
			de, ok := diagnostics.As(err)
			if !ok {
				t.Fatalf("error %v is not a diagnostic", err)
			}
			if de.Offset != tc.offset {
				t.Errorf("offset = %d, want %d", de.Offset, tc.offset)
			}
		})
	}
}

func TestBuild_Nesting(t *testing.T) {
	root, err := parser.Build("[[[1]]]", config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if d := ast.Depth(root.Statements[0]); d != 3 {
		t.Errorf("Depth = %d, want 3", d)
	}

	lang := config.Default()
	lang.MaxDepth = 3
	if _, err := parser.Build("[[[1]]]", lang); err != nil {
		t.Errorf("depth 3 should build: %v", err)
	}
	if _, err := parser.Build("[[[[1]]]]", lang); !errors.Is(err, diagnostics.ErrNestingTooDeep) {
		t.Errorf("error = %v, want ErrNestingTooDeep", err)
	}
}

func TestBuild_Tokens(t *testing.T) {
	root, err := parser.Build("x = (a + 1)", config.Default())
	if err != nil {
		t.Fatal(err)
	}
	bind := root.Statements[0].(*ast.Operation)
	if bind.Token.Offset != 2 {
		t.Errorf("bind offset = %d, want 2", bind.Token.Offset)
	}
	group := bind.Right.(*ast.ExprBody)
	if group.Token.Text != "(a + 1)" || group.Token.Offset != 4 {
		t.Errorf("group token = %+v", group.Token)
	}
	sum := group.Statements[0].(*ast.Operation)
	if sum.Left.(*ast.Identifier).Token.Offset != 5 {
		t.Errorf("identifier offset = %d, want 5", sum.Left.(*ast.Identifier).Token.Offset)
	}
}

func TestBuild_CustomLanguage(t *testing.T) {
	lang := config.Default()
	lang.StringOpen, lang.StringClose = "<", ">"
	lang.OperatorChars = "+-*/%^=!"
	lang.Operators = map[string]string{"+": config.OpAdd, "-": config.OpSub, "*": config.OpMul, "=": config.OpBind}
	lang.Precedence = [][]string{{"*"}, {"+", "-"}, {"="}}

	root, err := parser.Build(`s = <a <b> c>`, lang)
	if err != nil {
		t.Fatal(err)
	}
	bind := root.Statements[0].(*ast.Operation)
	str, ok := bind.Right.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("right side is %T, want *ast.StringLiteral", bind.Right)
	}
	if str.Raw != "a <b> c" {
		t.Errorf("Raw = %q, want %q", str.Raw, "a <b> c")
	}
}

func TestParserProcessor(t *testing.T) {
	ctx := pipeline.NewContext("1 + 2; 3", "", config.Default())
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if ctx.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if got := ctx.AstRoot.String(); got != "{ (1 + 2); 3 }" {
		t.Errorf("AstRoot = %s", got)
	}
}

func TestParserProcessor_Independent(t *testing.T) {
	ctx := pipeline.NewContext("1 +; 2; )", "prog.phx", config.Default())
	ctx.Independent = true
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)

	if len(ctx.Errors) != 2 {
		t.Fatalf("got %d errors %v, want 2", len(ctx.Errors), ctx.Errors)
	}
	if !errors.Is(ctx.Errors[0], diagnostics.ErrMalformedStatement) {
		t.Errorf("first error = %v", ctx.Errors[0])
	}
	if !errors.Is(ctx.Errors[1], diagnostics.ErrUnmatchedDelimiter) || ctx.Errors[1].Offset != 8 {
		t.Errorf("second error = %v, want unmatched delimiter at 8", ctx.Errors[1])
	}
	if ctx.Errors[1].File != "prog.phx" {
		t.Errorf("File = %q", ctx.Errors[1].File)
	}
	if len(ctx.AstRoot.Statements) != 1 {
		t.Errorf("got %d statements, want 1", len(ctx.AstRoot.Statements))
	}
}
