package prettyprinter_test

import (
	"testing"

	"github.com/funvibe/phasor/internal/ast"
	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/parser"
	"github.com/funvibe/phasor/internal/prettyprinter"
)

func TestCodePrinter_RoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"precedence", "1+2*3", "1 + 2 * 3"},
		{"group kept", "(1 + 2) * 3", "(1 + 2) * 3"},
		{"left chain", "1 - 2 - 3", "1 - 2 - 3"},
		{"negative", "x = -1.5", "x = -1.5"},
		{"imaginary", "2i * -3i", "2i * -3i"},
		{"exponent", "1e21", "1e+21"},
		{"lists", "[1,[2 , 3],[]]", "[1, [2, 3], []]"},
		{"strings", `s = "a ${x}\n"`, `s = "a ${x}\n"`},
		{"statements", "a = 1;b = a", "a = 1; b = a"},
		{"bare list element", "[1; 2, 3]", "[1; 2, 3]"},
	}

	lang := config.Default()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := parser.Build(tc.input, lang)
			if err != nil {
				t.Fatalf("Build(%q) error: %v", tc.input, err)
			}
			got := prettyprinter.NewCodePrinter(lang).Print(root)
			if got != tc.want {
				t.Errorf("Print = %q, want %q", got, tc.want)
			}

			again, err := parser.Build(got, lang)
			if err != nil {
				t.Fatalf("printed text %q does not build: %v", got, err)
			}
			if again.String() != root.String() {
				t.Errorf("reparsed AST %s differs from %s", again.String(), root.String())
			}
		})
	}
}

func TestCodePrinter_MinimalParens(t *testing.T) {
	num := func(f float64) ast.Node { return &ast.ComplexLiteral{Re: f} }
	op := func(o string, l, r ast.Node) ast.Node { return &ast.Operation{Operator: o, Left: l, Right: r} }

	testCases := []struct {
		name string
		node ast.Node
		want string
	}{
		{"looser child", op("*", op("+", num(1), num(2)), num(3)), "(1 + 2) * 3"},
		{"tighter child", op("+", num(1), op("*", num(2), num(3))), "1 + 2 * 3"},
		{"right operand of same group", op("-", num(1), op("-", num(2), num(3))), "1 - (2 - 3)"},
		{"left operand of same group", op("-", op("-", num(1), num(2)), num(3)), "1 - 2 - 3"},
		{"mixed literal", &ast.ComplexLiteral{Re: 1, Im: -2}, "(1 + -2i)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := prettyprinter.NewCodePrinter(nil).Print(tc.node)
			if got != tc.want {
				t.Errorf("Print = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTreePrinter(t *testing.T) {
	root, err := parser.Build(`x = [1, "${y}"]`, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	want := `ExprBody @0
  Operation @2 =
    Identifier @0 x
    List @4 (2)
      Complex @5 1
      String @8 "${y}"
        expr [0:3]
          ExprBody @9
            Identifier @11 y
`
	if got := prettyprinter.NewTreePrinter().Print(root); got != want {
		t.Errorf("tree:\n%s\nwant:\n%s", got, want)
	}
}
