// Package config holds the language table shared by the scanner, the parser
// and the evaluator.
//
// A Language is built once (Default, Load or Parse) and is read-only
// afterwards; nothing in phasor mutates it after validation.
package config

import (
	"strings"
)

// Language describes the lexical and operator configuration of phasor.
// Markers are strings so that multi-character openers such as the
// interpolation marker "${" or the comment opener "//" need no special case.
type Language struct {
	StringOpen  string `yaml:"string_open"`
	StringClose string `yaml:"string_close"`
	ListOpen    string `yaml:"list_open"`
	ListClose   string `yaml:"list_close"`
	ExprOpen    string `yaml:"expr_open"`
	ExprClose   string `yaml:"expr_close"`
	InterpOpen  string `yaml:"interp_open"`
	InterpClose string `yaml:"interp_close"`
	Escape      string `yaml:"escape"`

	Comment    string `yaml:"comment"`
	CommentEnd string `yaml:"comment_end"`

	StatementSeparator string `yaml:"statement_separator"`
	ListSeparator      string `yaml:"list_separator"`

	// OperatorChars is the set of characters operator tokens are made of.
	OperatorChars string `yaml:"operator_chars"`
	// Operators maps an operator token to the operation it performs.
	Operators map[string]string `yaml:"operators"`
	// Precedence lists operator groups from tightest to loosest binding.
	Precedence [][]string `yaml:"precedence"`

	NumberStart string `yaml:"number_start"`
	NumberBody  string `yaml:"number_body"`
	Exponent    string `yaml:"exponent"`
	Imaginary   string `yaml:"imaginary"`
	Negative    string `yaml:"negative"`

	IdentifierStart string `yaml:"identifier_start"`
	IdentifierBody  string `yaml:"identifier_body"`

	// WhitespaceEscapes maps the character after an escape to its replacement.
	WhitespaceEscapes map[string]string `yaml:"whitespace_escapes"`

	// Tiny is the tolerance used by the fuzzy real/imaginary checks.
	Tiny float64 `yaml:"tiny"`
	// MaxDepth caps group nesting in the scanner and parser and the
	// recursion depth of the evaluator.
	MaxDepth int `yaml:"max_depth"`
}

// Default returns the built-in language table.
func Default() *Language {
	return &Language{
		StringOpen:  `"`,
		StringClose: `"`,
		ListOpen:    "[",
		ListClose:   "]",
		ExprOpen:    "(",
		ExprClose:   ")",
		InterpOpen:  "${",
		InterpClose: "}",
		Escape:      `\`,

		Comment:    "//",
		CommentEnd: "\n",

		StatementSeparator: ";",
		ListSeparator:      ",",

		OperatorChars: "+-*/%^=<>!",
		Operators:     defaultOperators(),
		Precedence: [][]string{
			{"^"},
			{"*", "/", "%"},
			{"+", "-"},
			{"==", "<", "<=", ">", ">="},
			{"="},
		},

		NumberStart: digits + ".",
		NumberBody:  digits + ".eE+-i",
		Exponent:    "eE",
		Imaginary:   "i",
		Negative:    "-",

		IdentifierStart: lowerLetters + upperLetters + "_",
		IdentifierBody:  lowerLetters + upperLetters + digits + "_",

		WhitespaceEscapes: map[string]string{
			"n": "\n",
			"t": "\t",
			"r": "\r",
			"0": "\x00",
		},

		Tiny:     1e-10,
		MaxDepth: 256,
	}
}

func defaultOperators() map[string]string {
	return map[string]string{
		"+":  OpAdd,
		"-":  OpSub,
		"*":  OpMul,
		"/":  OpDiv,
		"%":  OpMod,
		"^":  OpPow,
		"==": OpEq,
		"<":  OpLt,
		"<=": OpLte,
		">":  OpGt,
		">=": OpGte,
		"=":  OpBind,
	}
}

// IsOperator reports whether tok is a declared operator token.
func (l *Language) IsOperator(tok string) bool {
	_, ok := l.Operators[tok]
	return ok
}

// OpName returns the operation bound to an operator token.
func (l *Language) OpName(tok string) (string, bool) {
	name, ok := l.Operators[tok]
	return name, ok
}

func (l *Language) IsOperatorChar(r rune) bool { return strings.ContainsRune(l.OperatorChars, r) }
func (l *Language) IsNumberStart(r rune) bool  { return strings.ContainsRune(l.NumberStart, r) }
func (l *Language) IsNumberBody(r rune) bool   { return strings.ContainsRune(l.NumberBody, r) }
func (l *Language) IsExponent(r rune) bool     { return strings.ContainsRune(l.Exponent, r) }
func (l *Language) IsIdentStart(r rune) bool   { return strings.ContainsRune(l.IdentifierStart, r) }
func (l *Language) IsIdentBody(r rune) bool    { return strings.ContainsRune(l.IdentifierBody, r) }
func (l *Language) IsStatementSeparator(r rune) bool {
	return string(r) == l.StatementSeparator
}

// OpenGroups returns the opening markers of every grouping construct.
func (l *Language) OpenGroups() []string {
	return []string{l.StringOpen, l.ListOpen, l.ExprOpen, l.InterpOpen}
}

// CloseGroups returns the closing markers of every grouping construct.
func (l *Language) CloseGroups() []string {
	return []string{l.StringClose, l.ListClose, l.ExprClose, l.InterpClose}
}

// IsCloseGroup reports whether r is the closing marker of any group.
func (l *Language) IsCloseGroup(r rune) bool {
	s := string(r)
	for _, c := range l.CloseGroups() {
		if s == c {
			return true
		}
	}
	return false
}

// IsValidOperatorString reports whether op can be used as an operator
// token: it is made only of operator characters and none of them collides
// with a grouping, numeric, identifier or separator character.
func (l *Language) IsValidOperatorString(op string) bool {
	if op == "" {
		return false
	}
	for _, r := range op {
		if !l.IsOperatorChar(r) || l.isReserved(r) {
			return false
		}
	}
	return true
}

func (l *Language) isReserved(r rune) bool {
	for _, g := range append(l.OpenGroups(), l.CloseGroups()...) {
		if strings.ContainsRune(g, r) {
			return true
		}
	}
	if l.IsNumberStart(r) || l.IsIdentBody(r) {
		return true
	}
	for _, sep := range []string{l.CommentEnd, l.StatementSeparator, l.ListSeparator, l.Escape} {
		if strings.ContainsRune(sep, r) {
			return true
		}
	}
	return false
}

// PrecedenceOf returns the index of the group containing op, or -1.
// Lower values bind tighter.
func (l *Language) PrecedenceOf(op string) int {
	for i, group := range l.Precedence {
		for _, o := range group {
			if o == op {
				return i
			}
		}
	}
	return -1
}
