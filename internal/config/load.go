package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads and parses a language file.
func Load(path string) (*Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading language %s", path)
	}
	return Parse(data, path)
}

// Parse parses language file content from bytes. Fields missing from the
// file keep their default value; operators and precedence, when present,
// replace the default tables instead of merging with them.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Language, error) {
	lang := Default()
	lang.Operators = nil
	lang.WhitespaceEscapes = nil
	if err := yaml.Unmarshal(data, lang); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	def := Default()
	if lang.Operators == nil {
		lang.Operators = def.Operators
	}
	if lang.WhitespaceEscapes == nil {
		lang.WhitespaceEscapes = def.WhitespaceEscapes
	}
	if err := lang.Validate(path); err != nil {
		return nil, err
	}
	return lang, nil
}

// Find searches for a language file starting from dir and walking up
// to parent directories.
// Returns the path to the file and nil error if found,
// or empty string and nil error if not found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range LanguageFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate checks the table for inconsistencies that would make the
// scanner or the parser ambiguous.
func (l *Language) Validate(path string) error {
	markers := []struct {
		name, value string
		single      bool
	}{
		{"string_open", l.StringOpen, true},
		{"string_close", l.StringClose, true},
		{"list_open", l.ListOpen, true},
		{"list_close", l.ListClose, true},
		{"expr_open", l.ExprOpen, true},
		{"expr_close", l.ExprClose, true},
		{"interp_open", l.InterpOpen, false},
		{"interp_close", l.InterpClose, true},
		{"escape", l.Escape, true},
		{"comment", l.Comment, false},
		{"comment_end", l.CommentEnd, true},
		{"statement_separator", l.StatementSeparator, true},
		{"list_separator", l.ListSeparator, true},
		{"negative", l.Negative, true},
		{"imaginary", l.Imaginary, true},
	}
	for _, m := range markers {
		if m.value == "" {
			return fmt.Errorf("%s: %s must not be empty", path, m.name)
		}
		if m.single && utf8.RuneCountInString(m.value) != 1 {
			return fmt.Errorf("%s: %s must be a single character, got %q", path, m.name, m.value)
		}
	}

	if l.Exponent == "" || l.NumberStart == "" || l.IdentifierStart == "" {
		return fmt.Errorf("%s: exponent, number_start and identifier_start are required", path)
	}
	if l.Tiny <= 0 {
		return fmt.Errorf("%s: tiny must be positive, got %g", path, l.Tiny)
	}
	if l.MaxDepth <= 0 {
		return fmt.Errorf("%s: max_depth must be positive, got %d", path, l.MaxDepth)
	}

	for op, name := range l.Operators {
		if !KnownOps[name] {
			return fmt.Errorf("%s: operators[%q]: unknown operation %q", path, op, name)
		}
		if !l.IsValidOperatorString(op) {
			return fmt.Errorf("%s: operators[%q]: not a valid operator string", path, op)
		}
		if l.PrecedenceOf(op) < 0 {
			return fmt.Errorf("%s: operators[%q]: missing from precedence", path, op)
		}
	}

	seen := make(map[string]int)
	for i, group := range l.Precedence {
		if len(group) == 0 {
			return fmt.Errorf("%s: precedence[%d]: empty group", path, i)
		}
		for _, op := range group {
			if !l.IsOperator(op) {
				return fmt.Errorf("%s: precedence[%d]: %q is not a declared operator", path, i, op)
			}
			if prev, dup := seen[op]; dup {
				return fmt.Errorf("%s: precedence[%d]: %q already listed in group %d", path, i, op, prev)
			}
			seen[op] = i
		}
	}

	neg, _ := utf8.DecodeRuneInString(l.Negative)
	if !l.IsOperatorChar(neg) && !l.IsNumberStart(neg) {
		return fmt.Errorf("%s: negative %q must be an operator character or a number start", path, l.Negative)
	}
	return nil
}
