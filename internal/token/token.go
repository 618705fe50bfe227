package token

// Fragment is a contiguous slice of source text produced by the scanner,
// not yet classified as a literal, identifier or operator.
type Fragment struct {
	Text   string
	Offset int // byte offset of Text in the scanned input
}

func (f Fragment) String() string { return f.Text }

// End returns the offset just past the fragment.
func (f Fragment) End() int { return f.Offset + len(f.Text) }

// Statement is one top-level, separator-delimited unit of source.
type Statement []Fragment

// Texts returns the raw fragment strings of the statement.
func (s Statement) Texts() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Text
	}
	return out
}
