package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/token"
)

// Splitter splits text on delimiter characters that occur outside of any
// group. A character present in both Opens and Closes is a quote: it
// toggles, and nothing but the escape and the interpolation opener is
// recognised until the matching quote.
type Splitter struct {
	Opens       string
	Closes      string
	Delims      string
	Escape      string
	InterpOpen  string
	InterpClose string
	Comment     string
	CommentEnd  string
	// Keep emits every delimiter as its own piece.
	Keep bool
}

type splitFrame struct {
	quote  rune // 0 for a bracket or an interpolation frame
	interp bool
}

// Split returns the pieces of text in order, with their byte offsets.
// Unbalanced closers are ignored rather than reported: the scanner has
// already rejected them by the time the parser splits anything.
func (s Splitter) Split(text string) []token.Fragment {
	var (
		out     []token.Fragment
		stack   []splitFrame
		start   int
		escaped bool
	)

	at := func(i int, marker string) bool {
		return marker != "" && strings.HasPrefix(text[i:], marker)
	}

	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		var top *splitFrame
		if len(stack) > 0 {
			top = &stack[len(stack)-1]
		}

		if top != nil && top.quote != 0 {
			switch {
			case escaped:
				escaped = false
			case at(i, s.Escape):
				escaped = true
			case at(i, s.InterpOpen):
				stack = append(stack, splitFrame{interp: true})
				i += len(s.InterpOpen)
				continue
			case r == top.quote:
				stack = stack[:len(stack)-1]
			}
			i += w
			continue
		}

		if top != nil && top.interp && at(i, s.InterpClose) {
			stack = stack[:len(stack)-1]
			i += len(s.InterpClose)
			continue
		}

		if len(stack) == 0 && at(i, s.Comment) {
			end := strings.Index(text[i:], s.CommentEnd)
			if end < 0 || s.CommentEnd == "" {
				break
			}
			i += end
			continue
		}

		isOpen := strings.ContainsRune(s.Opens, r)
		isClose := strings.ContainsRune(s.Closes, r)
		switch {
		case isOpen && isClose:
			stack = append(stack, splitFrame{quote: r})
		case isOpen:
			stack = append(stack, splitFrame{})
		case isClose:
			if top != nil && !top.interp {
				stack = stack[:len(stack)-1]
			}
		case len(stack) == 0 && strings.ContainsRune(s.Delims, r):
			out = append(out, token.Fragment{Text: text[start:i], Offset: start})
			if s.Keep {
				out = append(out, token.Fragment{Text: text[i : i+w], Offset: i})
			}
			start = i + w
		}
		i += w
	}

	return append(out, token.Fragment{Text: text[start:], Offset: start})
}

// ListSplitter splits the interior of a list literal into its elements.
func ListSplitter(lang *config.Language) Splitter {
	return Splitter{
		Opens:       lang.StringOpen + lang.ListOpen + lang.ExprOpen,
		Closes:      lang.StringClose + lang.ListClose + lang.ExprClose,
		Delims:      lang.ListSeparator,
		Escape:      lang.Escape,
		InterpOpen:  lang.InterpOpen,
		InterpClose: lang.InterpClose,
	}
}

// SplitStatements splits source into the raw text of each top-level
// statement, so statements can be built one at a time and a failure in one
// does not hide the others. Blank pieces are dropped.
func SplitStatements(text string, lang *config.Language) []token.Fragment {
	s := Splitter{
		Opens:       lang.StringOpen + lang.ListOpen + lang.ExprOpen,
		Closes:      lang.StringClose + lang.ListClose + lang.ExprClose,
		Delims:      lang.StatementSeparator,
		Escape:      lang.Escape,
		InterpOpen:  lang.InterpOpen,
		InterpClose: lang.InterpClose,
		Comment:     lang.Comment,
		CommentEnd:  lang.CommentEnd,
	}
	var out []token.Fragment
	for _, piece := range s.Split(text) {
		if strings.TrimSpace(piece.Text) != "" {
			out = append(out, piece)
		}
	}
	return out
}
