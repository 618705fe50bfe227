package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/phasor/internal/config"
	"github.com/funvibe/phasor/internal/diagnostics"
	"github.com/funvibe/phasor/internal/token"
)

type state int

const (
	stateStart state = iota
	stateOperator
	stateNumber
	stateIdentifier
	stateExpression
	stateList
	stateString
	stateComment
)

// group is an entry of the nesting stack kept while inside a
// list, an expression or a string.
type group int

const (
	groupList group = iota
	groupExpr
	groupString
	groupInterp
)

// Lexer splits source text into statements of raw fragments.
// Grouping constructs are emitted whole, delimiters included; the parser
// recurses into them later.
type Lexer struct {
	lang         *config.Language
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination

	state     state
	start     int // offset where the pending fragment starts
	prev      rune
	stack     []group
	escaped   bool
	statement token.Statement
	out       []token.Statement
}

func New(input string, lang *config.Language) *Lexer {
	l := &Lexer{lang: lang, input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += w
}

// skip advances past a marker of n bytes starting at the current char.
func (l *Lexer) skip(n int) {
	target := l.position + n
	for l.position < target && l.position < len(l.input) {
		l.readChar()
	}
}

func (l *Lexer) atEOF() bool { return l.position >= len(l.input) }

func (l *Lexer) at(marker string) bool {
	return marker != "" && strings.HasPrefix(l.input[l.position:], marker)
}

// Scan splits text into statements, each an ordered list of raw fragments.
func Scan(text string, lang *config.Language) ([][]string, error) {
	stmts, err := New(text, lang).Statements()
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(stmts))
	for i, s := range stmts {
		out[i] = s.Texts()
	}
	return out, nil
}

// Statements runs the state machine over the whole input.
func (l *Lexer) Statements() ([]token.Statement, error) {
	for !l.atEOF() {
		var err error
		switch l.state {
		case stateStart:
			err = l.scanStart()
		case stateOperator:
			l.scanRun(func(r rune) bool { return l.lang.IsOperatorChar(r) && !l.at(l.lang.Comment) })
		case stateNumber:
			l.scanNumber()
		case stateIdentifier:
			l.scanRun(l.lang.IsIdentBody)
		case stateExpression, stateList, stateString:
			err = l.scanGroup()
		case stateComment:
			l.scanComment()
		}
		if err != nil {
			return nil, err
		}
	}

	switch l.state {
	case stateList, stateExpression, stateString:
		return nil, diagnostics.NewError(diagnostics.ErrL002, l.start,
			"incomplete group %q", l.input[l.start:])
	case stateOperator, stateNumber, stateIdentifier:
		l.emit(len(l.input))
	}
	l.flush()
	return l.out, nil
}

func (l *Lexer) scanStart() error {
	lang := l.lang
	switch {
	case l.at(lang.StringOpen):
		l.open(stateString, groupString, len(lang.StringOpen))
	case l.at(lang.ListOpen):
		l.open(stateList, groupList, len(lang.ListOpen))
	case l.at(lang.ExprOpen):
		l.open(stateExpression, groupExpr, len(lang.ExprOpen))
	case l.at(lang.InterpOpen):
		return diagnostics.NewError(diagnostics.ErrL001, l.position, "unmatched %q outside a string", lang.InterpOpen)
	case l.at(lang.Comment):
		l.state = stateComment
		l.skip(len(lang.Comment))
	case lang.IsOperatorChar(l.ch):
		l.begin(stateOperator)
	case lang.IsNumberStart(l.ch):
		l.begin(stateNumber)
	case lang.IsIdentStart(l.ch):
		l.begin(stateIdentifier)
	case lang.IsCloseGroup(l.ch):
		return diagnostics.NewError(diagnostics.ErrL001, l.position, "unmatched %c", l.ch)
	case lang.IsStatementSeparator(l.ch):
		l.flush()
		l.readChar()
	case unicode.IsSpace(l.ch):
		l.readChar()
	default:
		return diagnostics.NewError(diagnostics.ErrL001, l.position, "unexpected %q", l.ch)
	}
	return nil
}

func (l *Lexer) begin(s state) {
	l.state = s
	l.start = l.position
	l.prev = l.ch
	l.readChar()
}

func (l *Lexer) open(s state, g group, width int) {
	l.state = s
	l.start = l.position
	l.stack = append(l.stack[:0], g)
	l.escaped = false
	l.skip(width)
}

// scanRun accepts characters while accept holds. The first rejected
// character is left in place to be re-examined from the start state.
func (l *Lexer) scanRun(accept func(rune) bool) {
	if accept(l.ch) {
		l.readChar()
		return
	}
	l.emit(l.position)
	l.state = stateStart
}

// scanNumber is scanRun for numbers, except that an operator character
// ends the literal unless it directly follows the exponent marker.
func (l *Lexer) scanNumber() {
	lang := l.lang
	if lang.IsNumberBody(l.ch) && !(lang.IsOperatorChar(l.ch) && !lang.IsExponent(l.prev)) {
		l.prev = l.ch
		l.readChar()
		return
	}
	l.emit(l.position)
	l.state = stateStart
}

func (l *Lexer) scanGroup() error {
	lang := l.lang
	top := l.stack[len(l.stack)-1]

	switch top {
	case groupString:
		switch {
		case l.escaped:
			l.escaped = false
		case l.at(lang.Escape):
			l.escaped = true
		case l.at(lang.InterpOpen):
			return l.push(groupInterp, len(lang.InterpOpen))
		case lang.StringOpen != lang.StringClose && l.at(lang.StringOpen):
			return l.push(groupString, len(lang.StringOpen))
		case l.at(lang.StringClose):
			l.pop(len(lang.StringClose))
			return nil
		}
		l.readChar()

	case groupInterp:
		switch {
		case l.at(lang.StringOpen):
			return l.push(groupString, len(lang.StringOpen))
		case l.at(lang.InterpOpen):
			return l.push(groupInterp, len(lang.InterpOpen))
		case l.at(lang.InterpClose):
			l.pop(len(lang.InterpClose))
			return nil
		}
		l.readChar()

	case groupList:
		switch {
		case l.at(lang.StringOpen):
			return l.push(groupString, len(lang.StringOpen))
		case l.at(lang.ListOpen):
			return l.push(groupList, len(lang.ListOpen))
		case l.at(lang.ListClose):
			l.pop(len(lang.ListClose))
			return nil
		}
		l.readChar()

	case groupExpr:
		switch {
		case l.at(lang.StringOpen):
			return l.push(groupString, len(lang.StringOpen))
		case l.at(lang.ExprOpen):
			return l.push(groupExpr, len(lang.ExprOpen))
		case l.at(lang.ExprClose):
			l.pop(len(lang.ExprClose))
			return nil
		}
		l.readChar()
	}
	return nil
}

func (l *Lexer) push(g group, width int) error {
	if len(l.stack) >= l.lang.MaxDepth {
		return diagnostics.NewError(diagnostics.ErrL003, l.position,
			"nesting deeper than %d", l.lang.MaxDepth)
	}
	l.stack = append(l.stack, g)
	l.skip(width)
	return nil
}

// pop closes the innermost group; closing the outermost one emits the
// whole group as a fragment.
func (l *Lexer) pop(width int) {
	l.stack = l.stack[:len(l.stack)-1]
	l.skip(width)
	if len(l.stack) == 0 {
		l.emit(l.position)
		l.state = stateStart
	}
}

// scanComment consumes up to the terminator. The terminator itself is left
// for the start state so a terminator that is also the statement separator
// still ends the statement.
func (l *Lexer) scanComment() {
	if l.at(l.lang.CommentEnd) {
		l.state = stateStart
		return
	}
	l.readChar()
}

func (l *Lexer) emit(end int) {
	l.statement = append(l.statement, token.Fragment{Text: l.input[l.start:end], Offset: l.start})
}

func (l *Lexer) flush() {
	if len(l.statement) > 0 {
		l.out = append(l.out, l.statement)
	}
	l.statement = nil
}
