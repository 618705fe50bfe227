// Package diagnostics defines the error values reported by the scanner,
// the parser, the arithmetic layer and the evaluator.
//
// Every failure is a *DiagnosticError whose Kind is one of the sentinel
// errors below, so callers can branch with errors.Is without parsing
// messages.
package diagnostics

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// Lexical errors
	ErrL001 ErrorCode = "L001" // unmatched delimiter
	ErrL002 ErrorCode = "L002" // incomplete group
	ErrL003 ErrorCode = "L003" // nesting too deep

	// Parse errors
	ErrP001 ErrorCode = "P001" // statement does not reduce to one value
	ErrP002 ErrorCode = "P002" // unknown operator
	ErrP003 ErrorCode = "P003" // malformed number

	// Value errors
	ErrV001 ErrorCode = "V001" // invalid argument
	ErrV002 ErrorCode = "V002" // unequal length
	ErrV003 ErrorCode = "V003" // domain error

	// Evaluation errors
	ErrE001 ErrorCode = "E001" // unbound identifier
	ErrE002 ErrorCode = "E002" // evaluation cancelled
	ErrE003 ErrorCode = "E003" // evaluation too deep
)

var (
	ErrUnmatchedDelimiter = errors.New("unmatched delimiter")
	ErrIncompleteGroup    = errors.New("incomplete group")
	ErrNestingTooDeep     = errors.New("nesting too deep")
	ErrMalformedStatement = errors.New("malformed statement")
	ErrUnknownOperator    = errors.New("unknown operator")
	ErrMalformedNumber    = errors.New("malformed number")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnequalLength      = errors.New("unequal length")
	ErrDomain             = errors.New("domain error")
	ErrUnboundIdentifier  = errors.New("unbound identifier")
	ErrCancelled          = errors.New("evaluation cancelled")
)

var kinds = map[ErrorCode]error{
	ErrL001: ErrUnmatchedDelimiter,
	ErrL002: ErrIncompleteGroup,
	ErrL003: ErrNestingTooDeep,
	ErrP001: ErrMalformedStatement,
	ErrP002: ErrUnknownOperator,
	ErrP003: ErrMalformedNumber,
	ErrV001: ErrInvalidArgument,
	ErrV002: ErrUnequalLength,
	ErrV003: ErrDomain,
	ErrE001: ErrUnboundIdentifier,
	ErrE002: ErrCancelled,
	ErrE003: ErrNestingTooDeep,
}

// codeOrder fixes the lookup order of codeOf.
var codeOrder = []ErrorCode{
	ErrL001, ErrL002, ErrL003,
	ErrP001, ErrP002, ErrP003,
	ErrV001, ErrV002, ErrV003,
	ErrE001, ErrE002,
}

func codeOf(err error) (ErrorCode, bool) {
	for _, code := range codeOrder {
		if errors.Is(err, kinds[code]) {
			return code, true
		}
	}
	return "", false
}

// NoOffset marks an error that is not tied to a source position.
const NoOffset = -1

// DiagnosticError is a coded error, optionally located in a source file.
type DiagnosticError struct {
	Code    ErrorCode
	Kind    error
	Message string
	File    string
	Offset  int // byte offset into the scanned text, NoOffset if unknown
}

// NewError builds a diagnostic for code located at offset.
func NewError(code ErrorCode, offset int, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Kind:    kinds[code],
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	}
}

func (e *DiagnosticError) Error() string {
	prefix := string(e.Code)
	if e.File != "" {
		prefix = e.File + ": " + prefix
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", prefix, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *DiagnosticError) Unwrap() error { return e.Kind }

// Shift moves the error offset by delta. Used when a nested text is scanned
// on its own and its errors must point into the enclosing source.
func (e *DiagnosticError) Shift(delta int) *DiagnosticError {
	if e.Offset >= 0 {
		e.Offset += delta
	}
	return e
}

// Locate attaches a source offset to err. Diagnostics keep their own
// position, and errors of no known kind are returned unchanged. The
// original error stays reachable through errors.As.
func Locate(err error, offset int) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	code, ok := codeOf(err)
	if !ok {
		return err
	}
	return &DiagnosticError{Code: code, Kind: err, Message: err.Error(), Offset: offset}
}

// As extracts a *DiagnosticError from err, if there is one.
func As(err error) (*DiagnosticError, bool) {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
