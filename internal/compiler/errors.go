package compiler

import (
	"errors"
	"fmt"
)

// LexErrorCode categorizes tokenizer failures.
type LexErrorCode string

const (
	// ErrCodeUnexpectedCharacter indicates a character no rule accepts.
	ErrCodeUnexpectedCharacter LexErrorCode = "UNEXPECTED_CHARACTER"

	// ErrCodeUnknownIdentifier indicates a name that is neither a constant
	// nor a known function.
	ErrCodeUnknownIdentifier LexErrorCode = "UNKNOWN_IDENTIFIER"

	// ErrCodeMalformedNumber indicates a numeric literal ParseFloat rejects,
	// such as "1.2.3" or "2e".
	ErrCodeMalformedNumber LexErrorCode = "MALFORMED_NUMBER"
)

// LexError is returned by Tokenize. Text is the offending character,
// identifier or literal; Pos is its character offset in the input.
type LexError struct {
	Code LexErrorCode
	Text string
	Pos  int
}

func (e *LexError) Error() string {
	switch e.Code {
	case ErrCodeUnknownIdentifier:
		return fmt.Sprintf("%s: unknown function %s (pos=%d)", e.Code, e.Text, e.Pos)
	case ErrCodeMalformedNumber:
		return fmt.Sprintf("%s: malformed number %q (pos=%d)", e.Code, e.Text, e.Pos)
	default:
		return fmt.Sprintf("%s: unexpected character %s (pos=%d)", e.Code, e.Text, e.Pos)
	}
}

// SyntaxErrorCode categorizes parser failures.
type SyntaxErrorCode string

const (
	// ErrCodeMismatchedParens indicates an unbalanced "(" or ")".
	ErrCodeMismatchedParens SyntaxErrorCode = "MISMATCHED_PARENS"

	// ErrCodeUnknownOperator indicates an operator missing from the precedence table.
	ErrCodeUnknownOperator SyntaxErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeUnknownToken indicates a token kind the parser cannot place.
	ErrCodeUnknownToken SyntaxErrorCode = "UNKNOWN_TOKEN"
)

// SyntaxError is returned by ToPostfix. Pos is the index of the offending
// token in the input stream, or -1 when the error is found at end of input.
type SyntaxError struct {
	Code    SyntaxErrorCode
	Message string
	Pos     int
}

func (e *SyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s: %s (token=%d)", e.Code, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsLexError reports whether err is, or wraps, a *LexError.
func IsLexError(err error) bool {
	var le *LexError
	return errors.As(err, &le)
}

// IsSyntaxError reports whether err is, or wraps, a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// IsMismatchedParens reports whether err is a mismatched parenthesis error.
func IsMismatchedParens(err error) bool {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Code == ErrCodeMismatchedParens
	}
	return false
}
