package evaluator

import (
	"errors"
	"fmt"

	"github.com/roach88/lcdcalc/internal/compiler"
)

// EvalErrorCode categorizes evaluation failures.
type EvalErrorCode string

const (
	// ErrCodeStackUnderflow indicates an operator or function found too few operands.
	ErrCodeStackUnderflow EvalErrorCode = "STACK_UNDERFLOW"

	// ErrCodeInvalidExpression indicates the program did not reduce to exactly one value.
	ErrCodeInvalidExpression EvalErrorCode = "INVALID_EXPRESSION"

	// ErrCodeNegativeFactorial indicates n! with n < 0.
	ErrCodeNegativeFactorial EvalErrorCode = "NEGATIVE_FACTORIAL"

	// ErrCodeNonIntegerFactorial indicates n! with a fractional or non-finite n.
	ErrCodeNonIntegerFactorial EvalErrorCode = "NON_INTEGER_FACTORIAL"

	// ErrCodeUnknownOperator indicates an operator symbol with no implementation.
	ErrCodeUnknownOperator EvalErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeUnknownFunction indicates a function name with no implementation.
	ErrCodeUnknownFunction EvalErrorCode = "UNKNOWN_FUNCTION"

	// ErrCodeUnknownToken indicates a token kind that cannot appear in postfix.
	ErrCodeUnknownToken EvalErrorCode = "UNKNOWN_TOKEN"

	// ErrCodeNonFinite indicates the result is NaN or ±Inf.
	ErrCodeNonFinite EvalErrorCode = "NON_FINITE"
)

// EvalError is returned by Evaluate and EvaluateExpression.
type EvalError struct {
	Code    EvalErrorCode
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsEvalError reports whether err is, or wraps, an *EvalError.
func IsEvalError(err error) bool {
	var ee *EvalError
	return errors.As(err, &ee)
}

// IsNonFinite reports whether err is the non-finite result error.
func IsNonFinite(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeNonFinite
	}
	return false
}

// Code returns the category code of a lex, syntax or evaluation error, or ""
// when err is nil or of another type.
func Code(err error) string {
	var (
		le *compiler.LexError
		se *compiler.SyntaxError
		ee *EvalError
	)
	switch {
	case errors.As(err, &ee):
		return string(ee.Code)
	case errors.As(err, &se):
		return string(se.Code)
	case errors.As(err, &le):
		return string(le.Code)
	default:
		return ""
	}
}

func underflow(what string) *EvalError {
	return &EvalError{Code: ErrCodeStackUnderflow, Message: fmt.Sprintf("not enough operands for %s", what)}
}
