package evaluator

import (
	"fmt"
	"math"

	"github.com/roach88/lcdcalc/internal/compiler"
	"github.com/roach88/lcdcalc/internal/ir"
)

// Evaluate runs a postfix program on a value stack.
//
// Binary operators pop b then a and push a op b. Factorial and functions pop
// one operand. The program must leave exactly one value on the stack.
func Evaluate(postfix []ir.Token, ctx ir.EvalContext) (float64, error) {
	stack := make([]float64, 0, len(postfix))

	pop := func() float64 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	for _, tok := range postfix {
		switch tok.Kind {
		case ir.TokenNumber:
			stack = append(stack, tok.Value)

		case ir.TokenOperator:
			if tok.Text == "!" {
				if len(stack) < 1 {
					return 0, underflow("!")
				}
				v, err := Factorial(pop())
				if err != nil {
					return 0, err
				}
				stack = append(stack, v)
				continue
			}
			if len(stack) < 2 {
				return 0, underflow(tok.Text)
			}
			b := pop()
			a := pop()
			v, err := applyBinary(tok.Text, a, b)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)

		case ir.TokenFunction:
			if len(stack) < 1 {
				return 0, underflow(tok.Text)
			}
			v, err := applyFunction(tok.Text, pop(), ctx.AngleMode)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)

		default:
			return 0, &EvalError{Code: ErrCodeUnknownToken, Message: fmt.Sprintf("unexpected %s token in postfix", tok.Kind)}
		}
	}

	if len(stack) != 1 {
		return 0, &EvalError{
			Code:    ErrCodeInvalidExpression,
			Message: fmt.Sprintf("expression left %d values on the stack", len(stack)),
		}
	}
	return stack[0], nil
}

// EvaluateExpression compiles and evaluates text against ctx. Lex and syntax
// errors from package compiler are returned wrapped; a NaN or infinite result
// is an *EvalError with ErrCodeNonFinite.
func EvaluateExpression(text string, ctx ir.EvalContext) (float64, error) {
	postfix, err := compiler.Compile(text, ctx)
	if err != nil {
		return 0, fmt.Errorf("compile %q: %w", text, err)
	}
	v, err := Evaluate(postfix, ctx)
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", text, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &EvalError{Code: ErrCodeNonFinite, Message: fmt.Sprintf("result of %q is not finite", text)}
	}
	return v, nil
}
