package compiler

import (
	"fmt"

	"github.com/roach88/lcdcalc/internal/ir"
)

// ToPostfix reorders an infix token stream into postfix order.
//
// Functions wait on the stack until the right paren that closes their
// argument group is seen. An operator pops any function left on top first,
// then pops operators that bind at least as tightly. The implicit unary minus
// pops nothing and binds like "*", so "3*-2" is -6 and "-3^2" is -9. Commas
// flush operators
// back to the nearest left paren; no current function takes more than one
// argument.
func ToPostfix(tokens []ir.Token) ([]ir.Token, error) {
	output := make([]ir.Token, 0, len(tokens))
	stack := make([]ir.Token, 0, len(tokens)/2+1)

	top := func() (ir.Token, bool) {
		if len(stack) == 0 {
			return ir.Token{}, false
		}
		return stack[len(stack)-1], true
	}
	pop := func() ir.Token {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return t
	}
	popUntilLeftParen := func() {
		for {
			t, ok := top()
			if !ok || t.Kind == ir.TokenLeftParen {
				return
			}
			output = append(output, pop())
		}
	}

	for i, tok := range tokens {
		switch tok.Kind {
		case ir.TokenNumber:
			output = append(output, tok)

		case ir.TokenFunction:
			stack = append(stack, tok)

		case ir.TokenOperator:
			op, ok := ir.OperatorFor(tok)
			if !ok {
				return nil, &SyntaxError{
					Code:    ErrCodeUnknownOperator,
					Message: fmt.Sprintf("unknown operator %q", tok.Text),
					Pos:     i,
				}
			}
			for {
				t, ok := top()
				if !ok {
					break
				}
				if t.Kind == ir.TokenFunction {
					output = append(output, pop())
					continue
				}
				if t.Kind != ir.TokenOperator {
					break
				}
				prev, known := ir.OperatorFor(t)
				if !known || !op.YieldsTo(prev) {
					break
				}
				output = append(output, pop())
			}
			stack = append(stack, tok)

		case ir.TokenComma:
			popUntilLeftParen()

		case ir.TokenLeftParen:
			stack = append(stack, tok)

		case ir.TokenRightParen:
			popUntilLeftParen()
			if len(stack) == 0 {
				return nil, &SyntaxError{
					Code:    ErrCodeMismatchedParens,
					Message: "mismatched parentheses: unexpected ')'",
					Pos:     i,
				}
			}
			pop()
			if t, ok := top(); ok && t.Kind == ir.TokenFunction {
				output = append(output, pop())
			}

		default:
			return nil, &SyntaxError{
				Code:    ErrCodeUnknownToken,
				Message: fmt.Sprintf("unhandled token kind %s", tok.Kind),
				Pos:     i,
			}
		}
	}

	for len(stack) > 0 {
		t := pop()
		if t.IsParen() {
			return nil, &SyntaxError{
				Code:    ErrCodeMismatchedParens,
				Message: "mismatched parentheses: unclosed '('",
				Pos:     -1,
			}
		}
		output = append(output, t)
	}
	return output, nil
}
