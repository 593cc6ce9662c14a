package compiler

import "github.com/roach88/lcdcalc/internal/ir"

// Compile tokenizes text against ctx and returns its postfix program.
func Compile(text string, ctx ir.EvalContext) ([]ir.Token, error) {
	tokens, err := Tokenize(text, ctx)
	if err != nil {
		return nil, err
	}
	return ToPostfix(tokens)
}
