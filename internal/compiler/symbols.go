package compiler

import (
	"math"
	"strings"

	"github.com/roach88/lcdcalc/internal/ir"
)

// constants maps exact constant names to their resolved value.
// Lookup is case-sensitive; see resolveIdentifier for the lower-case fallback.
var constants = map[string]func(ctx ir.EvalContext) float64{
	"Ans": func(ctx ir.EvalContext) float64 { return ctx.Ans },
	"ans": func(ctx ir.EvalContext) float64 { return ctx.Ans },
	"M":   func(ctx ir.EvalContext) float64 { return ctx.Memory },
	"m":   func(ctx ir.EvalContext) float64 { return ctx.Memory },
	"π":   func(ir.EvalContext) float64 { return math.Pi },
	"pi":  func(ir.EvalContext) float64 { return math.Pi },
	"e":   func(ir.EvalContext) float64 { return math.E },
}

// normalizeSymbol canonicalizes the display glyphs for multiply, divide and
// minus. The edit buffer keeps the original glyphs.
func normalizeSymbol(r rune) rune {
	switch r {
	case '×':
		return '*'
	case '÷':
		return '/'
	case '−':
		return '-'
	default:
		return r
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == 'π'
}

func isOperator(r rune) bool {
	return strings.ContainsRune("+-*/^", r)
}

// resolveIdentifier turns a scanned identifier into a constant or function
// token. An identifier that is not exactly a constant name is lower-cased and
// tried again, so "PI" resolves to pi and "SIN" to sin.
func resolveIdentifier(raw string, ctx ir.EvalContext) (ir.Token, bool) {
	ident := strings.TrimSpace(raw)
	if constant, ok := constants[ident]; ok {
		return ir.NumberToken(constant(ctx)), true
	}
	lower := strings.ToLower(ident)
	if constant, ok := constants[lower]; ok {
		return ir.NumberToken(constant(ctx)), true
	}
	if ir.IsFunction(lower) {
		return ir.FunctionToken(lower), true
	}
	return ir.Token{}, false
}
