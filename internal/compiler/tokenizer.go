package compiler

import (
	"errors"
	"strconv"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/lcdcalc/internal/ir"
)

// prevKind is the tokenizer's look-behind state. prevNone marks the start of
// input.
type prevKind int

const (
	prevNone prevKind = iota
	prevNumber
	prevOperator
	prevFunction
	prevLeftParen
	prevRightParen
	prevComma
	prevPostfix
)

type tokenizer struct {
	src    []rune
	pos    int
	ctx    ir.EvalContext
	tokens []ir.Token
	prev   prevKind
}

// Tokenize scans text into a token stream, resolving constants against ctx.
// The input is NFC normalized first so composed and decomposed forms of the
// same glyph tokenize identically.
func Tokenize(text string, ctx ir.EvalContext) ([]ir.Token, error) {
	t := &tokenizer{
		src: []rune(norm.NFC.String(text)),
		ctx: ctx,
	}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.tokens, nil
}

func (t *tokenizer) run() error {
	for t.pos < len(t.src) {
		raw := t.src[t.pos]
		c := normalizeSymbol(raw)

		switch {
		case unicode.IsSpace(c):
			t.pos++

		case isDigit(c) || c == '.':
			start := t.pos
			v, err := t.readNumber()
			if err != nil {
				return &LexError{Code: ErrCodeMalformedNumber, Text: string(t.src[start:t.pos]), Pos: start}
			}
			t.emit(ir.NumberToken(v), prevNumber)

		case isLetter(c):
			start := t.pos
			ident := t.readIdentifier()
			tok, ok := resolveIdentifier(ident, t.ctx)
			if !ok {
				return &LexError{Code: ErrCodeUnknownIdentifier, Text: ident, Pos: start}
			}
			if tok.Kind == ir.TokenFunction {
				t.emit(tok, prevFunction)
			} else {
				t.emit(tok, prevNumber)
			}

		case c == '√':
			t.emit(ir.FunctionToken("sqrt"), prevFunction)
			t.pos++

		case c == '-' && t.unaryAllowed():
			t.tokens = append(t.tokens, ir.NumberToken(0))
			t.emit(ir.UnaryMinusToken(), prevOperator)
			t.pos++

		case isOperator(c):
			t.emit(ir.OperatorToken(string(c)), prevOperator)
			t.pos++

		case c == '(':
			t.emit(ir.LeftParenToken(), prevLeftParen)
			t.pos++

		case c == ')':
			t.emit(ir.RightParenToken(), prevRightParen)
			t.pos++

		case c == ',':
			t.emit(ir.CommaToken(), prevComma)
			t.pos++

		case c == '!':
			t.emit(ir.OperatorToken("!"), prevPostfix)
			t.pos++

		default:
			return &LexError{Code: ErrCodeUnexpectedCharacter, Text: string(raw), Pos: t.pos}
		}
	}
	return nil
}

func (t *tokenizer) emit(tok ir.Token, kind prevKind) {
	t.tokens = append(t.tokens, tok)
	t.prev = kind
}

// unaryAllowed reports whether a minus at the current position negates.
// Factorial closes its operand, so "5!-1" subtracts.
func (t *tokenizer) unaryAllowed() bool {
	switch t.prev {
	case prevNone, prevOperator, prevLeftParen, prevComma:
		return true
	default:
		return false
	}
}

// readNumber consumes [0-9.]+ followed by an optional exponent
// (E|e, optional sign, digits) and parses the slice.
func (t *tokenizer) readNumber() (float64, error) {
	start := t.pos
	for t.pos < len(t.src) && (isDigit(t.src[t.pos]) || t.src[t.pos] == '.') {
		t.pos++
	}
	if t.pos < len(t.src) && (t.src[t.pos] == 'E' || t.src[t.pos] == 'e') {
		t.pos++
		if t.pos < len(t.src) {
			if sign := normalizeSymbol(t.src[t.pos]); sign == '+' || sign == '-' {
				t.pos++
			}
		}
		for t.pos < len(t.src) && isDigit(t.src[t.pos]) {
			t.pos++
		}
	}

	literal := make([]rune, 0, t.pos-start)
	for _, r := range t.src[start:t.pos] {
		literal = append(literal, normalizeSymbol(r))
	}

	v, err := strconv.ParseFloat(string(literal), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

func (t *tokenizer) readIdentifier() string {
	start := t.pos
	for t.pos < len(t.src) && isLetter(t.src[t.pos]) {
		t.pos++
	}
	return string(t.src[start:t.pos])
}
