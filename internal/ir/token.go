package ir

import (
	"fmt"
	"strconv"
)

// TokenKind identifies which variant a Token carries.
type TokenKind int

const (
	// TokenNumber carries a numeric literal or a resolved constant.
	TokenNumber TokenKind = iota + 1
	// TokenOperator carries one of + - * / ^ !.
	TokenOperator
	// TokenFunction carries a lower-cased function name.
	TokenFunction
	// TokenLeftParen is "(".
	TokenLeftParen
	// TokenRightParen is ")".
	TokenRightParen
	// TokenComma is the argument separator.
	TokenComma
)

var tokenKindNames = map[TokenKind]string{
	TokenNumber:     "number",
	TokenOperator:   "operator",
	TokenFunction:   "function",
	TokenLeftParen:  "left_paren",
	TokenRightParen: "right_paren",
	TokenComma:      "comma",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token_kind(%d)", int(k))
}

// Token is a lexical unit produced by the tokenizer.
//
// Value is meaningful only for TokenNumber. Text holds the operator symbol
// or the function name; for parens and commas it holds the literal glyph.
// Prefix marks the minus of an implicit "0 -" pair.
type Token struct {
	Kind   TokenKind
	Value  float64
	Text   string
	Prefix bool
}

// NumberToken creates a TokenNumber.
func NumberToken(v float64) Token {
	return Token{Kind: TokenNumber, Value: v}
}

// OperatorToken creates a TokenOperator for the given symbol.
func OperatorToken(symbol string) Token {
	return Token{Kind: TokenOperator, Text: symbol}
}

// UnaryMinusToken creates the prefix minus emitted after an implicit zero.
// It evaluates as ordinary subtraction.
func UnaryMinusToken() Token {
	return Token{Kind: TokenOperator, Text: "-", Prefix: true}
}

// FunctionToken creates a TokenFunction for the given name.
func FunctionToken(name string) Token {
	return Token{Kind: TokenFunction, Text: name}
}

// LeftParenToken creates a TokenLeftParen.
func LeftParenToken() Token {
	return Token{Kind: TokenLeftParen, Text: "("}
}

// RightParenToken creates a TokenRightParen.
func RightParenToken() Token {
	return Token{Kind: TokenRightParen, Text: ")"}
}

// CommaToken creates a TokenComma.
func CommaToken() Token {
	return Token{Kind: TokenComma, Text: ","}
}

// IsParen reports whether the token is a left or right parenthesis.
func (t Token) IsParen() bool {
	return t.Kind == TokenLeftParen || t.Kind == TokenRightParen
}

func (t Token) String() string {
	if t.Kind == TokenNumber {
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	}
	return t.Text
}

// FormatTokens renders a token stream separated by spaces, e.g. "2 3 4 * +".
// Used in diagnostics and tests.
func FormatTokens(tokens []Token) string {
	b := make([]byte, 0, len(tokens)*3)
	for i, t := range tokens {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, t.String()...)
	}
	return string(b)
}
