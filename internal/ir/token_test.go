package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupOperator_PrecedenceTable(t *testing.T) {
	tests := []struct {
		symbol     string
		precedence int
		assoc      Associativity
		postfix    bool
	}{
		{"+", 2, AssocLeft, false},
		{"-", 2, AssocLeft, false},
		{"*", 3, AssocLeft, false},
		{"/", 3, AssocLeft, false},
		{"^", 4, AssocRight, false},
		{"!", 5, AssocLeft, true},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			info, ok := LookupOperator(tt.symbol)
			require.True(t, ok)
			assert.Equal(t, tt.precedence, info.Precedence)
			assert.Equal(t, tt.assoc, info.Assoc)
			assert.Equal(t, tt.postfix, info.Postfix)
		})
	}

	_, ok := LookupOperator("%")
	assert.False(t, ok)
}

func TestOperatorInfo_YieldsTo(t *testing.T) {
	plus, _ := LookupOperator("+")
	times, _ := LookupOperator("*")
	pow, _ := LookupOperator("^")

	assert.True(t, plus.YieldsTo(plus), "left-assoc equal precedence pops")
	assert.True(t, plus.YieldsTo(times), "lower precedence pops higher")
	assert.False(t, times.YieldsTo(plus))
	assert.False(t, pow.YieldsTo(pow), "right-assoc equal precedence stays")
}

func TestOperatorFor_UnaryMinus(t *testing.T) {
	neg, ok := OperatorFor(UnaryMinusToken())
	require.True(t, ok)
	assert.True(t, neg.Prefix)
	assert.Equal(t, 3, neg.Precedence)

	pow, _ := LookupOperator("^")
	plus, _ := LookupOperator("+")
	times, _ := LookupOperator("*")
	assert.False(t, neg.YieldsTo(pow), "prefix minus never pops")
	assert.True(t, plus.YieldsTo(neg))
	assert.True(t, times.YieldsTo(neg))
	assert.False(t, pow.YieldsTo(neg))

	sub, ok := OperatorFor(OperatorToken("-"))
	require.True(t, ok)
	assert.False(t, sub.Prefix)
	assert.Equal(t, 2, sub.Precedence)
}

func TestIsFunction(t *testing.T) {
	for _, name := range []string{"sin", "cos", "tan", "asin", "acos", "atan", "sqrt", "log", "ln", "inv"} {
		assert.True(t, IsFunction(name), name)
	}
	assert.False(t, IsFunction("SIN"), "lookup expects lower-cased names")
	assert.False(t, IsFunction("exp"))
	assert.Len(t, FunctionNames(), 10)
}

func TestFormatTokens(t *testing.T) {
	tokens := []Token{NumberToken(2), NumberToken(3.5), OperatorToken("+"), FunctionToken("sin")}
	assert.Equal(t, "2 3.5 + sin", FormatTokens(tokens))
}

func TestAngleMode(t *testing.T) {
	assert.Equal(t, "DEG", AngleDegrees.String())
	assert.Equal(t, AngleRadians, AngleDegrees.Toggle())
	assert.Equal(t, AngleDegrees, AngleRadians.Toggle())

	m, err := ParseAngleMode("rad")
	require.NoError(t, err)
	assert.Equal(t, AngleRadians, m)

	_, err = ParseAngleMode("grad")
	assert.Error(t, err)

	var decoded AngleMode
	require.NoError(t, decoded.UnmarshalText([]byte("RAD")))
	assert.Equal(t, AngleRadians, decoded)
}

func TestNewHistoryEntry_CopiesTokens(t *testing.T) {
	tokens := []string{"1", "+", "1"}
	entry := NewHistoryEntry(tokens, "2")
	tokens[0] = "9"

	assert.Equal(t, []string{"1", "+", "1"}, entry.Tokens)

	clone := entry.Clone()
	clone.Tokens[0] = "5"
	assert.Equal(t, "1", entry.Tokens[0])
}
