package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultHistoryCapacity, NewHistory(0).Cap())
	assert.Equal(t, DefaultHistoryCapacity, NewHistory(-3).Cap())
	assert.Equal(t, 7, NewHistory(7).Cap())
}

func TestHistory_PushEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 4; i++ {
		h.Push([]string{fmt.Sprint(i)}, fmt.Sprint(i))
	}

	require.Equal(t, 3, h.Len())
	entries := h.Entries()
	assert.Equal(t, "2", entries[0].Result)
	assert.Equal(t, "4", entries[2].Result)
}

func TestHistory_PushCopiesTokens(t *testing.T) {
	h := NewHistory(3)
	tokens := []string{"1", "+", "2"}
	h.Push(tokens, "3")
	tokens[0] = "9"

	assert.Equal(t, []string{"1", "+", "2"}, h.Entries()[0].Tokens)
}

func TestHistory_OlderAndNewer(t *testing.T) {
	h := NewHistory(5)
	h.Push([]string{"1"}, "1")
	h.Push([]string{"2"}, "2")
	assert.Equal(t, -1, h.Index())

	e, ok := h.Older()
	require.True(t, ok)
	assert.Equal(t, "2", e.Result, "first step back loads the newest entry")
	assert.Equal(t, 0, h.Index())

	e, ok = h.Older()
	require.True(t, ok)
	assert.Equal(t, "1", e.Result)
	assert.Equal(t, 1, h.Index())

	_, ok = h.Older()
	assert.False(t, ok, "already at oldest")
	assert.Equal(t, 1, h.Index())

	e, ok = h.Newer()
	require.True(t, ok)
	assert.Equal(t, "2", e.Result)

	e, ok = h.Newer()
	require.True(t, ok, "stepping past newest returns to live")
	assert.Empty(t, e.Tokens)
	assert.Equal(t, "", e.Result)
	assert.Equal(t, -1, h.Index())

	_, ok = h.Newer()
	assert.False(t, ok, "already live")
}

func TestHistory_PushResetsIndex(t *testing.T) {
	h := NewHistory(5)
	h.Push([]string{"1"}, "1")
	h.Older()
	require.Equal(t, 0, h.Index())

	h.Push([]string{"2"}, "2")
	assert.Equal(t, -1, h.Index())
}

func TestHistory_EntriesAreCopies(t *testing.T) {
	h := NewHistory(2)
	h.Push([]string{"1"}, "1")

	entries := h.Entries()
	entries[0].Tokens[0] = "mutated"
	assert.Equal(t, "1", h.Entries()[0].Tokens[0])
}
