package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionIDDeterminism(t *testing.T) {
	id1, err := ActionID("session-1", 3, Insert("7"))
	require.NoError(t, err)

	id2, err := ActionID("session-1", 3, Insert("7"))
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "ActionID must be deterministic")
	assert.Len(t, id1, 64, "SHA-256 hex is 64 characters")
}

func TestActionIDChangesWithInput(t *testing.T) {
	id1 := MustActionID("session-1", 1, Insert("7"))
	id2 := MustActionID("session-2", 1, Insert("7"))
	id3 := MustActionID("session-1", 2, Insert("7"))
	id4 := MustActionID("session-1", 1, Insert("8"))
	id5 := MustActionID("session-1", 1, Do(ActionEquals))

	assert.NotEqual(t, id1, id2, "different session")
	assert.NotEqual(t, id1, id3, "different seq")
	assert.NotEqual(t, id1, id4, "different value")
	assert.NotEqual(t, id1, id5, "different kind")
}

func TestStateHash_IgnoresStatus(t *testing.T) {
	s := State{Tokens: []string{"1", "+", "2"}, Expression: "1+2", CursorIndex: 3, CursorOffset: 3, HistoryIndex: -1}
	withStatus := s
	withStatus.Status = "Math Error"

	assert.Equal(t, MustStateHash(s), MustStateHash(withStatus))
}

func TestStateHash_ChangesWithSnapshot(t *testing.T) {
	base := State{Tokens: []string{"1"}, Expression: "1", CursorIndex: 1, CursorOffset: 1, HistoryIndex: -1}

	moved := base
	moved.CursorIndex = 0
	moved.CursorOffset = 0

	rad := base
	rad.AngleMode = AngleRadians

	assert.NotEqual(t, MustStateHash(base), MustStateHash(moved))
	assert.NotEqual(t, MustStateHash(base), MustStateHash(rad))
}

func TestHashDomainSeparation(t *testing.T) {
	data := []byte(`{"a":1}`)
	assert.NotEqual(t, hashWithDomain(DomainAction, data), hashWithDomain(DomainState, data))
}
