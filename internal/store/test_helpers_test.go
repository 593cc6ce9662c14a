package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/lcdcalc/internal/ir"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestSession(id string) ir.Session {
	return ir.Session{
		ID:            id,
		AngleMode:     ir.AngleDegrees,
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}
}

// createTestRecord creates a journal record with a content-addressed id.
func createTestRecord(sessionID string, seq int64, action ir.Action, tokens []string, result string) ir.JournalRecord {
	return ir.JournalRecord{
		ID:         ir.MustActionID(sessionID, seq, action),
		SessionID:  sessionID,
		Seq:        seq,
		Action:     action,
		Tokens:     tokens,
		Expression: joinTokens(tokens),
		Result:     result,
		StateHash:  "test-hash",
	}
}

func joinTokens(tokens []string) string {
	out := ""
	for _, t := range tokens {
		out += t
	}
	return out
}
