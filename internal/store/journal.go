package store

import (
	"context"
	"fmt"

	"github.com/roach88/lcdcalc/internal/ir"
)

// Journal records one engine session. It implements engine.Recorder.
type Journal struct {
	store   *Store
	session ir.Session
}

// NewJournal writes the session record and returns a recorder bound to it.
func NewJournal(ctx context.Context, st *Store, sess ir.Session) (*Journal, error) {
	if err := st.WriteSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("new journal: %w", err)
	}
	return &Journal{store: st, session: sess}, nil
}

// Session returns the session this journal writes under.
func (j *Journal) Session() ir.Session {
	return j.session
}

// RecordAction writes rec. Records for another session are rejected so one
// journal never mixes engine lifetimes.
func (j *Journal) RecordAction(ctx context.Context, rec ir.JournalRecord) error {
	if rec.SessionID != j.session.ID {
		return fmt.Errorf("record action: session %q does not match journal session %q", rec.SessionID, j.session.ID)
	}
	return j.store.WriteAction(ctx, rec)
}
