package store

import (
	"context"
	"fmt"

	"github.com/roach88/lcdcalc/internal/ir"
)

// WriteSession inserts a session record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) WriteSession(ctx context.Context, sess ir.Session) error {
	if sess.ID == "" {
		return fmt.Errorf("write session: empty id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, angle_mode, engine_version, ir_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.AngleMode.String(),
		sess.EngineVersion,
		sess.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteAction inserts a journal record.
// Uses ON CONFLICT DO NOTHING for idempotency: a duplicate id or a second
// record for the same (session, seq) is silently ignored.
//
// Note: The session referenced by SessionID must exist (foreign key constraint).
func (s *Store) WriteAction(ctx context.Context, rec ir.JournalRecord) error {
	tokensJSON, err := marshalTokens(rec.Tokens)
	if err != nil {
		return fmt.Errorf("write action: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO actions
		(id, session_id, seq, kind, value, tokens, expression, result, status, state_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		rec.ID,
		rec.SessionID,
		rec.Seq,
		rec.Action.Kind.String(),
		rec.Action.Value,
		tokensJSON,
		rec.Expression,
		rec.Result,
		rec.Status,
		rec.StateHash,
	)
	if err != nil {
		return fmt.Errorf("write action: %w", err)
	}
	return nil
}
