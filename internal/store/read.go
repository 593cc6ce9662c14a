package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/lcdcalc/internal/ir"
)

// ErrSessionNotFound is returned when a session id has no record.
var ErrSessionNotFound = errors.New("session not found")

// SessionSummary is a session with its action count, for listings.
type SessionSummary struct {
	ir.Session
	Actions int   `json:"actions"`
	LastSeq int64 `json:"last_seq"`
}

// ReadSession returns one session record.
func (s *Store) ReadSession(ctx context.Context, id string) (ir.Session, error) {
	var (
		sess ir.Session
		mode string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, angle_mode, engine_version, ir_version
		FROM sessions
		WHERE id = ?
	`, id).Scan(&sess.ID, &mode, &sess.EngineVersion, &sess.IRVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Session{}, fmt.Errorf("read session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return ir.Session{}, fmt.Errorf("read session: %w", err)
	}
	if sess.AngleMode, err = ir.ParseAngleMode(mode); err != nil {
		return ir.Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return sess, nil
}

// ListSessions returns every session in id order. UUIDv7 ids sort by
// creation time.
//
// Returns an empty slice (not nil) if the journal is empty.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.angle_mode, s.engine_version, s.ir_version,
		       COUNT(a.id), COALESCE(MAX(a.seq), 0)
		FROM sessions s
		LEFT JOIN actions a ON a.session_id = s.id
		GROUP BY s.id
		ORDER BY s.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []SessionSummary{}
	for rows.Next() {
		var (
			sum  SessionSummary
			mode string
		)
		if err := rows.Scan(&sum.ID, &mode, &sum.EngineVersion, &sum.IRVersion, &sum.Actions, &sum.LastSeq); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if sum.AngleMode, err = ir.ParseAngleMode(mode); err != nil {
			return nil, fmt.Errorf("scan session %s: %w", sum.ID, err)
		}
		sessions = append(sessions, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadActions returns every journaled action of a session.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the session has no actions.
func (s *Store) ReadActions(ctx context.Context, sessionID string) ([]ir.JournalRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, seq, kind, value, tokens, expression, result, status, state_hash
		FROM actions
		WHERE session_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	records := []ir.JournalRecord{}
	for rows.Next() {
		rec, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return records, nil
}

func scanAction(rows *sql.Rows) (ir.JournalRecord, error) {
	var (
		rec        ir.JournalRecord
		kind       string
		tokensJSON string
	)
	err := rows.Scan(
		&rec.ID,
		&rec.SessionID,
		&rec.Seq,
		&kind,
		&rec.Action.Value,
		&tokensJSON,
		&rec.Expression,
		&rec.Result,
		&rec.Status,
		&rec.StateHash,
	)
	if err != nil {
		return rec, fmt.Errorf("scan action: %w", err)
	}

	if rec.Action.Kind, err = ir.ParseActionKind(kind); err != nil {
		return rec, fmt.Errorf("scan action seq=%d: %w", rec.Seq, err)
	}
	if rec.Tokens, err = unmarshalTokens(tokensJSON); err != nil {
		return rec, fmt.Errorf("scan action seq=%d: %w", rec.Seq, err)
	}
	return rec, nil
}
