package store

import (
	"context"
	"fmt"

	"github.com/roach88/lcdcalc/internal/ir"
)

// SessionLog is a session with its full action timeline, for replay and
// trace output.
type SessionLog struct {
	Session ir.Session
	Actions []ir.JournalRecord
	LastSeq int64
	// Evaluations counts "=" actions whose result was not "Error".
	Evaluations int
	// Failures counts "=" actions that produced "Error".
	Failures int
}

// ReadSessionLog loads a session and its actions in seq order.
func (s *Store) ReadSessionLog(ctx context.Context, sessionID string) (SessionLog, error) {
	sess, err := s.ReadSession(ctx, sessionID)
	if err != nil {
		return SessionLog{}, fmt.Errorf("read session log: %w", err)
	}
	actions, err := s.ReadActions(ctx, sessionID)
	if err != nil {
		return SessionLog{}, fmt.Errorf("read session log: %w", err)
	}

	log := SessionLog{Session: sess, Actions: actions}
	for _, rec := range actions {
		if rec.Seq > log.LastSeq {
			log.LastSeq = rec.Seq
		}
		if rec.Action.Kind != ir.ActionEquals {
			continue
		}
		if rec.Result == "Error" {
			log.Failures++
		} else {
			log.Evaluations++
		}
	}
	return log, nil
}
