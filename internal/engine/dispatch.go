package engine

import (
	"context"

	"github.com/roach88/lcdcalc/internal/ir"
)

// Dispatch applies one action from the input layer, stamps it with the next
// seq and reports it to the Recorder, if any.
//
// Recorder failures are logged and dropped; they never fail the action.
func (e *Engine) Dispatch(ctx context.Context, a ir.Action) error {
	e.mu.Lock()
	if err := e.apply(a); err != nil {
		e.mu.Unlock()
		return err
	}
	seq := e.clock.Next()
	state := e.snapshot()
	recorder := e.recorder
	e.mu.Unlock()

	e.logger.Debug("action dispatched",
		"session", e.sessionID,
		"seq", seq,
		"action", a.String(),
		"expression", state.Expression,
		"result", state.Result)

	if recorder != nil {
		e.record(ctx, recorder, seq, a, state)
	}
	return nil
}

// apply maps each action kind onto its engine operation. Caller holds mu.
func (e *Engine) apply(a ir.Action) error {
	switch a.Kind {
	case ir.ActionInsert:
		e.insertToken(a.Value)
	case ir.ActionSquare:
		e.applyPower("2")
	case ir.ActionCube:
		e.applyPower("3")
	case ir.ActionFactorial:
		e.applyFactorial()
	case ir.ActionToggleAngle:
		e.toggleAngle()
	case ir.ActionShift:
		e.setShift()
	case ir.ActionAlpha:
		e.setAlpha()
	case ir.ActionDelete:
		e.deleteLeft()
	case ir.ActionClear:
		e.clearExpression()
	case ir.ActionEquals:
		e.evaluate()
	case ir.ActionLeft:
		e.moveLeft()
	case ir.ActionRight:
		e.moveRight()
	case ir.ActionUp:
		e.replay(-1)
	case ir.ActionDown:
		e.replay(1)
	case ir.ActionNegate:
		e.insertToken(TokenNegate)
	case ir.ActionStore:
		e.store()
	case ir.ActionCalc:
		e.setStatus(StatusCalcStub, statusShort)
	case ir.ActionSolve:
		e.setStatus(StatusSolveStub, statusShort)
	case ir.ActionMode:
		e.setStatus(StatusModeStub, statusShort)
	default:
		return unknownAction(a)
	}
	return nil
}

func (e *Engine) record(ctx context.Context, recorder Recorder, seq int64, a ir.Action, state ir.State) {
	id, err := ir.ActionID(e.sessionID, seq, a)
	if err != nil {
		e.logger.Warn("journal record skipped", "session", e.sessionID, "seq", seq, "error", err)
		return
	}
	stateHash, err := ir.StateHash(state)
	if err != nil {
		e.logger.Warn("journal record skipped", "session", e.sessionID, "seq", seq, "error", err)
		return
	}

	rec := ir.JournalRecord{
		ID:         id,
		SessionID:  e.sessionID,
		Seq:        seq,
		Action:     a,
		Tokens:     state.Tokens,
		Expression: state.Expression,
		Result:     state.Result,
		Status:     state.Status,
		StateHash:  stateHash,
	}
	if err := recorder.RecordAction(ctx, rec); err != nil {
		e.logger.Warn("journal write failed",
			"session", e.sessionID,
			"seq", seq,
			"action", a.String(),
			"error", err)
	}
}
