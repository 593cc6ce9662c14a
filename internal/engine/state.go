package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/roach88/lcdcalc/internal/ir"
)

// State returns a fresh snapshot for the presentation layer.
func (e *Engine) State() ir.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// snapshot builds the read-only view. Caller holds mu.
//
// CursorOffset counts characters (runes), not bytes, so "π" and "×" are
// one column each.
func (e *Engine) snapshot() ir.State {
	return ir.State{
		Tokens:       ir.CloneTokens(e.tokens),
		Expression:   e.expression(),
		CursorIndex:  e.cursor,
		CursorOffset: utf8.RuneCountInString(strings.Join(e.tokens[:e.cursor], "")),
		Result:       e.result,
		AngleMode:    e.angleMode,
		Status:       e.status,
		Shift:        e.shift,
		Alpha:        e.alpha,
		HistoryLen:   e.history.Len(),
		HistoryIndex: e.history.Index(),
	}
}
