package engine

import "github.com/roach88/lcdcalc/internal/ir"

// ReplayOlder loads the next older history entry ("up").
func (e *Engine) ReplayOlder() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replay(-1)
}

// ReplayNewer loads the next newer history entry ("down"). Stepping past the
// newest entry returns to an empty live buffer.
func (e *Engine) ReplayNewer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replay(1)
}

// replay navigates history without re-evaluating. direction < 0 is older.
// With no history it only shows "No Replay".
func (e *Engine) replay(direction int) {
	if e.history.Len() == 0 {
		e.setStatus(StatusNoReplay, statusShort)
		return
	}

	var (
		entry ir.HistoryEntry
		moved bool
	)
	switch {
	case direction < 0:
		entry, moved = e.history.Older()
	case direction > 0:
		entry, moved = e.history.Newer()
	}
	if !moved {
		return
	}
	e.load(entry)
}

// load replaces the buffer with an entry's tokens and shows its cached result.
func (e *Engine) load(entry ir.HistoryEntry) {
	e.tokens = ir.CloneTokens(entry.Tokens)
	e.cursor = len(e.tokens)
	e.result = entry.Result
}
