package engine

import "github.com/roach88/lcdcalc/internal/ir"

// DefaultHistoryCapacity is the number of evaluations kept for replay.
const DefaultHistoryCapacity = 50

// History is a bounded list of successful evaluations, stored oldest first,
// plus a replay cursor.
//
// The cursor counts back from the newest entry: 0 is the newest, Len()-1 the
// oldest, and -1 means the live buffer is showing.
type History struct {
	entries  []ir.HistoryEntry
	capacity int
	index    int
}

// NewHistory creates an empty history. A non-positive capacity falls back
// to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity, index: -1}
}

// Push appends a copy of tokens with its result, evicts the oldest entry on
// overflow and returns the cursor to live.
func (h *History) Push(tokens []string, result string) {
	h.entries = append(h.entries, ir.NewHistoryEntry(tokens, result))
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
	h.index = -1
}

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Cap returns the capacity.
func (h *History) Cap() int { return h.capacity }

// Index returns the replay cursor.
func (h *History) Index() int { return h.index }

// Entries returns copies of the stored entries, oldest first.
func (h *History) Entries() []ir.HistoryEntry {
	out := make([]ir.HistoryEntry, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Clone()
	}
	return out
}

// Older moves the cursor one entry back in time and returns that entry.
// It reports false when the cursor is already at the oldest entry.
func (h *History) Older() (ir.HistoryEntry, bool) {
	if h.index >= len(h.entries)-1 {
		return ir.HistoryEntry{}, false
	}
	h.index++
	return h.current(), true
}

// Newer moves the cursor one entry forward in time. Stepping past the newest
// entry returns to live and yields the zero entry, which clears the buffer.
// It reports false when the cursor is already live.
func (h *History) Newer() (ir.HistoryEntry, bool) {
	switch {
	case h.index > 0:
		h.index--
		return h.current(), true
	case h.index == 0:
		h.index = -1
		return ir.HistoryEntry{Tokens: []string{}}, true
	default:
		return ir.HistoryEntry{}, false
	}
}

func (h *History) current() ir.HistoryEntry {
	return h.entries[len(h.entries)-1-h.index].Clone()
}
