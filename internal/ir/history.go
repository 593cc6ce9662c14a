package ir

// HistoryEntry is an immutable record of one successful evaluation.
type HistoryEntry struct {
	Tokens []string `json:"tokens"`
	Result string   `json:"result"`
}

// NewHistoryEntry copies tokens so the entry never aliases the edit buffer.
func NewHistoryEntry(tokens []string, result string) HistoryEntry {
	return HistoryEntry{Tokens: CloneTokens(tokens), Result: result}
}

// Clone returns a deep copy of the entry.
func (h HistoryEntry) Clone() HistoryEntry {
	return NewHistoryEntry(h.Tokens, h.Result)
}

// CloneTokens copies a raw token slice. A nil or empty input yields an empty,
// non-nil slice.
func CloneTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}
