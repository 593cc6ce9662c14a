package ir

// State is the read-only snapshot handed to a presentation layer.
// It is recomputed on every query; mutating it has no effect on the engine.
type State struct {
	Tokens     []string `json:"tokens"`
	Expression string   `json:"expression"`

	// CursorIndex is the insertion point in Tokens, in [0, len(Tokens)].
	CursorIndex int `json:"cursor_index"`
	// CursorOffset is the length in characters of the serialized text of all
	// tokens strictly left of the cursor.
	CursorOffset int `json:"cursor_offset"`

	Result    string    `json:"result"`
	AngleMode AngleMode `json:"angle_mode"`
	Status    string    `json:"status"`
	Shift     bool      `json:"shift"`
	Alpha     bool      `json:"alpha"`

	HistoryLen   int `json:"history_len"`
	HistoryIndex int `json:"history_index"`
}

// Canonical returns the snapshot as a map suitable for MarshalCanonical.
// Status is time-dependent (it expires on a timer) and is included only when
// withStatus is true.
func (s State) Canonical(withStatus bool) map[string]any {
	m := map[string]any{
		"tokens":        s.Tokens,
		"expression":    s.Expression,
		"cursor_index":  s.CursorIndex,
		"cursor_offset": s.CursorOffset,
		"result":        s.Result,
		"angle_mode":    s.AngleMode.String(),
		"shift":         s.Shift,
		"alpha":         s.Alpha,
		"history_len":   s.HistoryLen,
		"history_index": s.HistoryIndex,
	}
	if withStatus {
		m["status"] = s.Status
	}
	return m
}
