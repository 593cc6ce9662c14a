package harness

import (
	"github.com/roach88/lcdcalc/internal/ir"
)

// TraceEvent is one journaled action.
type TraceEvent struct {
	Seq        int64  `json:"seq"`
	Action     string `json:"action"`
	Value      string `json:"value,omitempty"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Status     string `json:"status,omitempty"`
	StateHash  string `json:"state_hash"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// SessionID is the session the trace was journaled under.
	SessionID string `json:"session_id"`

	// Trace is the journal in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds one message per failed check.
	Errors []string `json:"errors,omitempty"`

	// State is the final engine snapshot.
	State ir.State `json:"state"`

	// History is the final history ring, oldest first.
	History []ir.HistoryEntry `json:"history"`

	// Ans and Memory are the final registers, formatted for display.
	Ans    string `json:"ans"`
	Memory string `json:"memory"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		History: []ir.HistoryEntry{},
	}
}

// AddError records a failed check and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a journal record to the trace.
func (r *Result) AddTrace(rec ir.JournalRecord) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:        rec.Seq,
		Action:     rec.Action.Kind.String(),
		Value:      rec.Action.Value,
		Expression: rec.Expression,
		Result:     rec.Result,
		Status:     rec.Status,
		StateHash:  rec.StateHash,
	})
}
