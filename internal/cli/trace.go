package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/lcdcalc/internal/ir"
	"github.com/roach88/lcdcalc/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database  string
	SessionID string
	Actions   []string // optional - filter to these action kinds
	FromSeq   int64
	ToSeq     int64
	Failed    bool
}

// TraceEvent is one journaled action in the trace timeline.
type TraceEvent struct {
	Seq        int64  `json:"seq"`
	ID         string `json:"id"`
	Action     string `json:"action"`
	Value      string `json:"value,omitempty"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Status     string `json:"status,omitempty"`
}

// Evaluation pairs an "=" press with the buffer it evaluated.
type Evaluation struct {
	Seq        int64  `json:"seq"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Failed     bool   `json:"failed"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	SessionID   string       `json:"session_id"`
	AngleMode   string       `json:"angle_mode"`
	Timeline    []TraceEvent `json:"timeline"`
	Evaluations []Evaluation `json:"evaluations"`
	Stats       TraceStats   `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalActions int   `json:"total_actions"`
	Shown        int   `json:"shown"`
	Evaluations  int   `json:"evaluations"`
	Failures     int   `json:"failures"`
	LastSeq      int64 `json:"last_seq"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the action timeline of a journaled session",
		Long: `Print every journaled action of one session in seq order.

The output includes:
- Timeline: each action with the expression and result it left behind
- Evaluations: every "=" with its expression and outcome
- Stats: summary counts for the session

Examples:
  lcdcalc trace --db ./lcdcalc.db --session 0190c3a2-...
  lcdcalc trace --db ./lcdcalc.db --session 0190c3a2-... --action equals,store
  lcdcalc trace --db ./lcdcalc.db --session 0190c3a2-... --from 10 --to 20
  lcdcalc trace --db ./lcdcalc.db --session 0190c3a2-... --failed
  lcdcalc trace --db ./lcdcalc.db --session 0190c3a2-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.SessionID, "session", "", "session id to trace (required)")
	_ = cmd.MarkFlagRequired("session")
	cmd.Flags().StringSliceVar(&opts.Actions, "action", nil, "filter to action kinds (insert, equals, ...)")
	cmd.Flags().Int64Var(&opts.FromSeq, "from", 0, "first seq to show")
	cmd.Flags().Int64Var(&opts.ToSeq, "to", 0, "last seq to show")
	cmd.Flags().BoolVar(&opts.Failed, "failed", false, "show only actions that left an Error result")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	query := store.ActionQuery{
		SessionID: opts.SessionID,
		FromSeq:   opts.FromSeq,
		ToSeq:     opts.ToSeq,
		Failed:    opts.Failed,
	}
	for _, name := range opts.Actions {
		kind, err := ir.ParseActionKind(name)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --action", err)
		}
		query.Kinds = append(query.Kinds, kind)
	}
	if _, _, err := query.Compile(); err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	log, err := st.ReadSessionLog(ctx, opts.SessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		if opts.Format == "json" {
			return writeIndentedJSON(cmd.OutOrStdout(), CLIResponse{
				Status: "ok",
				Data: TraceResult{
					SessionID:   opts.SessionID,
					Timeline:    []TraceEvent{},
					Evaluations: []Evaluation{},
				},
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "No actions found for session: %s\n", opts.SessionID)
		return nil
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	shown, err := st.QueryActions(ctx, query)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to query actions", err)
	}

	result := buildTrace(log, shown)
	if opts.Format == "json" {
		return writeIndentedJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result})
	}
	return outputTraceText(cmd.OutOrStdout(), result, opts.Verbose)
}

// buildTrace converts a session log to the trace view. The timeline holds
// the filtered records; evaluations and stats always cover the whole session.
func buildTrace(log store.SessionLog, shown []ir.JournalRecord) TraceResult {
	result := TraceResult{
		SessionID:   log.Session.ID,
		AngleMode:   log.Session.AngleMode.String(),
		Timeline:    make([]TraceEvent, 0, len(shown)),
		Evaluations: []Evaluation{},
		Stats: TraceStats{
			TotalActions: len(log.Actions),
			Shown:        len(shown),
			Evaluations:  log.Evaluations,
			Failures:     log.Failures,
			LastSeq:      log.LastSeq,
		},
	}

	for _, rec := range log.Actions {
		if rec.Action.Kind != ir.ActionEquals {
			continue
		}
		result.Evaluations = append(result.Evaluations, Evaluation{
			Seq:        rec.Seq,
			Expression: rec.Expression,
			Result:     rec.Result,
			Failed:     rec.Result == "Error",
		})
	}

	for _, rec := range shown {
		result.Timeline = append(result.Timeline, TraceEvent{
			Seq:        rec.Seq,
			ID:         rec.ID,
			Action:     rec.Action.Kind.String(),
			Value:      rec.Action.Value,
			Expression: rec.Expression,
			Result:     rec.Result,
			Status:     rec.Status,
		})
	}
	return result
}

// outputTraceText outputs the trace result as text.
func outputTraceText(w io.Writer, result TraceResult, verbose bool) error {
	fmt.Fprintf(w, "Trace for Session: %s\n", result.SessionID)
	fmt.Fprintf(w, "Angle Mode: %s\n", result.AngleMode)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timeline ===")
	if len(result.Timeline) == 0 {
		fmt.Fprintln(w, "  (no actions)")
	}
	for _, event := range result.Timeline {
		formatTimelineEvent(w, event, verbose)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Evaluations ===")
	if len(result.Evaluations) == 0 {
		fmt.Fprintln(w, "  (no evaluations)")
	}
	for _, ev := range result.Evaluations {
		mark := "✓"
		if ev.Failed {
			mark = "✗"
		}
		fmt.Fprintf(w, "  %s [%d] %s = %s\n", mark, ev.Seq, ev.Expression, ev.Result)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Total Actions: %d\n", result.Stats.TotalActions)
	fmt.Fprintf(w, "  Shown:         %d\n", result.Stats.Shown)
	fmt.Fprintf(w, "  Evaluations:   %d\n", result.Stats.Evaluations)
	fmt.Fprintf(w, "  Failures:      %d\n", result.Stats.Failures)
	fmt.Fprintf(w, "  Last Seq:      %d\n", result.Stats.LastSeq)

	return nil
}

// formatTimelineEvent formats a single timeline event for text output.
func formatTimelineEvent(w io.Writer, event TraceEvent, verbose bool) {
	action := event.Action
	if event.Value != "" {
		action = fmt.Sprintf("%s %q", event.Action, event.Value)
	}
	fmt.Fprintf(w, "  [%d] %-16s %s", event.Seq, action, event.Expression)
	if event.Result != "" {
		fmt.Fprintf(w, " = %s", event.Result)
	}
	fmt.Fprintln(w)
	if verbose {
		if event.Status != "" {
			fmt.Fprintf(w, "       Status: %s\n", event.Status)
		}
		fmt.Fprintf(w, "       ID: %s\n", truncateID(event.ID))
	}
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
