package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/lcdcalc/internal/config"
	"github.com/roach88/lcdcalc/internal/engine"
	"github.com/roach88/lcdcalc/internal/ir"
	"github.com/roach88/lcdcalc/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database  string
	SessionID string // optional - specific session only
}

// Mismatch is one field where the replayed engine disagreed with the journal.
type Mismatch struct {
	Seq      int64  `json:"seq"`
	Field    string `json:"field"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	SessionID     string     `json:"session_id"`
	AngleMode     string     `json:"angle_mode"`
	Actions       int        `json:"actions"`
	Evaluations   int        `json:"evaluations"`
	Failures      int        `json:"failures"`
	Deterministic bool       `json:"deterministic"`
	Mismatches    []Mismatch `json:"mismatches,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay journaled sessions and verify determinism",
		Long: `Re-run every journaled action through a fresh engine and compare.

Each session is replayed with its recorded angle mode and session id. After
every action the expression, result and state hash must match the journal.
Status messages are timing-dependent and are not compared.

Exit codes:
  0 - All sessions are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  lcdcalc replay --db ./lcdcalc.db
  lcdcalc replay --db ./lcdcalc.db --session 0190c3a2-...
  lcdcalc replay --db ./lcdcalc.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.SessionID, "session", "", "replay specific session only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var sessionIDs []string
	if opts.SessionID != "" {
		sessionIDs = []string{opts.SessionID}
	} else {
		summaries, err := st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		for _, s := range summaries {
			sessionIDs = append(sessionIDs, s.Session.ID)
		}
	}

	if len(sessionIDs) == 0 {
		if opts.Format == "json" {
			return outputReplayJSON(cmd, ReplayResult{
				Sessions:         []ReplaySessionResult{},
				AllDeterministic: true,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found in database.")
		return nil
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(sessionIDs)),
		TotalSessions:    len(sessionIDs),
		AllDeterministic: true,
	}

	for _, id := range sessionIDs {
		log, err := st.ReadSessionLog(ctx, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read session %s", id), err)
		}
		sessionResult, err := replaySession(ctx, log, opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", id), err)
		}
		slog.Debug("session replayed",
			"session", id,
			"actions", sessionResult.Actions,
			"deterministic", sessionResult.Deterministic)

		result.Sessions = append(result.Sessions, sessionResult)
		if !sessionResult.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd.OutOrStdout(), result, opts.Verbose)
}

// heldScheduler never fires. Status text is outside the compared state, so a
// replay has no reason to wait on expiry timers.
type heldScheduler struct{}

func (heldScheduler) AfterFunc(time.Duration, func()) func() bool {
	return func() bool { return true }
}

// replaySession feeds the journal through a fresh engine and compares each
// recorded snapshot with the replayed one.
func replaySession(ctx context.Context, log store.SessionLog, cfg config.Config) (ReplaySessionResult, error) {
	eng := engine.New(
		engine.WithAngleMode(log.Session.AngleMode),
		engine.WithHistoryCapacity(cfg.HistoryCapacity),
		engine.WithSessionGenerator(engine.NewFixedGenerator(log.Session.ID)),
		engine.WithScheduler(heldScheduler{}),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	defer eng.Close()

	result := ReplaySessionResult{
		SessionID:     log.Session.ID,
		AngleMode:     log.Session.AngleMode.String(),
		Actions:       len(log.Actions),
		Evaluations:   log.Evaluations,
		Failures:      log.Failures,
		Deterministic: true,
	}

	for _, rec := range log.Actions {
		if err := eng.Dispatch(ctx, rec.Action); err != nil {
			return ReplaySessionResult{}, fmt.Errorf("seq %d: %w", rec.Seq, err)
		}
		state := eng.State()
		hash, err := ir.StateHash(state)
		if err != nil {
			return ReplaySessionResult{}, fmt.Errorf("seq %d: %w", rec.Seq, err)
		}

		result.Mismatches = appendMismatch(result.Mismatches, rec.Seq, "seq", fmt.Sprint(rec.Seq), fmt.Sprint(eng.Seq()))
		result.Mismatches = appendMismatch(result.Mismatches, rec.Seq, "expression", rec.Expression, state.Expression)
		result.Mismatches = appendMismatch(result.Mismatches, rec.Seq, "result", rec.Result, state.Result)
		result.Mismatches = appendMismatch(result.Mismatches, rec.Seq, "state_hash", rec.StateHash, hash)
	}
	result.Deterministic = len(result.Mismatches) == 0
	return result, nil
}

func appendMismatch(ms []Mismatch, seq int64, field, recorded, replayed string) []Mismatch {
	if recorded == replayed {
		return ms
	}
	return append(ms, Mismatch{Seq: seq, Field: field, Recorded: recorded, Replayed: replayed})
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "determinism verification failed",
		}
	}

	if err := writeIndentedJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		// Determinism failure = exit code 1
		return reportedExitError(ExitFailure, "determinism verification failed", nil)
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(w io.Writer, result ReplayResult, verbose bool) error {
	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", result.TotalSessions)
	fmt.Fprintln(w)

	for _, sess := range result.Sessions {
		status := "✓"
		if !sess.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Session: %s (%s)\n", status, sess.SessionID, sess.AngleMode)
		fmt.Fprintf(w, "  Actions: %d, evaluations: %d, failures: %d\n", sess.Actions, sess.Evaluations, sess.Failures)

		if !sess.Deterministic {
			fmt.Fprintln(w, "  Warning: Non-deterministic replay detected!")
			for i, m := range sess.Mismatches {
				if !verbose && i == 3 {
					fmt.Fprintf(w, "  ... %d more (use --verbose)\n", len(sess.Mismatches)-i)
					break
				}
				fmt.Fprintf(w, "  [%d] %s: recorded %q, replayed %q\n", m.Seq, m.Field, m.Recorded, m.Replayed)
			}
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All sessions verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	// Determinism failure = exit code 1
	return reportedExitError(ExitFailure, "determinism verification failed", nil)
}
