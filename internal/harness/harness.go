package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/lcdcalc/internal/engine"
	"github.com/roach88/lcdcalc/internal/evaluator"
	"github.com/roach88/lcdcalc/internal/ir"
	"github.com/roach88/lcdcalc/internal/keypad"
	"github.com/roach88/lcdcalc/internal/store"
	"github.com/roach88/lcdcalc/internal/testutil"
)

// Harness drives one scenario against a live engine.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	sched  *testutil.ManualScheduler
	layout *keypad.Layout
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create a fresh in-memory journal
// 2. Build an engine with a fixed session id and a manual scheduler
// 3. Execute steps, checking each expect clause against the snapshot
// 4. Read the trace back from the journal
// 5. Evaluate assertions against the trace and final state
//
// Check failures are reported in the result; a non-nil error means the
// scenario could not be executed at all.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context for journal writes.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	angle := ir.AngleDegrees
	if scenario.AngleMode != "" {
		angle, err = ir.ParseAngleMode(scenario.AngleMode)
		if err != nil {
			return nil, fmt.Errorf("angle_mode: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := testutil.NewManualScheduler()
	eng := engine.New(
		engine.WithAngleMode(angle),
		engine.WithScheduler(sched),
		engine.WithSessionGenerator(testutil.NewFixedSessionGenerator(scenario.SessionID)),
		engine.WithLogger(logger),
	)
	defer eng.Close()

	journal, err := store.NewJournal(ctx, st, eng.Session())
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	eng.SetRecorder(journal)

	h := &Harness{
		store:  st,
		engine: eng,
		sched:  sched,
		layout: keypad.Default(),
		logger: logger,
	}

	result := NewResult()
	result.SessionID = eng.SessionID()

	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	records, err := st.ReadActions(ctx, eng.SessionID())
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	for _, rec := range records {
		result.AddTrace(rec)
	}

	result.State = eng.State()
	result.History = eng.History()
	result.Ans = evaluator.FormatResult(eng.Ans())
	result.Memory = evaluator.FormatResult(eng.Memory())

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}
	return result, nil
}

// executeSteps dispatches every step's input, advances the virtual clock
// and checks the step's expect clause.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		actions, err := h.stepActions(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		for _, a := range actions {
			if err := h.engine.Dispatch(ctx, a); err != nil {
				return fmt.Errorf("step %d: dispatch %s: %w", i, a, err)
			}
		}

		if step.AdvanceMS > 0 {
			h.sched.Advance(time.Duration(step.AdvanceMS) * time.Millisecond)
		}

		if step.Expect != nil {
			for _, msg := range h.checkExpect(step.Expect) {
				result.AddError(fmt.Sprintf("step %d: %s", i, msg))
			}
		}

		h.logger.Info("step completed",
			"step", i,
			"actions", len(actions),
			"seq", h.engine.Seq(),
		)
	}
	return nil
}

// stepActions translates a step's input into engine actions.
func (h *Harness) stepActions(step Step) ([]ir.Action, error) {
	switch {
	case step.Action != "":
		a, err := ir.ParseAction(step.Action, step.Value)
		if err != nil {
			return nil, err
		}
		return []ir.Action{a}, nil

	case len(step.Keys) > 0:
		actions := make([]ir.Action, len(step.Keys))
		for i, tok := range step.Keys {
			actions[i] = ir.Insert(tok)
		}
		return actions, nil

	case len(step.Press) > 0:
		actions := make([]ir.Action, 0, len(step.Press))
		for _, id := range step.Press {
			key, ok := h.layout.Key(id)
			if !ok {
				return nil, fmt.Errorf("unknown key %q", id)
			}
			a, err := key.Action()
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		}
		return actions, nil
	}
	return nil, nil
}

// checkExpect compares the current snapshot against the non-nil fields of
// exp and returns one message per mismatch.
func (h *Harness) checkExpect(exp *Expect) []string {
	s := h.engine.State()
	var errs []string

	mismatch := func(field string, want, got any) {
		errs = append(errs, fmt.Sprintf("%s: expected %v, got %v", field, want, got))
	}

	if exp.Expression != nil && *exp.Expression != s.Expression {
		mismatch("expression", fmt.Sprintf("%q", *exp.Expression), fmt.Sprintf("%q", s.Expression))
	}
	if exp.Result != nil && *exp.Result != s.Result {
		mismatch("result", fmt.Sprintf("%q", *exp.Result), fmt.Sprintf("%q", s.Result))
	}
	if exp.Status != nil && *exp.Status != s.Status {
		mismatch("status", fmt.Sprintf("%q", *exp.Status), fmt.Sprintf("%q", s.Status))
	}
	if exp.Cursor != nil && *exp.Cursor != s.CursorIndex {
		mismatch("cursor", *exp.Cursor, s.CursorIndex)
	}
	if exp.Shift != nil && *exp.Shift != s.Shift {
		mismatch("shift", *exp.Shift, s.Shift)
	}
	if exp.Alpha != nil && *exp.Alpha != s.Alpha {
		mismatch("alpha", *exp.Alpha, s.Alpha)
	}
	if exp.AngleMode != nil {
		want, _ := ir.ParseAngleMode(*exp.AngleMode)
		if want != s.AngleMode {
			mismatch("angle_mode", want, s.AngleMode)
		}
	}
	if exp.HistoryLen != nil && *exp.HistoryLen != s.HistoryLen {
		mismatch("history_len", *exp.HistoryLen, s.HistoryLen)
	}
	if exp.Ans != nil {
		if got := evaluator.FormatResult(h.engine.Ans()); got != *exp.Ans {
			mismatch("ans", fmt.Sprintf("%q", *exp.Ans), fmt.Sprintf("%q", got))
		}
	}
	if exp.Memory != nil {
		if got := evaluator.FormatResult(h.engine.Memory()); got != *exp.Memory {
			mismatch("memory", fmt.Sprintf("%q", *exp.Memory), fmt.Sprintf("%q", got))
		}
	}
	return errs
}
