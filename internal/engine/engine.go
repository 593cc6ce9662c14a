package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/lcdcalc/internal/ir"
)

// Recorder receives every dispatched action together with the snapshot it
// produced. Implemented by store.Journal.
type Recorder interface {
	RecordAction(ctx context.Context, rec ir.JournalRecord) error
}

// Engine is the calculator state machine.
//
// INVARIANTS:
//   - 0 <= cursor <= len(tokens)
//   - shift and alpha are never both true
//   - at most one status expiry is pending
type Engine struct {
	mu sync.Mutex

	tokens []string
	cursor int
	result string

	ans       float64
	memory    float64
	angleMode ir.AngleMode

	shift bool
	alpha bool

	history *History

	status         string
	statusGen      uint64
	stopStatus     func() bool
	statusDuration time.Duration
	scheduler      Scheduler

	clock      *Clock
	sessionGen SessionIDGenerator
	sessionID  string
	recorder   Recorder
	logger     *slog.Logger

	historyCapacity int
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithHistoryCapacity sets how many evaluations are kept for replay.
//
// Default: 50 (DefaultHistoryCapacity). Non-positive values keep the default.
func WithHistoryCapacity(n int) EngineOption {
	return func(e *Engine) {
		e.historyCapacity = n
	}
}

// WithAngleMode sets the initial angle mode. Default: DEG.
func WithAngleMode(m ir.AngleMode) EngineOption {
	return func(e *Engine) {
		e.angleMode = m
	}
}

// WithStatusDuration sets how long SetStatus messages stay visible.
// Built-in messages keep their own durations.
func WithStatusDuration(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.statusDuration = d
		}
	}
}

// WithScheduler replaces the wall-clock scheduler used for status expiry.
func WithScheduler(s Scheduler) EngineOption {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithLogger sets the engine logger. Default: slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSessionGenerator sets the session id source. Default: UUIDv7Generator.
func WithSessionGenerator(g SessionIDGenerator) EngineOption {
	return func(e *Engine) {
		e.sessionGen = g
	}
}

// WithRecorder reports every dispatched action to r.
func WithRecorder(r Recorder) EngineOption {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithClock sets the sequence clock. Default: NewClock().
func WithClock(c *Clock) EngineOption {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an Engine with an empty buffer, zeroed registers and no
// history.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		tokens:          []string{},
		angleMode:       ir.AngleDegrees,
		statusDuration:  DefaultStatusDuration,
		scheduler:       SystemScheduler{},
		clock:           NewClock(),
		sessionGen:      UUIDv7Generator{},
		logger:          slog.Default(),
		historyCapacity: DefaultHistoryCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = NewHistory(e.historyCapacity)
	e.sessionID = e.sessionGen.Generate()

	e.logger.Debug("engine created",
		"session", e.sessionID,
		"angle_mode", e.angleMode,
		"history_capacity", e.history.Cap())
	return e
}

// SessionID returns the id of this engine lifetime.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Session describes this engine lifetime for the action journal.
func (e *Engine) Session() ir.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ir.Session{
		ID:            e.sessionID,
		AngleMode:     e.angleMode,
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}
}

// SetRecorder attaches r after construction, for journals that are keyed by
// the engine's own session id. A nil r stops recording.
func (e *Engine) SetRecorder(r Recorder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recorder = r
}

// Seq returns the seq of the most recently dispatched action.
func (e *Engine) Seq() int64 {
	return e.clock.Current()
}

// Ans returns the answer register.
func (e *Engine) Ans() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ans
}

// Memory returns the memory register.
func (e *Engine) Memory() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memory
}

// History returns copies of the stored evaluations, oldest first.
func (e *Engine) History() []ir.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Entries()
}

// Close cancels a pending status expiry. The engine stays usable.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelStatusTimer()
}

// evalContext snapshots the registers for one evaluation. Caller holds mu.
func (e *Engine) evalContext() ir.EvalContext {
	return ir.EvalContext{Ans: e.ans, Memory: e.memory, AngleMode: e.angleMode}
}
