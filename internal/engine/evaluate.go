package engine

import (
	"strings"

	"github.com/roach88/lcdcalc/internal/evaluator"
)

// Evaluate runs the buffer through the evaluator ("=").
//
// An empty buffer sets the result to "0" and records nothing. On success the
// formatted value becomes the result, the raw value becomes ans and the
// buffer is pushed to history. On any failure the result is "Error", "Math
// Error" is shown and the buffer is left for correction.
func (e *Engine) Evaluate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.evaluate()
}

// Store evaluates the buffer into the memory register. Non-finite results
// are rejected like any other failure. The buffer, ans, result and history
// are untouched.
func (e *Engine) Store() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store()
}

func (e *Engine) expression() string {
	return strings.Join(e.tokens, "")
}

func (e *Engine) evaluate() {
	expr := e.expression()
	if expr == "" {
		e.result = "0"
		return
	}

	v, err := evaluator.EvaluateExpression(expr, e.evalContext())
	if err != nil {
		e.logger.Debug("evaluation failed",
			"session", e.sessionID,
			"expression", expr,
			"code", evaluator.Code(err),
			"error", err)
		e.result = evaluator.ErrorText
		e.setStatus(StatusMathError, statusMedium)
		return
	}

	formatted := evaluator.FormatResult(v)
	e.result = formatted
	e.ans = v
	e.history.Push(e.tokens, formatted)

	e.logger.Debug("evaluated",
		"session", e.sessionID,
		"expression", expr,
		"result", formatted,
		"history_len", e.history.Len())
}

func (e *Engine) store() {
	expr := e.expression()
	v, err := evaluator.EvaluateExpression(expr, e.evalContext())
	if err != nil {
		e.logger.Debug("store failed",
			"session", e.sessionID,
			"expression", expr,
			"code", evaluator.Code(err),
			"error", err)
		e.setStatus(StatusStoreErr, statusShort)
		return
	}
	e.memory = v
	e.setStatus(StatusStored, statusShort)
}
