package engine

import (
	"fmt"
	"slices"
)

// Raw tokens the engine inserts on its own.
const (
	TokenAns       = "Ans"
	TokenMemory    = "M"
	TokenNegate    = "−"
	TokenFactorial = "!"
	TokenPower     = "^"
)

// InsertToken inserts one raw token at the cursor. An empty value is a no-op.
func (e *Engine) InsertToken(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.insertToken(value)
}

// InsertTokens inserts values at the cursor in order and moves the cursor
// past them. An empty slice is a no-op.
func (e *Engine) InsertTokens(values ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.insertTokens(values)
}

// Delete removes the token left of the cursor. No-op at the start.
func (e *Engine) Delete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deleteLeft()
}

// MoveLeft moves the cursor one token left, stopping at 0.
func (e *Engine) MoveLeft() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveLeft()
}

// MoveRight moves the cursor one token right, stopping at the end.
func (e *Engine) MoveRight() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveRight()
}

// Square appends "^" "2" at the cursor. No-op on an empty buffer.
func (e *Engine) Square() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyPower("2")
}

// Cube appends "^" "3" at the cursor. No-op on an empty buffer.
func (e *Engine) Cube() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyPower("3")
}

// Factorial inserts "!" at the cursor. No-op on an empty buffer.
func (e *Engine) Factorial() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyFactorial()
}

// Negate inserts the display minus glyph. Whether it negates or subtracts is
// decided by the tokenizer at evaluation time.
func (e *Engine) Negate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.insertToken(TokenNegate)
}

// InsertAns inserts the Ans constant.
func (e *Engine) InsertAns() {
	e.InsertToken(TokenAns)
}

// InsertMemory inserts the M constant.
func (e *Engine) InsertMemory() {
	e.InsertToken(TokenMemory)
}

// Clear empties the buffer and the result line and shows "All Clear".
// Registers and history are kept.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearExpression()
}

// ToggleAngle flips DEG and RAD.
func (e *Engine) ToggleAngle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.toggleAngle()
}

// Shift latches shift and releases alpha.
func (e *Engine) Shift() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setShift()
}

// Alpha latches alpha and releases shift.
func (e *Engine) Alpha() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setAlpha()
}

// Calc, Solve and Mode are placeholders that only show a status.

// Calc shows the CALC placeholder.
func (e *Engine) Calc() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setStatus(StatusCalcStub, statusShort)
}

// Solve shows the SOLVE placeholder.
func (e *Engine) Solve() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setStatus(StatusSolveStub, statusShort)
}

// Mode shows the MODE placeholder.
func (e *Engine) Mode() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setStatus(StatusModeStub, statusShort)
}

func (e *Engine) insertToken(value string) {
	if value == "" {
		return
	}
	e.insertTokens([]string{value})
}

func (e *Engine) insertTokens(values []string) {
	if len(values) == 0 {
		return
	}
	e.tokens = slices.Insert(e.tokens, e.cursor, values...)
	e.cursor += len(values)
	e.consumeLatches()
}

func (e *Engine) deleteLeft() {
	if e.cursor == 0 {
		return
	}
	e.tokens = slices.Delete(e.tokens, e.cursor-1, e.cursor)
	e.cursor--
	e.consumeLatches()
}

func (e *Engine) moveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Engine) moveRight() {
	if e.cursor < len(e.tokens) {
		e.cursor++
	}
}

func (e *Engine) applyPower(exponent string) {
	if len(e.tokens) == 0 {
		return
	}
	e.insertTokens([]string{TokenPower, exponent})
}

func (e *Engine) applyFactorial() {
	if len(e.tokens) == 0 {
		return
	}
	e.insertToken(TokenFactorial)
}

func (e *Engine) clearExpression() {
	e.tokens = []string{}
	e.cursor = 0
	e.result = ""
	e.clearStatus()
	e.setStatus(StatusAllClear, statusShort)
}

func (e *Engine) toggleAngle() {
	e.angleMode = e.angleMode.Toggle()
	e.setStatus(fmt.Sprintf("%s mode", e.angleMode), statusMedium)
}

func (e *Engine) setShift() {
	e.shift = true
	e.alpha = false
	e.setStatus(StatusShift, statusMedium)
}

func (e *Engine) setAlpha() {
	e.alpha = true
	e.shift = false
	e.setStatus(StatusAlpha, statusMedium)
}

// consumeLatches releases the one-shot modifiers after a buffer edit.
func (e *Engine) consumeLatches() {
	e.shift = false
	e.alpha = false
}
