package engine

import "time"

// DefaultStatusDuration applies to messages set through SetStatus.
const DefaultStatusDuration = 1800 * time.Millisecond

// Built-in status messages.
const (
	StatusAllClear  = "All Clear"
	StatusShift     = "SHIFT"
	StatusAlpha     = "ALPHA"
	StatusStored    = "Stored"
	StatusStoreErr  = "Store Err"
	StatusMathError = "Math Error"
	StatusNoReplay  = "No Replay"
	StatusCalcStub  = "CALC stub"
	StatusSolveStub = "SOLVE stub"
	StatusModeStub  = "MODE stub"
)

const (
	statusShort  = 1200 * time.Millisecond
	statusMedium = 1500 * time.Millisecond
)

// SetStatus shows message for the configured status duration.
func (e *Engine) SetStatus(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setStatus(message, e.statusDuration)
}

// Status returns the current status message, or "" once it has expired.
func (e *Engine) Status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// setStatus replaces the message, cancels any pending expiry and schedules
// a new one. Caller holds mu.
//
// The generation check drops an expiry whose timer fired but had not yet
// taken the lock when a newer message arrived.
func (e *Engine) setStatus(message string, d time.Duration) {
	e.cancelStatusTimer()
	e.status = message
	e.statusGen++
	gen := e.statusGen

	e.stopStatus = e.scheduler.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.statusGen != gen {
			return
		}
		e.status = ""
		e.stopStatus = nil
	})
}

// clearStatus blanks the message without touching a pending timer.
func (e *Engine) clearStatus() {
	e.status = ""
}

func (e *Engine) cancelStatusTimer() {
	if e.stopStatus != nil {
		e.stopStatus()
		e.stopStatus = nil
	}
}
