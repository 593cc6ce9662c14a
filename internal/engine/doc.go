// Package engine implements the calculator state machine.
//
// An Engine owns the edit buffer (raw input tokens plus a cursor), the
// shift/alpha latches, the ans and memory registers, a bounded replay
// history and a status message with a cancellable expiry timer. Editing
// actions touch only the buffer. Evaluation serializes the buffer and hands
// it to package evaluator.
//
// RECOVERY BOUNDARY:
//
// The engine is the only place where evaluation errors become display state.
// A failed "=" sets the result to "Error" and shows "Math Error"; a failed
// store shows "Store Err". No method returns an evaluation error.
//
// CONCURRENCY:
//
// All state is guarded by one mutex, so an Engine may be driven from any
// goroutine, but actions are applied one at a time in the order they take
// the lock. The status expiry callback takes the same lock.
//
// ORDERING:
//
// Every dispatched action is stamped with a seq from the engine Clock.
// When a Recorder is configured the action and the snapshot it produced are
// reported under that seq. The engine never reads recorded actions back.
package engine
