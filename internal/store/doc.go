// Package store provides a SQLite-backed action journal.
//
// The journal is an opt-in diagnostics transcript of engine sessions:
//   - Sessions: one row per engine lifetime
//   - Actions: every dispatched action with the snapshot it produced
//
// The engine writes to the journal through Journal (an engine.Recorder) and
// never reads it back. Reads serve the replay and trace commands.
//
// # Ordering
//
//   - All ordering uses seq INTEGER (logical clock), never timestamps
//   - Action queries use ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Idempotency
//
// Writes use ON CONFLICT DO NOTHING. Action ids are content-addressed
// (ir.ActionID), so re-recording a session is harmless.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
