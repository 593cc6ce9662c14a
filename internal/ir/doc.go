// Package ir provides the shared data model for the calculator.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the model as the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Tokens are immutable once produced by the tokenizer
//   - Edit-buffer tokens are raw strings; parsed Tokens are a closed variant
//   - Snapshots (State, HistoryEntry) never share slices with the engine
//   - All JSON tags use snake_case
//   - Canonical JSON carries no floats; numbers leave the model as formatted text
package ir
