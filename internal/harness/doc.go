// Package harness runs calculator scenarios against a real engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: ans_chain
//	description: "Ans carries the previous result into the next expression"
//	angle_mode: DEG
//	steps:
//	  - keys: ["2", "+", "3"]
//	  - action: equals
//	    expect: { result: "5" }
//	  - press: [ans, multiply, two, equals]
//	    expect: { result: "10", history_len: 2 }
//	  - advance_ms: 1800
//	    expect: { status: "" }
//	assertions:
//	  - type: trace_count
//	    action: equals
//	    count: 2
//
// A step dispatches at most one of action, keys (raw tokens, each an
// insert) or press (keypad key ids), then advances the virtual clock by
// advance_ms, then checks expect against the engine snapshot.
//
// # Assertion Types
//
//   - trace_contains: an action (and optional insert value) appears in the journal
//   - trace_order: actions appear in the journal in the given order
//   - trace_count: an action appears exactly N times
//   - final_state: subset match on the final snapshot
//   - history: the history ring holds exactly the given entries, oldest first
//
// # Deterministic Testing
//
// Every scenario runs with a fixed session id, a ManualScheduler in place of
// wall-clock timers and a fresh in-memory SQLite journal, so the trace read
// back from the journal is byte-identical across runs and can be compared
// against golden files.
package harness
