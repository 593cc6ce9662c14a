package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/roach88/lcdcalc/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %q -> %q\n", event.Seq, traceLabel(event), event.Expression, event.Result)
		}
	}
	return buf.String()
}

func traceLabel(event TraceEvent) string {
	if event.Value != "" {
		return fmt.Sprintf("%s(%q)", event.Action, event.Value)
	}
	return event.Action
}

// eventKind resolves an assertion's action name, so aliases such as "ac"
// match the canonical names stored in the trace.
func eventKind(name string) string {
	kind, err := ir.ParseActionKind(name)
	if err != nil {
		return name
	}
	return kind.String()
}

// assertTraceContains checks if the trace contains the action, and when
// Value is set, an insert of that token.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	want := eventKind(assertion.Action)
	for _, event := range trace {
		if event.Action != want {
			continue
		}
		if assertion.Value == "" || event.Value == assertion.Value {
			return nil
		}
	}

	expected := want
	if assertion.Value != "" {
		expected = fmt.Sprintf("%s(%q)", want, assertion.Value)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if actions appear in the specified order.
// Actions don't need to be consecutive; each match must come after the
// previous one.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	pos := 0
	for _, name := range assertion.Actions {
		want := eventKind(name)
		found := false
		for pos < len(trace) {
			event := trace[pos]
			pos++
			if event.Action == want {
				found = true
				break
			}
		}
		if !found {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
				Actual:   fmt.Sprintf("no %s after position %d", want, pos),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks if the action appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	want := eventKind(assertion.Action)
	count := 0
	for _, event := range trace {
		if event.Action == want {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%s appears %d times", want, assertion.Count),
			Actual:   fmt.Sprintf("%s appears %d times", want, count),
			Trace:    trace,
		}
	}
	return nil
}

// finalStateMap flattens the final snapshot and registers into the keys
// final_state assertions may name.
func finalStateMap(result *Result) map[string]any {
	m := result.State.Canonical(true)
	m["ans"] = result.Ans
	m["memory"] = result.Memory
	return m
}

// assertFinalState checks the final snapshot with subset semantics. Keys
// are checked in sorted order so failures are reported deterministically.
func assertFinalState(result *Result, assertion Assertion) error {
	actual := finalStateMap(result)

	keys := make([]string, 0, len(assertion.Expect))
	for k := range assertion.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		want := assertion.Expect[key]
		got, ok := actual[key]
		if !ok {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q", key),
				Actual:   "no such state field",
			}
		}
		if !stateValuesEqual(want, got) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("%s = %v", key, want),
				Actual:   fmt.Sprintf("%s = %v", key, got),
			}
		}
	}
	return nil
}

// assertHistory checks that the history ring holds exactly the expected
// entries, oldest first.
func assertHistory(result *Result, assertion Assertion) error {
	actual := make([]HistoryExpect, len(result.History))
	for i, entry := range result.History {
		actual[i] = HistoryExpect{
			Expression: strings.Join(entry.Tokens, ""),
			Result:     entry.Result,
		}
	}

	if len(actual) == 0 && len(assertion.Entries) == 0 {
		return nil
	}
	if !reflect.DeepEqual(actual, assertion.Entries) {
		return &AssertionError{
			Type:     AssertHistory,
			Expected: fmt.Sprintf("%v", assertion.Entries),
			Actual:   fmt.Sprintf("%v", actual),
		}
	}
	return nil
}

// stateValuesEqual compares a YAML-decoded expected value with a snapshot
// value. YAML yields int for integers and []any for sequences, the
// snapshot uses int and []string.
func stateValuesEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	switch exp := expected.(type) {
	case string:
		act, ok := actual.(string)
		return ok && exp == act
	case bool:
		act, ok := actual.(bool)
		return ok && exp == act
	case int:
		switch act := actual.(type) {
		case int:
			return exp == act
		case int64:
			return int64(exp) == act
		}
		return false
	case []any:
		act, ok := actual.([]string)
		if !ok || len(act) != len(exp) {
			return false
		}
		for i := range exp {
			if !stateValuesEqual(exp[i], act[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(expected, actual)
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			err = assertFinalState(result, assertion)
		case AssertHistory:
			err = assertHistory(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
