package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lcdcalc/internal/ir"
	"github.com/roach88/lcdcalc/internal/keypad"
)

// Scenario defines a scripted calculator session and what it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// AngleMode is the initial mode, "DEG" (default) or "RAD".
	AngleMode string `yaml:"angle_mode,omitempty"`

	// SessionID fixes the journal session id. Empty means
	// testutil.DefaultSessionID.
	SessionID string `yaml:"session_id,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the journal and final state after all steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one scripted input followed by an optional check.
type Step struct {
	// Action is an action name ("equals", "shift", "insert", ...).
	Action string `yaml:"action,omitempty"`

	// Value is the token for an insert action.
	Value string `yaml:"value,omitempty"`

	// Keys are raw tokens, each dispatched as an insert.
	Keys []string `yaml:"keys,omitempty"`

	// Press are keypad key ids from the default layout.
	Press []string `yaml:"press,omitempty"`

	// AdvanceMS moves the virtual clock forward after the input.
	AdvanceMS int `yaml:"advance_ms,omitempty"`

	// Expect is checked against the snapshot at the end of the step.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is a subset match on the engine snapshot. Nil fields are not
// checked.
type Expect struct {
	Expression *string `yaml:"expression,omitempty"`
	Result     *string `yaml:"result,omitempty"`
	Status     *string `yaml:"status,omitempty"`
	Cursor     *int    `yaml:"cursor,omitempty"`
	Shift      *bool   `yaml:"shift,omitempty"`
	Alpha      *bool   `yaml:"alpha,omitempty"`
	AngleMode  *string `yaml:"angle_mode,omitempty"`
	HistoryLen *int    `yaml:"history_len,omitempty"`
	Ans        *string `yaml:"ans,omitempty"`
	Memory     *string `yaml:"memory,omitempty"`
}

// Assertion validates the journal or the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Action is the action name (trace_contains, trace_count).
	Action string `yaml:"action,omitempty"`

	// Value narrows trace_contains to inserts of this token.
	Value string `yaml:"value,omitempty"`

	// Actions is the expected order (trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Expect is a subset of the final snapshot (final_state). Keys are the
	// snapshot's JSON names plus "status", "ans" and "memory".
	Expect map[string]any `yaml:"expect,omitempty"`

	// Entries is the exact expected history, oldest first (history).
	Entries []HistoryExpect `yaml:"entries,omitempty"`
}

// HistoryExpect is one expected history entry.
type HistoryExpect struct {
	Expression string `yaml:"expression"`
	Result     string `yaml:"result"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
	AssertHistory       = "history"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", filepath.Base(path), s.Name, prev)
		}
		seen[s.Name] = filepath.Base(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.AngleMode != "" {
		if _, err := ir.ParseAngleMode(s.AngleMode); err != nil {
			return fmt.Errorf("angle_mode: %w", err)
		}
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateStep checks that a step has exactly one kind of input, or none
// when it only advances time or checks state.
func validateStep(index int, step *Step) error {
	inputs := 0
	if step.Action != "" {
		inputs++
	}
	if len(step.Keys) > 0 {
		inputs++
	}
	if len(step.Press) > 0 {
		inputs++
	}

	switch {
	case inputs > 1:
		return fmt.Errorf("steps[%d]: only one of action, keys or press may be set", index)
	case inputs == 0 && step.AdvanceMS == 0 && step.Expect == nil:
		return fmt.Errorf("steps[%d]: step does nothing", index)
	case step.AdvanceMS < 0:
		return fmt.Errorf("steps[%d]: advance_ms must be non-negative", index)
	}

	if step.Action != "" {
		a, err := ir.ParseAction(step.Action, step.Value)
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", index, err)
		}
		if a.Kind == ir.ActionInsert && step.Value == "" {
			return fmt.Errorf("steps[%d]: insert requires a value", index)
		}
		if a.Kind != ir.ActionInsert && step.Value != "" {
			return fmt.Errorf("steps[%d]: value is only valid for insert", index)
		}
	} else if step.Value != "" {
		return fmt.Errorf("steps[%d]: value requires action: insert", index)
	}

	layout := keypad.Default()
	for _, id := range step.Press {
		if _, ok := layout.Key(id); !ok {
			return fmt.Errorf("steps[%d]: unknown key %q", index, id)
		}
	}
	if step.Expect != nil && step.Expect.AngleMode != nil {
		if _, err := ir.ParseAngleMode(*step.Expect.AngleMode); err != nil {
			return fmt.Errorf("steps[%d].expect.angle_mode: %w", index, err)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
		if _, err := ir.ParseActionKind(a.Action); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
		for _, name := range a.Actions {
			if _, err := ir.ParseActionKind(name); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if _, err := ir.ParseActionKind(a.Action); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	case AssertHistory:
		if a.Entries == nil {
			return fmt.Errorf("assertions[%d]: entries is required for history (use [] for empty)", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
