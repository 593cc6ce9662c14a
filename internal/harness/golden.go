package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lcdcalc/internal/ir"
)

// TraceSnapshot captures the journal and final state of a scenario run.
// It is serialized with canonical JSON so golden files are byte-stable.
// State hashes are left out; they are derived from fields already present.
type TraceSnapshot struct {
	ScenarioName string
	SessionID    string
	Result       *Result
}

// toCanonicalMap converts the snapshot to the map form MarshalCanonical
// accepts.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Result.Trace))
	for i, event := range s.Result.Trace {
		m := map[string]any{
			"seq":        event.Seq,
			"action":     event.Action,
			"expression": event.Expression,
			"result":     event.Result,
		}
		if event.Value != "" {
			m["value"] = event.Value
		}
		if event.Status != "" {
			m["status"] = event.Status
		}
		trace[i] = m
	}

	history := make([]any, len(s.Result.History))
	for i, entry := range s.Result.History {
		history[i] = map[string]any{
			"expression": strings.Join(entry.Tokens, ""),
			"result":     entry.Result,
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"session_id":    s.SessionID,
		"trace":         trace,
		"history":       history,
		"final":         finalStateMap(s.Result),
	}
}

// MarshalSnapshot renders a result as canonical JSON.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: name,
		SessionID:    result.SessionID,
		Result:       result,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the snapshot against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
