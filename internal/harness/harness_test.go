package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lcdcalc/internal/ir"
	"github.com/roach88/lcdcalc/internal/testutil"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Steps: []Step{
			{Keys: []string{"6", "×", "7"}},
			{Action: "equals", Expect: &Expect{Result: strPtr("42")}},
		},
		Assertions: []Assertion{
			{Type: AssertTraceContains, Action: "equals"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass, result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, testutil.DefaultSessionID, result.SessionID)

	require.Len(t, result.Trace, 4)
	assert.Equal(t, "insert", result.Trace[0].Action)
	assert.Equal(t, "6", result.Trace[0].Value)
	assert.Equal(t, "equals", result.Trace[3].Action)
	assert.Equal(t, "42", result.Trace[3].Result)
	assert.Equal(t, ir.MustStateHash(result.State), result.Trace[3].StateHash)

	assert.Equal(t, "42", result.Ans)
	assert.Equal(t, "0", result.Memory)
	require.Len(t, result.History, 1)
	assert.Equal(t, []string{"6", "×", "7"}, result.History[0].Tokens)
}

func TestRun_SessionID(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "named",
		Description: "named session",
		SessionID:   "scenario-session",
		Steps:       []Step{{Keys: []string{"1"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "scenario-session", result.SessionID)
}

func TestRun_AngleMode(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "radians",
		Description: "radian trig",
		AngleMode:   "RAD",
		Steps: []Step{
			{Keys: []string{"cos(", "0", ")"}},
			{Action: "equals", Expect: &Expect{Result: strPtr("1"), AngleMode: strPtr("RAD")}},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, ir.AngleRadians, result.State.AngleMode)
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong expectations are reported per field",
		Steps: []Step{
			{Keys: []string{"2", "+", "2"}},
			{Action: "equals", Expect: &Expect{
				Result:     strPtr("5"),
				Cursor:     intPtr(0),
				Shift:      boolPtr(true),
				HistoryLen: intPtr(1),
			}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "step 1: result")
	assert.Contains(t, result.Errors[1], "step 1: cursor")
	assert.Contains(t, result.Errors[2], "step 1: shift")
}

func TestRun_PressUsesKeypad(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "keypad",
		Description: "keys resolve through the default layout",
		Steps: []Step{
			{Press: []string{"five", "fact", "equals"}, Expect: &Expect{
				Expression: strPtr("5!"),
				Result:     strPtr("120"),
			}},
			{Press: []string{"store"}, Expect: &Expect{Memory: strPtr("120"), Status: strPtr("Stored")}},
			{Press: []string{"on"}, Expect: &Expect{Expression: strPtr(""), Status: strPtr("All Clear")}},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, "clear", result.Trace[len(result.Trace)-1].Action)
}

func TestRun_AdvanceExpiresStatus(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "expiry",
		Description: "status expires after advance",
		Steps: []Step{
			{Action: "calc", Expect: &Expect{Status: strPtr("CALC stub")}},
			{AdvanceMS: 1199, Expect: &Expect{Status: strPtr("CALC stub")}},
			{AdvanceMS: 1, Expect: &Expect{Status: strPtr("")}},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestRun_AssertionFailuresReported(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "assertions",
		Description: "failing assertions mark the result failed",
		Steps:       []Step{{Keys: []string{"1"}}},
		Assertions: []Assertion{
			{Type: AssertTraceCount, Action: "equals", Count: 1},
			{Type: AssertTraceContains, Action: "insert", Value: "1"},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "trace_count")
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "memory_and_errors.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.State, second.State)
}

func TestRun_ExampleScenarios(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
