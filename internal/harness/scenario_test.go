package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "test.yaml", `
name: test_scenario
description: "Test scenario for validation"
angle_mode: RAD
steps:
  - keys: ["1", "+", "1"]
  - action: equals
    expect:
      result: "2"
      history_len: 1
  - press: [ac]
  - advance_ms: 1200
    expect: { status: "" }
assertions:
  - type: trace_count
    action: equals
    count: 1
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "RAD", scenario.AngleMode)
	require.Len(t, scenario.Steps, 4)
	assert.Equal(t, []string{"1", "+", "1"}, scenario.Steps[0].Keys)
	assert.Equal(t, "equals", scenario.Steps[1].Action)
	require.NotNil(t, scenario.Steps[1].Expect)
	assert.Equal(t, "2", *scenario.Steps[1].Expect.Result)
	assert.Equal(t, 1, *scenario.Steps[1].Expect.HistoryLen)
	assert.Nil(t, scenario.Steps[1].Expect.Status)
	assert.Equal(t, []string{"ac"}, scenario.Steps[2].Press)
	assert.Equal(t, 1200, scenario.Steps[3].AdvanceMS)
	assert.Len(t, scenario.Assertions, 1)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_MalformedYAML(t *testing.T) {
	_, err := ParseScenario([]byte("name: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_UnknownFieldsRejected(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: "misspelled field"
steps:
  - action: equals
assertion:
  - type: trace_count
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertion")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps: [{action: equals}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps: [{action: equals}]\n",
			wantErr: "description is required",
		},
		{
			name:    "missing steps",
			content: "name: n\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "bad angle mode",
			content: "name: n\ndescription: d\nangle_mode: GRAD\nsteps: [{action: equals}]\n",
			wantErr: "angle_mode",
		},
		{
			name:    "two inputs",
			content: "name: n\ndescription: d\nsteps: [{action: equals, keys: [\"1\"]}]\n",
			wantErr: "only one of action, keys or press",
		},
		{
			name:    "empty step",
			content: "name: n\ndescription: d\nsteps: [{}]\n",
			wantErr: "step does nothing",
		},
		{
			name:    "negative advance",
			content: "name: n\ndescription: d\nsteps: [{advance_ms: -1}]\n",
			wantErr: "advance_ms must be non-negative",
		},
		{
			name:    "unknown action",
			content: "name: n\ndescription: d\nsteps: [{action: explode}]\n",
			wantErr: "unknown action",
		},
		{
			name:    "insert without value",
			content: "name: n\ndescription: d\nsteps: [{action: insert}]\n",
			wantErr: "insert requires a value",
		},
		{
			name:    "value on non-insert",
			content: "name: n\ndescription: d\nsteps: [{action: equals, value: \"1\"}]\n",
			wantErr: "value is only valid for insert",
		},
		{
			name:    "value without action",
			content: "name: n\ndescription: d\nsteps: [{value: \"1\", advance_ms: 5}]\n",
			wantErr: "value requires action",
		},
		{
			name:    "unknown key",
			content: "name: n\ndescription: d\nsteps: [{press: [teleport]}]\n",
			wantErr: "unknown key",
		},
		{
			name:    "bad expected angle",
			content: "name: n\ndescription: d\nsteps: [{expect: {angle_mode: GON}}]\n",
			wantErr: "expect.angle_mode",
		},
		{
			name:    "assertion without type",
			content: "name: n\ndescription: d\nsteps: [{action: equals}]\nassertions: [{action: equals}]\n",
			wantErr: "type is required",
		},
		{
			name:    "unknown assertion type",
			content: "name: n\ndescription: d\nsteps: [{action: equals}]\nassertions: [{type: vibes}]\n",
			wantErr: "unknown assertion type",
		},
		{
			name:    "trace_contains without action",
			content: "name: n\ndescription: d\nsteps: [{action: equals}]\nassertions: [{type: trace_contains}]\n",
			wantErr: "action is required for trace_contains",
		},
		{
			name:    "trace_order unknown action",
			content: "name: n\ndescription: d\nsteps: [{action: equals}]\nassertions: [{type: trace_order, actions: [equals, fly]}]\n",
			wantErr: "unknown action",
		},
		{
			name:    "trace_count negative",
			content: "name: n\ndescription: d\nsteps: [{action: equals}]\nassertions: [{type: trace_count, action: equals, count: -1}]\n",
			wantErr: "count must be non-negative",
		},
		{
			name:    "final_state without expect",
			content: "name: n\ndescription: d\nsteps: [{action: equals}]\nassertions: [{type: final_state}]\n",
			wantErr: "expect is required for final_state",
		},
		{
			name:    "history without entries",
			content: "name: n\ndescription: d\nsteps: [{action: equals}]\nassertions: [{type: history}]\n",
			wantErr: "entries is required for history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_TraceCountZeroAllowed(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: zero
description: "no equals pressed"
steps:
  - keys: ["1"]
assertions:
  - type: trace_count
    action: equals
    count: 0
  - type: history
    entries: []
`))
	require.NoError(t, err)
}

func TestLoadScenarios_Directory(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"ans_chain", "history_replay", "memory_and_errors", "status_expiry"}, names)
}

func TestLoadScenarios_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	content := "name: same\ndescription: d\nsteps: [{action: equals}]\n"
	writeScenario(t, dir, "a.yaml", content)
	writeScenario(t, dir, "b.yaml", content)

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used by a.yaml")
}

func TestLoadScenarios_EmptyDirectory(t *testing.T) {
	scenarios, err := LoadScenarios(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}

func TestAssertionConstants(t *testing.T) {
	assert.Equal(t, "trace_contains", AssertTraceContains)
	assert.Equal(t, "trace_order", AssertTraceOrder)
	assert.Equal(t, "trace_count", AssertTraceCount)
	assert.Equal(t, "final_state", AssertFinalState)
	assert.Equal(t, "history", AssertHistory)
}
