package keypad

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lcdcalc/internal/ir"
)

func TestDefault_Shape(t *testing.T) {
	l := Default()

	require.Len(t, l.Rows, 9)
	for i, row := range l.Rows {
		assert.Len(t, row, 6, "row %d", i)
	}
	assert.Len(t, l.Keys(), 54)
	assert.Len(t, l.Keyboard, 32)
}

func TestDefault_EveryKeyHasAction(t *testing.T) {
	for _, k := range Default().Keys() {
		a, err := k.Action()
		require.NoError(t, err, k.ID)
		assert.True(t, a.Kind.Valid(), k.ID)
		if a.Kind == ir.ActionInsert {
			assert.NotEmpty(t, a.Value, k.ID)
		}
	}
}

func TestDefault_KeyLookup(t *testing.T) {
	l := Default()

	tests := []struct {
		id     string
		action ir.Action
	}{
		{"seven", ir.Insert("7")},
		{"sin", ir.Insert("sin(")},
		{"exp", ir.Insert("E")},
		{"subtract", ir.Insert("−")},
		{"on", ir.Do(ir.ActionClear)},
		{"ac", ir.Do(ir.ActionClear)},
		{"drg", ir.Do(ir.ActionToggleAngle)},
		{"neg", ir.Do(ir.ActionNegate)},
		{"store", ir.Do(ir.ActionStore)},
		{"up", ir.Do(ir.ActionUp)},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			k, ok := l.Key(tt.id)
			require.True(t, ok)
			a, err := k.Action()
			require.NoError(t, err)
			assert.Equal(t, tt.action, a)
		})
	}

	_, ok := l.Key("missing")
	assert.False(t, ok)
}

func TestDefault_Attributes(t *testing.T) {
	l := Default()

	mode, ok := l.Key("mode")
	require.True(t, ok)
	assert.Equal(t, 2, mode.Width)
	assert.Equal(t, "SETUP", mode.Secondary)

	shift, _ := l.Key("shift")
	assert.Equal(t, "orange", shift.Color)
	assert.Equal(t, 1, shift.Width, "width defaults to 1")
}

func TestDefault_ForKeyboard(t *testing.T) {
	l := Default()

	tests := map[string]string{
		"0":         "zero",
		"x":         "multiply",
		"X":         "multiply",
		"*":         "multiply",
		"[":         "lparen",
		"Return":    "equals",
		"Backspace": "del",
		"Escape":    "ac",
		"ArrowDown": "down",
		"^":         "powerKey",
	}
	for name, id := range tests {
		k, ok := l.ForKeyboard(name)
		require.True(t, ok, name)
		assert.Equal(t, id, k.ID, name)
	}

	_, ok := l.ForKeyboard("F1")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	l, err := LoadFile(filepath.Join("testdata", "minimal.cue"))
	require.NoError(t, err)

	require.Len(t, l.Rows, 1)
	k, ok := l.ForKeyboard("Enter")
	require.True(t, ok)
	assert.Equal(t, "equals", k.ID)
	assert.Equal(t, 2, k.Width)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.cue"))
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{
			name:  "syntax error",
			src:   `layout: {rows: [[}`,
			field: "cue",
		},
		{
			name:  "missing layout",
			src:   `keys: {}`,
			field: "layout",
		},
		{
			name:  "unknown action",
			src:   `layout: {rows: [[{id: "a", primary: "A", action: "explode"}]], keyboard: {}}`,
			field: "cue",
		},
		{
			name:  "insert without value",
			src:   `layout: {rows: [[{id: "a", primary: "A", action: "insert"}]], keyboard: {}}`,
			field: "cue",
		},
		{
			name:  "unknown field",
			src:   `layout: {rows: [[{id: "a", primary: "A", action: "equals", glow: true}]], keyboard: {}}`,
			field: "cue",
		},
		{
			name:  "bad color",
			src:   `layout: {rows: [[{id: "a", primary: "A", action: "equals", color: "blue"}]], keyboard: {}}`,
			field: "cue",
		},
		{
			name: "duplicate id",
			src: `layout: {rows: [[
				{id: "a", primary: "A", action: "equals"},
				{id: "a", primary: "B", action: "clear"},
			]], keyboard: {}}`,
			field: "rows[0][1].id",
		},
		{
			name:  "keyboard names unknown key",
			src:   `layout: {rows: [[{id: "a", primary: "A", action: "equals"}]], keyboard: {"Enter": "b"}}`,
			field: "keyboard.Enter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.src), "test.cue")
			require.Error(t, err)

			var le *LayoutError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.field, le.Field)
		})
	}
}

func TestLayoutError_Format(t *testing.T) {
	err := &LayoutError{Field: "layout", Message: "layout is required"}
	assert.Equal(t, "layout: layout is required", err.Error())
}
