package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lcdcalc/internal/engine"
	"github.com/roach88/lcdcalc/internal/ir"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

// =============================================================================
// Load
// =============================================================================

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Full(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "full.toml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ir.AngleRadians, cfg.Angle())
	assert.Equal(t, 100, cfg.HistoryCapacity)
	assert.Equal(t, 900*time.Millisecond, cfg.StatusDuration())
	assert.Equal(t, "journal.db", cfg.Journal)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "keys.cue", cfg.Layout)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "partial.toml"))
	require.NoError(t, err)

	assert.Equal(t, "RAD", cfg.AngleMode)
	assert.Equal(t, engine.DefaultHistoryCapacity, cfg.HistoryCapacity)
	assert.Equal(t, engine.DefaultStatusDuration, cfg.StatusDuration())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Journal)
}

func TestLoad_Unreadable(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.False(t, IsParseError(err))
}

func TestParse_InvalidTOML(t *testing.T) {
	_, err := Parse("bad.toml", []byte("angle_mode = \n"))
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.toml", pe.Path)
	assert.Equal(t, 1, pe.Line)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse("extra.toml", []byte("angle_mode = \"DEG\"\ntheme = \"dark\"\n"))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, pe.Message, "theme")
}

func TestParse_WrongType(t *testing.T) {
	_, err := Parse("type.toml", []byte("history_capacity = \"many\"\n"))
	assert.True(t, IsParseError(err))
}

// =============================================================================
// ApplyEnv
// =============================================================================

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"LCDCALC_ANGLE_MODE":       "RAD",
		"LCDCALC_HISTORY_CAPACITY": "10",
		"LCDCALC_STATUS_MS":        "500",
		"LCDCALC_JOURNAL":          "j.db",
		"LCDCALC_LOG_LEVEL":        "warn",
		"LCDCALC_LAYOUT":           "k.cue",
	}))
	require.NoError(t, err)

	assert.Equal(t, Config{
		AngleMode:       "RAD",
		HistoryCapacity: 10,
		StatusMS:        500,
		Journal:         "j.db",
		LogLevel:        "warn",
		Layout:          "k.cue",
	}, cfg)
}

func TestConfig_ApplyEnv_Unset(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(nil)))
	assert.Equal(t, Default(), cfg)
}

func TestConfig_ApplyEnv_BadInteger(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{"LCDCALC_STATUS_MS": "soon"}))
	require.Error(t, err)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "status_ms", ce.Field)
}

func TestConfig_ApplyEnv_OsLookup(t *testing.T) {
	t.Setenv("LCDCALC_ANGLE_MODE", "rad")
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(os.LookupEnv))
	assert.Equal(t, ir.AngleRadians, cfg.Angle())
}

// =============================================================================
// Validate
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"defaults", func(*Config) {}, ""},
		{"lowercase angle", func(c *Config) { c.AngleMode = "rad" }, ""},
		{"bad angle", func(c *Config) { c.AngleMode = "GRAD" }, "angle_mode"},
		{"zero capacity", func(c *Config) { c.HistoryCapacity = 0 }, "history_capacity"},
		{"max capacity", func(c *Config) { c.HistoryCapacity = MaxHistoryCapacity }, ""},
		{"capacity too large", func(c *Config) { c.HistoryCapacity = MaxHistoryCapacity + 1 }, "history_capacity"},
		{"zero status", func(c *Config) { c.StatusMS = 0 }, "status_ms"},
		{"negative status", func(c *Config) { c.StatusMS = -5 }, "status_ms"},
		{"uppercase level", func(c *Config) { c.LogLevel = "ERROR" }, ""},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsConfigError(err))

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestConfig_EngineOptions(t *testing.T) {
	cfg := Default()
	cfg.AngleMode = "RAD"
	cfg.HistoryCapacity = 2

	e := engine.New(cfg.EngineOptions()...)
	defer e.Close()

	assert.Equal(t, ir.AngleRadians, e.State().AngleMode)
	for _, d := range []string{"1", "2", "3"} {
		e.InsertToken(d)
		e.Evaluate()
	}
	assert.Len(t, e.History(), 2)
}
