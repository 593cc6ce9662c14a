package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/roach88/lcdcalc/internal/engine"
	"github.com/roach88/lcdcalc/internal/ir"
)

// Limits enforced by Validate.
const (
	MaxHistoryCapacity = 1000
	DefaultLogLevel    = "info"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LCDCALC_"

// Config is the decoded configuration file.
type Config struct {
	AngleMode       string `toml:"angle_mode"`
	HistoryCapacity int    `toml:"history_capacity"`
	StatusMS        int    `toml:"status_ms"`
	Journal         string `toml:"journal"`
	LogLevel        string `toml:"log_level"`
	Layout          string `toml:"layout"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		AngleMode:       ir.AngleDegrees.String(),
		HistoryCapacity: engine.DefaultHistoryCapacity,
		StatusMS:        int(engine.DefaultStatusDuration / time.Millisecond),
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads path on top of Default. An empty path or a missing file yields
// the defaults. The result is not validated; callers apply overrides first.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML data on top of Default. Unknown keys are rejected.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		var sm *toml.StrictMissingError
		if errors.As(err, &sm) && len(sm.Errors) > 0 {
			pe.Line, pe.Column = sm.Errors[0].Position()
			pe.Message = "unknown key " + strings.Join(sm.Errors[0].Key(), ".")
		}
		return cfg, pe
	}
	return cfg, nil
}

// ApplyEnv overrides settings from LCDCALC_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "ANGLE_MODE"); ok {
		c.AngleMode = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "JOURNAL"); ok {
		c.Journal = v
	}
	if v, ok := lookup(EnvPrefix + "LAYOUT"); ok {
		c.Layout = v
	}
	if v, ok := lookup(EnvPrefix + "HISTORY_CAPACITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "history_capacity", Message: fmt.Sprintf("%s: not an integer: %q", EnvPrefix+"HISTORY_CAPACITY", v)}
		}
		c.HistoryCapacity = n
	}
	if v, ok := lookup(EnvPrefix + "STATUS_MS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "status_ms", Message: fmt.Sprintf("%s: not an integer: %q", EnvPrefix+"STATUS_MS", v)}
		}
		c.StatusMS = n
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if _, err := ir.ParseAngleMode(c.AngleMode); err != nil {
		return &ConfigError{Field: "angle_mode", Message: fmt.Sprintf("must be DEG or RAD, got %q", c.AngleMode)}
	}
	if c.HistoryCapacity < 1 || c.HistoryCapacity > MaxHistoryCapacity {
		return &ConfigError{Field: "history_capacity", Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxHistoryCapacity, c.HistoryCapacity)}
	}
	if c.StatusMS <= 0 {
		return &ConfigError{Field: "status_ms", Message: fmt.Sprintf("must be positive, got %d", c.StatusMS)}
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return &ConfigError{Field: "log_level", Message: fmt.Sprintf("must be debug, info, warn or error, got %q", c.LogLevel)}
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Angle returns the configured angle mode, DEG when invalid.
func (c Config) Angle() ir.AngleMode {
	m, _ := ir.ParseAngleMode(c.AngleMode)
	return m
}

// StatusDuration returns status_ms as a duration.
func (c Config) StatusDuration() time.Duration {
	return time.Duration(c.StatusMS) * time.Millisecond
}

// SlogLevel returns the configured log level, Info when invalid.
func (c Config) SlogLevel() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// EngineOptions translates the settings into engine options.
func (c Config) EngineOptions() []engine.EngineOption {
	return []engine.EngineOption{
		engine.WithAngleMode(c.Angle()),
		engine.WithHistoryCapacity(c.HistoryCapacity),
		engine.WithStatusDuration(c.StatusDuration()),
	}
}
