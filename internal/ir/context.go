package ir

import (
	"fmt"
	"strings"
)

// AngleMode governs the conversion applied around trigonometric functions.
type AngleMode int

const (
	// AngleDegrees converts degrees to radians before sin/cos/tan and back after
	// asin/acos/atan.
	AngleDegrees AngleMode = iota
	// AngleRadians passes values through unchanged.
	AngleRadians
)

func (m AngleMode) String() string {
	if m == AngleRadians {
		return "RAD"
	}
	return "DEG"
}

// Toggle returns the other mode.
func (m AngleMode) Toggle() AngleMode {
	if m == AngleRadians {
		return AngleDegrees
	}
	return AngleRadians
}

// ParseAngleMode accepts "DEG" or "RAD" in any case.
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEG":
		return AngleDegrees, nil
	case "RAD":
		return AngleRadians, nil
	default:
		return AngleDegrees, fmt.Errorf("invalid angle mode %q: must be DEG or RAD", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m AngleMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *AngleMode) UnmarshalText(text []byte) error {
	mode, err := ParseAngleMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// EvalContext is the read-only snapshot passed into an evaluation.
// The constants Ans and M resolve against it.
type EvalContext struct {
	Ans       float64
	Memory    float64
	AngleMode AngleMode
}
