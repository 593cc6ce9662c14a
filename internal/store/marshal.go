package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/lcdcalc/internal/ir"
)

// marshalTokens converts a raw token buffer to canonical JSON TEXT.
func marshalTokens(tokens []string) (string, error) {
	if tokens == nil {
		tokens = []string{}
	}
	data, err := ir.MarshalCanonical(tokens)
	if err != nil {
		return "", fmt.Errorf("marshal tokens: %w", err)
	}
	return string(data), nil
}

// unmarshalTokens parses a JSON array of strings. Empty input yields an
// empty, non-nil slice.
func unmarshalTokens(data string) ([]string, error) {
	tokens := []string{}
	if data == "" {
		return tokens, nil
	}
	if err := json.Unmarshal([]byte(data), &tokens); err != nil {
		return nil, fmt.Errorf("unmarshal tokens: %w", err)
	}
	return tokens, nil
}
