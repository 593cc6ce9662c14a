package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows a future algorithm change.
const (
	DomainAction = "lcdcalc/action/v1"
	DomainState  = "lcdcalc/state/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ActionID computes the content-addressed id of a journaled action.
// The same session, seq and action always produce the same id.
func ActionID(sessionID string, seq int64, action Action) (string, error) {
	obj := map[string]any{
		"session_id": sessionID,
		"seq":        seq,
		"kind":       action.Kind.String(),
		"value":      action.Value,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ActionID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainAction, canonical), nil
}

// StateHash digests a snapshot without its status message.
func StateHash(s State) (string, error) {
	canonical, err := MarshalCanonical(s.Canonical(false))
	if err != nil {
		return "", fmt.Errorf("StateHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainState, canonical), nil
}

// MustActionID is like ActionID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustActionID(sessionID string, seq int64, action Action) string {
	id, err := ActionID(sessionID, seq, action)
	if err != nil {
		panic(err)
	}
	return id
}

// MustStateHash is like StateHash but panics on error.
func MustStateHash(s State) string {
	h, err := StateHash(s)
	if err != nil {
		panic(err)
	}
	return h
}
