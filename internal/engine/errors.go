package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/lcdcalc/internal/ir"
)

// ErrUnknownAction is returned by Dispatch for an action kind outside the
// closed vocabulary.
var ErrUnknownAction = errors.New("unknown action")

func unknownAction(a ir.Action) error {
	return fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
}

// IsUnknownAction returns true if err is, or wraps, ErrUnknownAction.
func IsUnknownAction(err error) bool {
	return errors.Is(err, ErrUnknownAction)
}
