package ir

import (
	"fmt"
	"sort"
)

// ActionKind is the closed vocabulary of user actions the engine accepts.
type ActionKind int

const (
	ActionInsert ActionKind = iota + 1
	ActionSquare
	ActionCube
	ActionFactorial
	ActionToggleAngle
	ActionShift
	ActionAlpha
	ActionDelete
	ActionClear
	ActionEquals
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionNegate
	ActionStore
	// ActionCalc, ActionSolve and ActionMode only show a placeholder status.
	ActionCalc
	ActionSolve
	ActionMode
)

var actionNames = map[ActionKind]string{
	ActionInsert:      "insert",
	ActionSquare:      "square",
	ActionCube:        "cube",
	ActionFactorial:   "factorial",
	ActionToggleAngle: "toggleAngle",
	ActionShift:       "shift",
	ActionAlpha:       "alpha",
	ActionDelete:      "delete",
	ActionClear:       "clear",
	ActionEquals:      "equals",
	ActionLeft:        "left",
	ActionRight:       "right",
	ActionUp:          "up",
	ActionDown:        "down",
	ActionNegate:      "negate",
	ActionStore:       "store",
	ActionCalc:        "calc",
	ActionSolve:       "solve",
	ActionMode:        "mode",
}

// actionAliases maps alternate names onto kinds. "ac" is the ON/AC key.
var actionAliases = map[string]ActionKind{
	"ac": ActionClear,
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Valid reports whether k is a member of the closed vocabulary.
func (k ActionKind) Valid() bool {
	_, ok := actionNames[k]
	return ok
}

// ParseActionKind resolves an action name (or alias) to its kind.
func ParseActionKind(name string) (ActionKind, error) {
	for kind, n := range actionNames {
		if n == name {
			return kind, nil
		}
	}
	if kind, ok := actionAliases[name]; ok {
		return kind, nil
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// ActionKindNames returns every canonical action name in sorted order.
func ActionKindNames() []string {
	names := make([]string, 0, len(actionNames))
	for _, n := range actionNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MarshalText implements encoding.TextMarshaler.
func (k ActionKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid action kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ActionKind) UnmarshalText(text []byte) error {
	kind, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Action is a single user action. Value is only used by ActionInsert.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Value string     `json:"value,omitempty"`
}

// Insert creates an ActionInsert for a raw token.
func Insert(value string) Action {
	return Action{Kind: ActionInsert, Value: value}
}

// Do creates a parameterless action.
func Do(kind ActionKind) Action {
	return Action{Kind: kind}
}

// ParseAction builds an Action from a name and optional value.
func ParseAction(name, value string) (Action, error) {
	kind, err := ParseActionKind(name)
	if err != nil {
		return Action{}, err
	}
	if kind != ActionInsert {
		value = ""
	}
	return Action{Kind: kind, Value: value}, nil
}

func (a Action) String() string {
	if a.Kind == ActionInsert {
		return fmt.Sprintf("insert(%q)", a.Value)
	}
	return a.Kind.String()
}
