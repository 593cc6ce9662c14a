package keypad

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/lcdcalc/internal/ir"
)

//go:embed schema.cue
var schemaCUE string

//go:embed layout.cue
var layoutCUE string

// Key is one keypad button.
type Key struct {
	ID        string `json:"id"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
	Color     string `json:"color,omitempty"`
	Width     int    `json:"width"`
	Name      string `json:"action"`
	Value     string `json:"value,omitempty"`
}

// Action returns the engine action the key triggers.
func (k Key) Action() (ir.Action, error) {
	a, err := ir.ParseAction(k.Name, k.Value)
	if err != nil {
		return ir.Action{}, fmt.Errorf("key %s: %w", k.ID, err)
	}
	return a, nil
}

// Layout is a validated keypad: rows of keys plus the keyboard map.
type Layout struct {
	Rows     [][]Key           `json:"rows"`
	Keyboard map[string]string `json:"keyboard"`

	byID map[string]Key
}

// Key looks a key up by id.
func (l *Layout) Key(id string) (Key, bool) {
	k, ok := l.byID[id]
	return k, ok
}

// ForKeyboard resolves a keyboard key name ("7", "Enter", "ArrowUp") to the
// keypad key it presses.
func (l *Layout) ForKeyboard(name string) (Key, bool) {
	id, ok := l.Keyboard[name]
	if !ok {
		return Key{}, false
	}
	return l.Key(id)
}

// Keys returns every key in row order.
func (l *Layout) Keys() []Key {
	var keys []Key
	for _, row := range l.Rows {
		keys = append(keys, row...)
	}
	return keys
}

var (
	defaultOnce   sync.Once
	defaultLayout *Layout
)

// Default returns the built-in layout. It panics if the embedded layout is
// invalid, which the package tests rule out.
func Default() *Layout {
	defaultOnce.Do(func() {
		l, err := Load([]byte(layoutCUE), "layout.cue")
		if err != nil {
			panic(fmt.Sprintf("keypad: embedded layout: %v", err))
		}
		defaultLayout = l
	})
	return defaultLayout
}

// LoadFile reads and validates a CUE layout file.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return Load(data, path)
}

// Load compiles a CUE layout document. The document must define a top-level
// "layout" field matching the schema; errors carry CUE source positions.
func Load(data []byte, filename string) (*Layout, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	doc := ctx.CompileBytes(data, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	raw := doc.LookupPath(cue.ParsePath("layout"))
	if !raw.Exists() {
		return nil, &LayoutError{
			Field:   "layout",
			Message: "layout is required",
			Pos:     doc.Pos(),
		}
	}

	v := schema.LookupPath(cue.ParsePath("#Layout")).Unify(raw)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var l Layout
	if err := v.Decode(&l); err != nil {
		return nil, formatCUEError(err)
	}
	if err := l.index(raw); err != nil {
		return nil, err
	}
	return &l, nil
}

// index builds the id lookup and checks what the schema cannot express:
// unique ids and keyboard entries that name an existing key.
func (l *Layout) index(v cue.Value) error {
	l.byID = make(map[string]Key)
	for r, row := range l.Rows {
		for c, k := range row {
			if _, dup := l.byID[k.ID]; dup {
				return &LayoutError{
					Field:   fmt.Sprintf("rows[%d][%d].id", r, c),
					Message: fmt.Sprintf("duplicate key id %q", k.ID),
					Pos:     v.LookupPath(cue.MakePath(cue.Str("rows"), cue.Index(r), cue.Index(c))).Pos(),
				}
			}
			l.byID[k.ID] = k
		}
	}
	if l.Keyboard == nil {
		l.Keyboard = map[string]string{}
	}
	for name, id := range l.Keyboard {
		if _, ok := l.byID[id]; !ok {
			return &LayoutError{
				Field:   "keyboard." + name,
				Message: fmt.Sprintf("unknown key id %q", id),
				Pos:     v.LookupPath(cue.MakePath(cue.Str("keyboard"), cue.Str(name))).Pos(),
			}
		}
	}
	return nil
}
