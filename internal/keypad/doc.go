// Package keypad maps physical keys and keyboard names onto engine actions.
//
// The built-in layout is a CUE document (layout.cue) checked against
// schema.cue at load time; a user layout file is checked against the same
// schema. The package is a static lookup only: it never touches an Engine.
package keypad
