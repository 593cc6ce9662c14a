package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lcdcalc/internal/keypad"
)

// KeysOptions holds flags for the keys command.
type KeysOptions struct {
	*RootOptions
	Layout string // empty means the configured layout, then the built-in one
}

// KeyBinding is one keyboard entry resolved to its key.
type KeyBinding struct {
	Keyboard string `json:"keyboard"`
	KeyID    string `json:"key_id"`
	Action   string `json:"action"`
	Value    string `json:"value,omitempty"`
}

// KeysResult holds the validated layout for JSON output.
type KeysResult struct {
	Source   string         `json:"source"`
	Rows     [][]keypad.Key `json:"rows"`
	Keyboard []KeyBinding   `json:"keyboard"`
	Keys     int            `json:"keys"`
}

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeysOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Validate and print a keypad layout",
		Long: `Load a CUE keypad layout, validate it and print the key grid and the
keyboard map. Without --layout the configured or built-in layout is shown.

Exit codes:
  0 - Layout is valid
  1 - Layout failed validation
  2 - Command error (file not found)

Examples:
  lcdcalc keys
  lcdcalc keys --layout ./my-layout.cue
  lcdcalc keys --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Layout, "layout", "", "path to a CUE keypad layout")

	return cmd
}

func runKeys(opts *KeysOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	source := opts.Layout
	if source == "" {
		source = opts.Config.Layout
	}
	if source == "" {
		source = "built-in"
	}
	formatter.VerboseLog("Loading layout: %s", source)

	layout, err := loadLayout(opts.Layout, opts.Config.Layout)
	if err != nil {
		var layoutErr *keypad.LayoutError
		if errors.As(err, &layoutErr) {
			if ferr := formatter.Error("E_LAYOUT", layoutErr.Error(), map[string]string{"field": layoutErr.Field}); ferr != nil {
				return ferr
			}
			return reportedExitError(ExitFailure, "invalid layout", err)
		}
		return WrapExitError(ExitCommandError, "failed to load layout", err)
	}

	result := KeysResult{
		Source:   source,
		Rows:     layout.Rows,
		Keyboard: keyBindings(layout),
		Keys:     len(layout.Keys()),
	}

	if opts.Format == "json" {
		return writeIndentedJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result})
	}
	outputKeysText(cmd.OutOrStdout(), result)
	return nil
}

// keyBindings resolves the keyboard map in sorted keyboard-name order.
func keyBindings(layout *keypad.Layout) []KeyBinding {
	names := make([]string, 0, len(layout.Keyboard))
	for name := range layout.Keyboard {
		names = append(names, name)
	}
	sort.Strings(names)

	bindings := make([]KeyBinding, 0, len(names))
	for _, name := range names {
		k, ok := layout.ForKeyboard(name)
		if !ok {
			continue
		}
		bindings = append(bindings, KeyBinding{
			Keyboard: name,
			KeyID:    k.ID,
			Action:   k.Name,
			Value:    k.Value,
		})
	}
	return bindings
}

func outputKeysText(w io.Writer, result KeysResult) {
	fmt.Fprintf(w, "✓ Layout %s: %d keys in %d rows\n", result.Source, result.Keys, len(result.Rows))
	fmt.Fprintln(w)

	for _, row := range result.Rows {
		cells := make([]string, 0, len(row))
		for _, k := range row {
			label := k.Primary
			if k.Secondary != "" {
				label += "/" + k.Secondary
			}
			cells = append(cells, fmt.Sprintf("%-*s", 7*k.Width, label))
		}
		fmt.Fprintln(w, "  "+strings.TrimRight(strings.Join(cells, " "), " "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Keyboard ===")
	for _, b := range result.Keyboard {
		target := b.Action
		if b.Value != "" {
			target = fmt.Sprintf("%s %q", b.Action, b.Value)
		}
		fmt.Fprintf(w, "  %-12s %-10s %s\n", b.Keyboard, b.KeyID, target)
	}
}
