package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/roach88/lcdcalc/internal/engine"
	"github.com/roach88/lcdcalc/internal/ir"
	"github.com/roach88/lcdcalc/internal/keypad"
	"github.com/roach88/lcdcalc/internal/store"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Database string // empty means the configured journal, if any
	Layout   string // empty means the configured layout, then the built-in one
}

const replPrompt = "> "

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run an interactive calculator session",
		Long: `Read lines from stdin and drive one calculator engine.

A plain line is typed into a cleared buffer and evaluated. Keyboard
characters are mapped through the keypad layout, so * and / type × and ÷.
A line starting with ':' dispatches one action by name:

  :left  :right  :up  :down  :delete  :clear  :equals  :store
  :square  :cube  :factorial  :negate  :toggleAngle  :shift  :alpha
  :insert <value>
  :quit

With --db every action is journaled to SQLite for replay and trace.

Examples:
  lcdcalc repl
  lcdcalc repl --db ./lcdcalc.db
  echo "2*(3+4)" | lcdcalc repl --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal actions to this SQLite database")
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "path to a CUE keypad layout")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	layout, err := loadLayout(opts.Layout, opts.Config.Layout)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load layout", err)
	}

	engineOpts := append(opts.Config.EngineOptions(), engine.WithLogger(slog.Default()))
	eng := engine.New(engineOpts...)
	defer eng.Close()

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = opts.Config.Journal
	}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		journal, err := store.NewJournal(ctx, st, eng.Session())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to start journal", err)
		}
		eng.SetRecorder(journal)
		slog.Debug("journaling session", "session", eng.SessionID(), "db", dbPath)
	}

	r := &repl{
		eng:    eng,
		layout: layout,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		json:   opts.Format == "json",
		prompt: isTerminal(cmd.InOrStdin()),
	}
	return r.run(ctx, cmd.InOrStdin())
}

// loadLayout prefers the flag, then the configured path, then the built-in
// layout.
func loadLayout(flagPath, configPath string) (*keypad.Layout, error) {
	path := flagPath
	if path == "" {
		path = configPath
	}
	if path == "" {
		return keypad.Default(), nil
	}
	return keypad.LoadFile(path)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type repl struct {
	eng    *engine.Engine
	layout *keypad.Layout
	out    io.Writer
	errOut io.Writer
	json   bool
	prompt bool
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if r.prompt {
			fmt.Fprint(r.out, replPrompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			quit, err := r.command(ctx, line[1:])
			if err != nil {
				fmt.Fprintf(r.errOut, "✗ %v\n", err)
				continue
			}
			if quit {
				return nil
			}
		} else if err := r.expression(ctx, line); err != nil {
			return WrapExitError(ExitFailure, "dispatch failed", err)
		}

		if err := r.print(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return nil
}

// command handles ":name [value]". It reports whether the session should end.
func (r *repl) command(ctx context.Context, text string) (bool, error) {
	name, value, _ := strings.Cut(strings.TrimSpace(text), " ")
	switch name {
	case "q", "quit", "exit":
		return true, nil
	}
	a, err := ir.ParseAction(name, strings.TrimSpace(value))
	if err != nil {
		return false, err
	}
	return false, r.eng.Dispatch(ctx, a)
}

// expression types line into a fresh buffer and presses "=".
func (r *repl) expression(ctx context.Context, line string) error {
	if r.eng.State().Expression != "" {
		if err := r.eng.Dispatch(ctx, ir.Do(ir.ActionClear)); err != nil {
			return err
		}
	}
	for _, tok := range splitLine(line, r.layout) {
		if err := r.eng.Dispatch(ctx, ir.Insert(tok)); err != nil {
			return err
		}
	}
	return r.eng.Dispatch(ctx, ir.Do(ir.ActionEquals))
}

func (r *repl) print() error {
	state := r.eng.State()
	if r.json {
		return json.NewEncoder(r.out).Encode(CLIResponse{Status: "ok", Data: state})
	}
	fmt.Fprintln(r.out, formatState(state))
	return nil
}

// formatState renders the display: expression with a cursor mark, the result
// line and the indicators.
func formatState(s ir.State) string {
	var b strings.Builder
	b.WriteString(strings.Join(s.Tokens[:s.CursorIndex], ""))
	b.WriteString("│")
	b.WriteString(strings.Join(s.Tokens[s.CursorIndex:], ""))
	if s.Result != "" {
		b.WriteString("  = ")
		b.WriteString(s.Result)
	}
	b.WriteString("  [")
	b.WriteString(s.AngleMode.String())
	if s.Shift {
		b.WriteString(" S")
	}
	if s.Alpha {
		b.WriteString(" A")
	}
	b.WriteString("]")
	if s.Status != "" {
		b.WriteString(" ")
		b.WriteString(s.Status)
	}
	return b.String()
}

// splitLine breaks typed text into keypad tokens. Letter runs stay whole and
// absorb a following "(" when they name a function. Other characters go
// through the layout's keyboard map so "*" types "×".
func splitLine(line string, layout *keypad.Layout) []string {
	runes := []rune(line)
	var tokens []string
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsLetter(c) && c != 'π':
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) && runes[j] != 'π' {
				j++
			}
			word := string(runes[i:j])
			i = j
			if i < len(runes) && runes[i] == '(' && ir.IsFunction(strings.ToLower(word)) {
				tokens = append(tokens, word+"(")
				i++
				continue
			}
			tokens = append(tokens, mapKeyboard(word, layout))
		default:
			tokens = append(tokens, mapKeyboard(string(c), layout))
			i++
		}
	}
	return tokens
}

func mapKeyboard(s string, layout *keypad.Layout) string {
	k, ok := layout.ForKeyboard(s)
	if !ok {
		return s
	}
	a, err := k.Action()
	if err != nil || a.Kind != ir.ActionInsert {
		return s
	}
	return a.Value
}
