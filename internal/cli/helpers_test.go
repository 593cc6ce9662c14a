package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lcdcalc/internal/engine"
	"github.com/roach88/lcdcalc/internal/ir"
	"github.com/roach88/lcdcalc/internal/store"
)

// journalSession drives a fresh engine with the given actions and journals
// every one of them into the database at dbPath.
func journalSession(t *testing.T, dbPath, sessionID string, actions ...ir.Action) {
	t.Helper()

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	eng := engine.New(
		engine.WithSessionGenerator(engine.NewFixedGenerator(sessionID)),
		engine.WithScheduler(heldScheduler{}),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	defer eng.Close()

	ctx := context.Background()
	journal, err := store.NewJournal(ctx, st, eng.Session())
	require.NoError(t, err)
	eng.SetRecorder(journal)

	for _, a := range actions {
		require.NoError(t, eng.Dispatch(ctx, a))
	}
}

// typed returns insert actions for each token followed by "=".
func typed(tokens ...string) []ir.Action {
	actions := make([]ir.Action, 0, len(tokens)+1)
	for _, tok := range tokens {
		actions = append(actions, ir.Insert(tok))
	}
	return append(actions, ir.Do(ir.ActionEquals))
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "lcdcalc.db")
}

// execute runs cmd with args and returns stdout and the error.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
