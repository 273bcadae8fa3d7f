package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/codec"
	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/testutil"
)

func TestSessionsCommands_RoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "sessions", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Session store is empty")

	fixture := fixtureSession("cli-roundtrip")
	path := writeSessionFixture(t, env, fixture)

	out, _, err = runCLI(t, env, "sessions", "import", path)
	require.NoError(t, err)
	require.Contains(t, out, "Imported session cli-roundtrip (2 gestures, 1 images)")

	out, _, err = runCLI(t, env, "sessions", "list")
	require.NoError(t, err)
	require.Contains(t, out, "cli-roundtrip")
	require.Contains(t, out, "2025-03-14")

	out, _, err = runCLI(t, env, "sessions", "show", "cli-roundtrip")
	require.NoError(t, err)
	require.Contains(t, out, "ID:          cli-roundtrip")
	require.Contains(t, out, "Gestures:    2")
	require.Contains(t, out, "Images:      1")
	require.Contains(t, out, "swipe_right (right)")
	require.Contains(t, out, "req-1")

	exportPath := filepath.Join(env.baseDir, "exported.json")
	out, _, err = runCLI(t, env, "sessions", "export", "cli-roundtrip", "-o", exportPath)
	require.NoError(t, err)
	require.Contains(t, out, "Exported session cli-roundtrip to "+exportPath)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	reimported, err := codec.ImportSession(data)
	require.NoError(t, err)
	require.Equal(t, fixture.ID, reimported.ID)
	require.Equal(t, fixture.Gestures, reimported.Gestures)
	require.Equal(t, fixture.Generations, reimported.Generations)

	out, _, err = runCLI(t, env, "sessions", "delete", "cli-roundtrip")
	require.NoError(t, err)
	require.Contains(t, out, "Deleted session cli-roundtrip")

	out, _, err = runCLI(t, env, "sessions", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Session store is empty")
}

func TestSessionsShow_ReadsFileWithoutImport(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeSessionFixture(t, env, fixtureSession("from-file"))

	out, _, err := runCLI(t, env, "sessions", "show", path)
	require.NoError(t, err)
	require.Contains(t, out, "ID:          from-file")
	require.Contains(t, out, "a koi pond at dusk")
}

func TestSessionsShow_TruncatesTimeline(t *testing.T) {
	env := setupCLITestEnv(t)
	s := testutil.NewSessionBuilder("long-take").
		GestureAt(core.GesturePinch, 10).
		GestureAt(core.GesturePinch, 20).
		GestureAt(core.GesturePinch, 30).
		GestureAt(core.GestureOpenPalm, 40).
		Build()
	path := writeSessionFixture(t, env, s)

	out, _, err := runCLI(t, env, "sessions", "show", path, "--events", "2")
	require.NoError(t, err)
	require.Contains(t, out, "(2 more events; raise --events to see them)")
	require.NotContains(t, out, "open_palm")
}

func TestSessionsImport_RejectsMalformedFile(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gestures": []}`), 0o644))

	_, _, err := runCLI(t, env, "sessions", "import", path)
	require.Error(t, err)
	require.ErrorIs(t, err, core.ErrImport)
	require.Contains(t, err.Error(), "Failed to import session")
}

func TestSessionsDelete_MissingSessionFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "sessions", "delete", "no-such-session")
	require.Error(t, err)
	require.ErrorIs(t, err, core.ErrNotFound)
}
