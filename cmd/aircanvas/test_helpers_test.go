package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/codec"
	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/testutil"
)

type cliTestEnv struct {
	baseDir     string
	sessionsDir string
	configPath  string
}

// setupCLITestEnv isolates a command run: a temp HOME, a session store under
// the temp dir, and a config file pointing at it with logging quieted.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	require.NoError(t, os.MkdirAll(home, 0o755))
	t.Setenv("HOME", home)

	env := &cliTestEnv{
		baseDir:     base,
		sessionsDir: filepath.Join(base, "sessions"),
		configPath:  filepath.Join(base, "config.toml"),
	}
	writeTestConfig(t, env.configPath, env.sessionsDir)
	return env
}

func writeTestConfig(t *testing.T, path, sessionsDir string) {
	t.Helper()
	content := fmt.Sprintf(
		"[storage]\nsessions_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		sessionsDir,
	)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeSessionFixture exports the session to a JSON file under the test base
// dir and returns its path.
func writeSessionFixture(t *testing.T, env *cliTestEnv, s *core.RecordingSession) string {
	t.Helper()
	data, err := codec.ExportSessionIndent(s)
	require.NoError(t, err)
	path := filepath.Join(env.baseDir, s.ID+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func fixtureSession(id string) *core.RecordingSession {
	return testutil.NewSessionBuilder(id).
		GestureAt(core.GesturePinch, 20).
		GestureAt(core.GestureSwipeRight, 45).
		Generation(core.RecordedGeneration{
			ImageURL:       "https://images.invalid/" + id + ".png",
			PromptSnapshot: "a koi pond at dusk",
			Seed:           7,
			RequestID:      "req-1",
			TimestampMs:    80,
		}).
		Duration(120).
		Build()
}
