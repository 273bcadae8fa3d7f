package main

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplayCommand_PlainPrintsTimeline(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeSessionFixture(t, env, fixtureSession("plain-take"))

	out, _, err := runCLI(t, env, "replay", path, "--plain", "--speed", "25")
	require.NoError(t, err)
	require.Contains(t, out, "Replaying session plain-take (3 events at 25x)")
	require.Contains(t, out, "pinch")
	require.Contains(t, out, "swipe_right")
	require.Contains(t, out, "req-1")
	require.Contains(t, out, "Replay complete")
}

func TestReplayCommand_RejectsNonPositiveSpeed(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeSessionFixture(t, env, fixtureSession("bad-speed"))

	_, _, err := runCLI(t, env, "replay", path, "--plain", "--speed", "-2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "speed must be positive")
}

func TestReplayCommand_DefaultsToConfiguredSpeed(t *testing.T) {
	env := setupCLITestEnv(t)
	content := fmt.Sprintf(
		"[storage]\nsessions_dir = %q\n\n[playback]\nspeed = 50.0\n\n[logging]\nlevel = \"error\"\n",
		env.sessionsDir,
	)
	require.NoError(t, os.WriteFile(env.configPath, []byte(content), 0o644))
	path := writeSessionFixture(t, env, fixtureSession("config-speed"))

	out, _, err := runCLI(t, env, "replay", path, "--plain")
	require.NoError(t, err)
	require.Contains(t, out, "(3 events at 50x)")
	require.Contains(t, out, "Replay complete")
}
