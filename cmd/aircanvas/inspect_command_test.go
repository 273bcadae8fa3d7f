package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/testutil"
)

func TestInspectCommand_CleanSession(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeSessionFixture(t, env, fixtureSession("clean-take"))

	out, _, err := runCLI(t, env, "inspect", path)
	require.NoError(t, err)
	require.Contains(t, out, "Session:   clean-take")
	require.Contains(t, out, "Events:    2 gestures, 1 generations")
	require.Contains(t, out, "Issues:    none")
	require.Contains(t, out, "OK")
}

func TestInspectCommand_VerifyReplay(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeSessionFixture(t, env, fixtureSession("verified-take"))

	out, _, err := runCLI(t, env, "inspect", path, "--verify", "--speed", "4")
	require.NoError(t, err)
	require.Contains(t, out, "Replay:    delivered 3/3 events, completed=true")
	require.Contains(t, out, "OK")
}

func TestInspectCommand_FlagsOutOfBoundsEvents(t *testing.T) {
	env := setupCLITestEnv(t)
	s := testutil.NewSessionBuilder("overrun-take").
		GestureAt(core.GesturePinch, 500).
		Duration(100).
		Build()
	path := writeSessionFixture(t, env, s)

	out, _, err := runCLI(t, env, "inspect", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "integrity errors")
	require.Contains(t, out, "out-of-bounds")
	require.NotContains(t, out, "OK\n")
}
