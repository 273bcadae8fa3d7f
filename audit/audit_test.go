package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/testutil"
)

func issueCodes(issues []Issue) []string {
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestInspect_CleanSession(t *testing.T) {
	session := testutil.NewSessionBuilder("sess-1").
		GestureAt(core.GesturePinch, 10).
		GestureAt(core.GestureOpenPalm, 40).
		GenerationAt("req-1", 80).
		Duration(120).
		Build()

	report := Inspect(session)

	assert.True(t, report.OK())
	assert.Empty(t, report.Issues)
	assert.Equal(t, "sess-1", report.SessionID)
	assert.Equal(t, 2, report.Gestures)
	assert.Equal(t, 1, report.Generations)
	assert.Equal(t, 120.0, report.DurationMs)
}

func TestInspect_FlagsStructuralProblems(t *testing.T) {
	session := &core.RecordingSession{
		State:      core.SessionStateRecording,
		DurationMs: 50,
		Gestures: []core.RecordedGesture{
			{Type: core.GesturePinch, TimestampMs: 30},
			{Type: core.GestureFist, TimestampMs: 10},
		},
		Generations: []core.RecordedGeneration{
			{RequestID: "req-1", TimestampMs: -5},
		},
	}

	report := Inspect(session)

	assert.False(t, report.OK())
	codes := issueCodes(report.Issues)
	assert.Contains(t, codes, "empty-id")
	assert.Contains(t, codes, "not-stopped")
	assert.Contains(t, codes, "out-of-order")
	assert.Contains(t, codes, "out-of-bounds")
	assert.Contains(t, codes, "missing-version")
}

func TestInspect_TimestampBeyondDuration(t *testing.T) {
	session := testutil.NewSessionBuilder("sess-late").
		GestureAt(core.GesturePinch, 10).
		Duration(100).
		Build()
	session.Gestures[0].TimestampMs = 150

	report := Inspect(session)

	assert.False(t, report.OK())
	assert.Contains(t, issueCodes(report.Issues), "out-of-bounds")
}

func TestInspect_LandmarkCountIsAdvisory(t *testing.T) {
	session := testutil.NewSessionBuilder("sess-short-hand").
		Gesture(core.RecordedGesture{
			Type:        core.GesturePoint,
			Landmarks:   []core.Landmark{{X: 0.1}, {X: 0.2}},
			TimestampMs: 10,
		}).
		Duration(50).
		Build()

	report := Inspect(session)

	// A warning is raised but the session still passes.
	assert.True(t, report.OK())
	require.Len(t, report.Issues, 1)
	assert.Equal(t, SeverityWarning, report.Issues[0].Severity)
	assert.Equal(t, "unusual-landmark-count", report.Issues[0].Code)
}

func TestInspect_NilSession(t *testing.T) {
	report := Inspect(nil)
	assert.False(t, report.OK())
	assert.Contains(t, issueCodes(report.Issues), "nil-session")
}

func TestVerifyReplay_CleanSession(t *testing.T) {
	session := testutil.NewSessionBuilder("sess-replay").
		GestureAt(core.GesturePinch, 10).
		GestureAt(core.GestureSwipeRight, 30).
		GenerationAt("req-1", 30).
		GestureAt(core.GestureOpenPalm, 90).
		GenerationAt("req-2", 150).
		Duration(200).
		Build()

	report, err := VerifyReplay(session)
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, 5, report.Expected)
	assert.Equal(t, 5, report.Delivered)
	assert.True(t, report.Completed)
	assert.Empty(t, report.Issues)
}

func TestVerifyReplay_SpeedIndependent(t *testing.T) {
	session := testutil.NewSessionBuilder("sess-speed").
		GestureAt(core.GesturePinch, 25).
		GenerationAt("req-1", 75).
		Duration(100).
		Build()

	for _, speed := range []float64{0.25, 1.0, 8.0} {
		report, err := VerifyReplay(session, func(o *ReplayOptions) { o.Speed = speed })
		require.NoError(t, err)
		assert.True(t, report.OK(), "speed %v", speed)
		assert.Equal(t, 2, report.Delivered, "speed %v", speed)
	}
}

func TestVerifyReplay_EmptySession(t *testing.T) {
	session := testutil.NewSessionBuilder("sess-empty").Duration(40).Build()

	report, err := VerifyReplay(session)
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Zero(t, report.Delivered)
	assert.True(t, report.Completed)
}

func TestVerifyReplay_InconsistentDuration(t *testing.T) {
	// The recorded duration undershoots the final event; the engine extends
	// the run so the event must still be delivered.
	session := testutil.NewSessionBuilder("sess-skewed").
		GestureAt(core.GesturePinch, 10).
		GestureAt(core.GestureFist, 500).
		Duration(100).
		Build()

	report, err := VerifyReplay(session)
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Delivered)
}

func TestVerifyReplay_RejectsUnsealedSession(t *testing.T) {
	recording := testutil.NewSessionBuilder("sess-live").Recording().Build()

	_, err := VerifyReplay(recording)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestVerifyReplay_NilSession(t *testing.T) {
	_, err := VerifyReplay(nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
