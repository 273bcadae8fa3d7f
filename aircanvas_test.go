package aircanvas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/testutil"
)

func TestAirCanvas_RecorderIsShared(t *testing.T) {
	canvas := New()

	require.Same(t, canvas.Recorder(), canvas.Recorder())
	assert.NotSame(t, canvas.Recorder(), canvas.NewRecorder())
}

func TestAirCanvas_RecordSaveSearchLoad(t *testing.T) {
	clock := core.NewManualClock(time.Unix(1700000000, 0))
	canvas := New(func(o *Options) {
		o.Clock = clock
		o.ClientInfo = "aircanvas-test/1.0"
	})

	rec := canvas.Recorder()
	rec.Start()
	clock.Advance(10 * time.Millisecond)
	_, ok := rec.RecordGesture(core.GesturePinch, testutil.Landmarks21())
	require.True(t, ok)
	clock.Advance(10 * time.Millisecond)
	_, ok = rec.RecordGeneration(core.RecordedGeneration{
		ImageURL:       "https://images.invalid/koi.png",
		PromptSnapshot: "a koi pond at night",
		RequestID:      "req-1",
	})
	require.True(t, ok)

	sealed, err := rec.Stop()
	require.NoError(t, err)
	require.NoError(t, canvas.SaveSession(sealed))

	ids, err := canvas.ListSessions()
	require.NoError(t, err)
	assert.Contains(t, ids, sealed.ID)

	loaded, err := canvas.LoadSession(sealed.ID)
	require.NoError(t, err)
	assert.Equal(t, sealed.ID, loaded.ID)
	assert.Equal(t, "aircanvas-test/1.0", loaded.Metadata.ClientInfo)
	assert.Len(t, loaded.Gestures, 1)
	assert.Len(t, loaded.Generations, 1)

	results, err := canvas.SearchSessions("koi", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sealed.ID, results[0].SessionID)
}

func TestAirCanvas_DeleteSessionToleratesUnindexed(t *testing.T) {
	canvas := New()

	sealed := testutil.NewSessionBuilder("session-1").
		GestureAt(core.GesturePinch, 10).
		Duration(20).
		Build()

	// Archived without going through SaveSession, so the catalog never saw it.
	require.NoError(t, canvas.opts.Archive.Save(sealed))

	require.NoError(t, canvas.DeleteSession("session-1"))

	_, err := canvas.LoadSession("session-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAirCanvas_ExportImportRoundTrip(t *testing.T) {
	canvas := New()

	original := testutil.NewSessionBuilder("session-rt").
		GestureAt(core.GestureOpenPalm, 40).
		GenerationAt("req-1", 80).
		Duration(120).
		Build()

	data, err := canvas.ExportSession(original)
	require.NoError(t, err)

	imported, err := canvas.ImportSession(data)
	require.NoError(t, err)
	assert.Equal(t, original.ID, imported.ID)
	assert.Equal(t, original.Gestures, imported.Gestures)
	assert.Equal(t, original.Generations, imported.Generations)
}

func TestAirCanvas_ReplayDeliversTimeline(t *testing.T) {
	clock := core.NewManualClock(time.Unix(1700000000, 0))
	canvas := New(func(o *Options) {
		o.Clock = clock
	})

	sealed := testutil.NewSessionBuilder("session-replay").
		GestureAt(core.GesturePinch, 20).
		GenerationAt("req-1", 60).
		Duration(100).
		Build()

	collector := testutil.NewEventCollector()
	engine, err := canvas.Replay(sealed, collector.Handler())
	require.NoError(t, err)
	require.True(t, engine.State().IsPlaying)

	clock.Advance(150 * time.Millisecond)

	assert.Equal(t, []float64{20, 60}, collector.Timestamps())
	assert.False(t, engine.State().IsPlaying)
}
