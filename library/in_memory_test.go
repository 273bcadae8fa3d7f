package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/testutil"
)

// Interface compliance (compile-time assertion)
var _ core.Catalog = (*InMemoryCatalog)(nil)

func koiSession() *core.RecordingSession {
	return testutil.NewSessionBuilder("sess-koi").
		GestureAt(core.GesturePinch, 10).
		Generation(core.RecordedGeneration{
			RequestID:      "req-koi",
			PromptSnapshot: "Neon koi pond at night",
			TimestampMs:    30,
		}).
		Build()
}

func duneSession() *core.RecordingSession {
	return testutil.NewSessionBuilder("sess-dune").
		GestureAt(core.GestureSwipeLeft, 5).
		Generation(core.RecordedGeneration{
			RequestID:      "req-dune",
			PromptSnapshot: "Desert dunes under a neon sky",
			TimestampMs:    20,
		}).
		Build()
}

func TestInMemoryCatalog_SearchByPrompt(t *testing.T) {
	catalog := NewInMemoryCatalog()
	require.NoError(t, catalog.Add(koiSession()))
	require.NoError(t, catalog.Add(duneSession()))

	results, err := catalog.Search("koi", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sess-koi", results[0].SessionID)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, 1, results[0].Metadata["gestures"])
}

func TestInMemoryCatalog_SearchByGestureKind(t *testing.T) {
	catalog := NewInMemoryCatalog()
	require.NoError(t, catalog.Add(koiSession()))
	require.NoError(t, catalog.Add(duneSession()))

	results, err := catalog.Search("swipe_left", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sess-dune", results[0].SessionID)
}

func TestInMemoryCatalog_SearchIsCaseInsensitive(t *testing.T) {
	catalog := NewInMemoryCatalog()
	require.NoError(t, catalog.Add(koiSession()))

	results, err := catalog.Search("NEON Koi", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sess-koi", results[0].SessionID)
}

func TestInMemoryCatalog_RanksByTokenCoverage(t *testing.T) {
	catalog := NewInMemoryCatalog()
	require.NoError(t, catalog.Add(koiSession()))
	require.NoError(t, catalog.Add(duneSession()))

	// Both sessions mention "neon"; only one mentions "pond".
	results, err := catalog.Search("neon pond", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "sess-koi", results[0].SessionID)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, "sess-dune", results[1].SessionID)
	assert.Equal(t, 0.5, results[1].Score)
}

func TestInMemoryCatalog_EmptyQueryMatchesAll(t *testing.T) {
	catalog := NewInMemoryCatalog()
	require.NoError(t, catalog.Add(koiSession()))
	require.NoError(t, catalog.Add(duneSession()))

	results, err := catalog.Search("", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Equal scores order by session id for stable output.
	assert.Equal(t, "sess-dune", results[0].SessionID)
	assert.Equal(t, "sess-koi", results[1].SessionID)
}

func TestInMemoryCatalog_LimitCapsResults(t *testing.T) {
	catalog := NewInMemoryCatalog()
	require.NoError(t, catalog.Add(koiSession()))
	require.NoError(t, catalog.Add(duneSession()))

	results, err := catalog.Search("neon", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestInMemoryCatalog_AddReplacesEntry(t *testing.T) {
	catalog := NewInMemoryCatalog()
	require.NoError(t, catalog.Add(koiSession()))

	replacement := testutil.NewSessionBuilder("sess-koi").
		Generation(core.RecordedGeneration{
			RequestID:      "req-new",
			PromptSnapshot: "Minimal charcoal sketch",
			TimestampMs:    10,
		}).
		Build()
	require.NoError(t, catalog.Add(replacement))

	results, err := catalog.Search("koi", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = catalog.Search("charcoal", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sess-koi", results[0].SessionID)
}

func TestInMemoryCatalog_Remove(t *testing.T) {
	catalog := NewInMemoryCatalog()
	require.NoError(t, catalog.Add(koiSession()))

	require.NoError(t, catalog.Remove("sess-koi"))

	results, err := catalog.Search("koi", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.ErrorIs(t, catalog.Remove("sess-koi"), core.ErrNotFound)
}

func TestInMemoryCatalog_AddValidation(t *testing.T) {
	catalog := NewInMemoryCatalog()

	assert.ErrorIs(t, catalog.Add(nil), core.ErrInvalidArgument)
	assert.ErrorIs(t, catalog.Add(testutil.NewSessionBuilder("").Build()), core.ErrInvalidArgument)
}
