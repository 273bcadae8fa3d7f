package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/testutil"
)

// Interface compliance (compile-time assertion)
var _ core.SessionArchive = (*InMemoryArchive)(nil)

func TestInMemoryArchive_SaveAndGet(t *testing.T) {
	archive := NewInMemoryArchive()
	sess := testutil.NewSessionBuilder("sess-mem-1").
		GestureAt(core.GesturePinch, 10).
		GenerationAt("req-1", 20).
		Build()

	require.NoError(t, archive.Save(sess))

	got, err := archive.Get("sess-mem-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Gestures, got.Gestures)
	assert.Equal(t, sess.Generations, got.Generations)
}

func TestInMemoryArchive_SaveValidation(t *testing.T) {
	archive := NewInMemoryArchive()

	tests := []struct {
		name    string
		session *core.RecordingSession
	}{
		{"nil session", nil},
		{"empty id", testutil.NewSessionBuilder("").Build()},
		{"path separator in id", testutil.NewSessionBuilder("../escape").Build()},
		{"still recording", testutil.NewSessionBuilder("sess-live").Recording().Build()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := archive.Save(tt.session)
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}
}

func TestInMemoryArchive_IsolatesStoredState(t *testing.T) {
	archive := NewInMemoryArchive()
	sess := testutil.NewSessionBuilder("sess-iso").
		GestureAt(core.GesturePinch, 10).
		Build()
	require.NoError(t, archive.Save(sess))

	// Mutating the saved-in session must not reach the archive.
	sess.Gestures[0].Type = core.GestureFist

	got, err := archive.Get("sess-iso")
	require.NoError(t, err)
	assert.Equal(t, core.GesturePinch, got.Gestures[0].Type)

	// Mutating a retrieved clone must not reach later readers.
	got.Gestures[0].Type = core.GestureOpenPalm

	again, err := archive.Get("sess-iso")
	require.NoError(t, err)
	assert.Equal(t, core.GesturePinch, again.Gestures[0].Type)
}

func TestInMemoryArchive_GetMissing(t *testing.T) {
	archive := NewInMemoryArchive()

	_, err := archive.Get("sess-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestInMemoryArchive_ListSorted(t *testing.T) {
	archive := NewInMemoryArchive()
	for _, id := range []string{"sess-c", "sess-a", "sess-b"} {
		require.NoError(t, archive.Save(testutil.NewSessionBuilder(id).Build()))
	}

	ids, err := archive.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-a", "sess-b", "sess-c"}, ids)
}

func TestInMemoryArchive_Delete(t *testing.T) {
	archive := NewInMemoryArchive()
	require.NoError(t, archive.Save(testutil.NewSessionBuilder("sess-del").Build()))

	require.NoError(t, archive.Delete("sess-del"))

	_, err := archive.Get("sess-del")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, archive.Delete("sess-del"), core.ErrNotFound)
}

func TestInMemoryArchive_ConcurrentAccess(t *testing.T) {
	archive := NewInMemoryArchive()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("sess-%02d", i)
			sess := testutil.NewSessionBuilder(id).GestureAt(core.GesturePinch, 5).Build()
			if err := archive.Save(sess); err != nil {
				t.Error(err)
				return
			}
			if _, err := archive.Get(id); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	ids, err := archive.List()
	require.NoError(t, err)
	assert.Len(t, ids, 16)
}
