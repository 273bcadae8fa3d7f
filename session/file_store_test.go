package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/codec"
	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/testutil"
)

// Interface compliance (compile-time assertion)
var _ core.SessionArchive = (*FileStore)(nil)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "sessions"))
	require.NoError(t, err)
	return store
}

func TestFileStore_SaveGetRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	sess := testutil.NewSessionBuilder("sess-disk-1").
		GestureAt(core.GesturePinch, 10).
		GestureAt(core.GestureOpenPalm, 25).
		GenerationAt("req-1", 40).
		Duration(60).
		Build()

	require.NoError(t, store.Save(sess))

	_, err := os.Stat(filepath.Join(store.Dir(), "sess-disk-1.json"))
	require.NoError(t, err)

	got, err := store.Get("sess-disk-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Gestures, got.Gestures)
	assert.Equal(t, sess.Generations, got.Generations)
	assert.Equal(t, sess.DurationMs, got.DurationMs)
	assert.True(t, got.IsStopped())
}

func TestFileStore_FilesAreImportable(t *testing.T) {
	store := newTestFileStore(t)
	sess := testutil.NewSessionBuilder("sess-disk-2").
		GenerationAt("req-7", 15).
		Build()
	require.NoError(t, store.Save(sess))

	// Stored files use the export wire format verbatim.
	data, err := os.ReadFile(filepath.Join(store.Dir(), "sess-disk-2.json"))
	require.NoError(t, err)

	imported, err := codec.ImportSession(data)
	require.NoError(t, err)
	assert.Equal(t, "sess-disk-2", imported.ID)
	assert.Equal(t, sess.Generations, imported.Generations)
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Save(testutil.NewSessionBuilder("sess-b").Build()))
	require.NoError(t, store.Save(testutil.NewSessionBuilder("sess-a").Build()))

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "sess-c-1234.tmp"), []byte("{"), 0o644))

	ids, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-a", "sess-b"}, ids)
}

func TestFileStore_GetMissing(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.Get("sess-none")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = store.Get("../escape")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestFileStore_Delete(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Save(testutil.NewSessionBuilder("sess-del").Build()))

	require.NoError(t, store.Delete("sess-del"))

	_, err := os.Stat(filepath.Join(store.Dir(), "sess-del.json"))
	assert.True(t, os.IsNotExist(err))
	assert.ErrorIs(t, store.Delete("sess-del"), core.ErrNotFound)
}

func TestFileStore_OverwriteReplacesContent(t *testing.T) {
	store := newTestFileStore(t)

	first := testutil.NewSessionBuilder("sess-ow").GestureAt(core.GesturePinch, 5).Build()
	require.NoError(t, store.Save(first))

	second := testutil.NewSessionBuilder("sess-ow").
		GestureAt(core.GestureFist, 5).
		GestureAt(core.GestureFist, 9).
		Build()
	require.NoError(t, store.Save(second))

	got, err := store.Get("sess-ow")
	require.NoError(t, err)
	require.Len(t, got.Gestures, 2)
	assert.Equal(t, core.GestureFist, got.Gestures[0].Type)
}

func TestNewFileStore_Validation(t *testing.T) {
	_, err := NewFileStore("")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
