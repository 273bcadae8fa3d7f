package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aircanvas/aircanvas/codec"
	"github.com/aircanvas/aircanvas/core"
)

// FileStore is a SessionArchive persisting each session as an indented JSON
// file named <id>.json inside a single directory. Files use the codec wire
// format, so anything the store writes can also be imported directly, and
// exported files dropped into the directory become visible to List and Get.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted
// there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty store directory", core.ErrInvalidArgument)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the session files.
func (f *FileStore) Dir() string { return f.dir }

// Save writes the session to a temp file in the store directory and renames
// it into place, so readers never observe a partially written session.
func (f *FileStore) Save(s *core.RecordingSession) (err error) {
	if err := validateForArchive(s); err != nil {
		return err
	}
	path, err := f.path(s.ID)
	if err != nil {
		return err
	}

	data, err := codec.ExportSessionIndent(s)
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, s.ID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Get reads and imports the stored session. A missing file maps to
// ErrNotFound.
func (f *FileStore) Get(id string) (*core.RecordingSession, error) {
	path, err := f.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: session %s", core.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return codec.ImportSession(data)
}

// List returns the ids of all stored sessions in sorted order. Files without
// a .json extension, including in-flight temp files, are ignored.
func (f *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the stored session file if present or returns ErrNotFound.
func (f *FileStore) Delete(id string) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: session %s", core.ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// path rejects ids that would escape the store directory.
func (f *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: invalid session id %q", core.ErrInvalidArgument, id)
	}
	return filepath.Join(f.dir, id+".json"), nil
}
