package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aircanvas/aircanvas/core"
)

// InMemoryArchive is a volatile SessionArchive implementation storing
// sessions in a process local map. It is safe for concurrent access and best
// suited for tests or single-run studio apps. Each stored and returned
// session is cloned to prevent external mutation of internal state.
type InMemoryArchive struct {
	mu       sync.RWMutex
	sessions map[string]*core.RecordingSession
}

// NewInMemoryArchive constructs an empty in-memory archive.
func NewInMemoryArchive() *InMemoryArchive {
	return &InMemoryArchive{sessions: make(map[string]*core.RecordingSession)}
}

// Save stores a clone of the stopped session, overwriting any previous
// session with the same id.
func (a *InMemoryArchive) Save(s *core.RecordingSession) error {
	if err := validateForArchive(s); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[s.ID] = s.Clone()
	return nil
}

// Get returns a clone of the stored session or ErrNotFound.
func (a *InMemoryArchive) Get(id string) (*core.RecordingSession, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", core.ErrNotFound, id)
	}
	return s.Clone(), nil
}

// List returns the stored session ids in sorted order.
func (a *InMemoryArchive) List() ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ids := make([]string, 0, len(a.sessions))
	for id := range a.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the stored session if present or returns ErrNotFound.
func (a *InMemoryArchive) Delete(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.sessions[id]; !ok {
		return fmt.Errorf("%w: session %s", core.ErrNotFound, id)
	}
	delete(a.sessions, id)
	return nil
}

// validateForArchive enforces the archive contract: only sealed sessions with
// a usable id are stored.
func validateForArchive(s *core.RecordingSession) error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil session", core.ErrInvalidArgument)
	case s.ID == "":
		return fmt.Errorf("%w: session id is empty", core.ErrInvalidArgument)
	case strings.ContainsAny(s.ID, `/\`):
		return fmt.Errorf("%w: session id %q contains path separators", core.ErrInvalidArgument, s.ID)
	case !s.IsStopped():
		return fmt.Errorf("%w: session %s is not stopped", core.ErrInvalidArgument, s.ID)
	}
	return nil
}
