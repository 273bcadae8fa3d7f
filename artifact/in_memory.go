package artifact

import (
	"sort"
	"sync"
)

// InMemoryStore is a process local AssetStore implementation useful for
// tests, examples and single-run studio apps. It keeps all asset bytes in a
// nested map guarded by an RWMutex. Data is copied on save and retrieval to
// avoid accidental external mutation of internal buffers.
//
// Layout: sessionID -> assetID -> raw bytes
//
// This implementation does not enforce retention limits, size quotas, or
// eviction. Generated images add up quickly; long-lived deployments should
// prefer a durable backend that can bound growth.
type InMemoryStore struct {
	mu     sync.RWMutex
	assets map[string]map[string][]byte // sessionID -> assetID -> data
}

// NewInMemoryStore returns an empty in-memory asset store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{assets: make(map[string]map[string][]byte)}
}

// Save stores (or overwrites) the asset bytes for the given session and id.
// The input slice is copied before storage.
func (a *InMemoryStore) Save(sessionID, assetID string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.assets[sessionID]; !exists {
		a.assets[sessionID] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	a.assets[sessionID][assetID] = cp
	return nil
}

// Get returns a copy of the stored asset bytes or ErrNotFound.
func (a *InMemoryStore) Get(sessionID, assetID string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.assets[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := m[assetID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the asset ids stored for the session in sorted order. The
// slice is a snapshot and safe for caller mutation.
func (a *InMemoryStore) List(sessionID string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.assets[sessionID]
	if !ok {
		return []string{}, nil
	}
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the asset if present or returns ErrNotFound.
func (a *InMemoryStore) Delete(sessionID, assetID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.assets[sessionID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[assetID]; !ok {
		return ErrNotFound
	}
	delete(m, assetID)
	return nil
}
