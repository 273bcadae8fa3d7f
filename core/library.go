package core

// SearchResult represents a catalog hit with a relevance score and arbitrary
// metadata.
type SearchResult struct {
	SessionID string
	Content   string
	Score     float64
	Metadata  map[string]any
}

// Catalog indexes finalized sessions for retrieval by text search over
// prompt snapshots and gesture kinds. Implementations can back search with
// embeddings, keywords or any heuristic.
type Catalog interface {
	Add(s *RecordingSession) error
	Search(query string, limit int) ([]SearchResult, error)
	Remove(sessionID string) error
}
