package library

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aircanvas/aircanvas/core"
)

// indexedSession is the internal representation persisted by InMemoryCatalog.
// Content is the searchable text assembled from the session's gesture kinds
// and prompt snapshots; Metadata carries display fields for result rendering.
type indexedSession struct {
	SessionID string
	Content   string
	Metadata  map[string]any
}

// InMemoryCatalog is a naive process-local Catalog. Search is a linear scan
// with case-insensitive token matching; hits are scored by the fraction of
// query tokens found and returned best first. Suitable for local libraries of
// hundreds of sessions; swap in an embeddings index for semantic retrieval at
// scale.
//
// Concurrency: protected by RWMutex.
type InMemoryCatalog struct {
	mu      sync.RWMutex
	entries map[string]indexedSession
}

// NewInMemoryCatalog creates an empty catalog.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{entries: make(map[string]indexedSession)}
}

// Add indexes a session, replacing any previous entry with the same id.
func (c *InMemoryCatalog) Add(s *core.RecordingSession) error {
	if s == nil {
		return fmt.Errorf("%w: nil session", core.ErrInvalidArgument)
	}
	if s.ID == "" {
		return fmt.Errorf("%w: session id is empty", core.ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[s.ID] = indexedSession{
		SessionID: s.ID,
		Content:   indexContent(s),
		Metadata: map[string]any{
			"gestures":    len(s.Gestures),
			"generations": len(s.Generations),
			"duration_ms": s.DurationMs,
			"recorded_at": s.Metadata.RecordedAt,
		},
	}
	return nil
}

// Search matches the query tokens against indexed content. A result's score
// is the fraction of query tokens it contains; sessions matching no token are
// omitted. Results order by score, then session id, so equal inputs always
// return equal output. An empty query matches every session with a score of
// 1.0, and a non-positive limit means no limit.
func (c *InMemoryCatalog) Search(query string, limit int) ([]core.SearchResult, error) {
	tokens := strings.Fields(strings.ToLower(query))

	c.mu.RLock()
	results := make([]core.SearchResult, 0, len(c.entries))
	for _, entry := range c.entries {
		score := matchScore(entry.Content, tokens)
		if score == 0 {
			continue
		}
		md := make(map[string]any, len(entry.Metadata))
		for k, v := range entry.Metadata {
			md[k] = v
		}
		results = append(results, core.SearchResult{
			SessionID: entry.SessionID,
			Content:   entry.Content,
			Score:     score,
			Metadata:  md,
		})
	}
	c.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].SessionID < results[j].SessionID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Remove drops the catalog entry if present or returns ErrNotFound.
func (c *InMemoryCatalog) Remove(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[sessionID]; !ok {
		return fmt.Errorf("%w: session %s", core.ErrNotFound, sessionID)
	}
	delete(c.entries, sessionID)
	return nil
}

// indexContent assembles the searchable text for a session: every distinct
// gesture kind plus every prompt snapshot, lowercased.
func indexContent(s *core.RecordingSession) string {
	var parts []string
	seen := make(map[core.GestureType]bool)
	for _, g := range s.Gestures {
		if !seen[g.Type] {
			seen[g.Type] = true
			parts = append(parts, string(g.Type))
		}
	}
	for _, gen := range s.Generations {
		if gen.PromptSnapshot != "" {
			parts = append(parts, gen.PromptSnapshot)
		}
	}
	return strings.ToLower(strings.Join(parts, "\n"))
}

// matchScore returns the fraction of tokens contained in content, or 1 for
// an empty token set.
func matchScore(content string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 1.0
	}
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(content, tok) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}
