// Package aircanvas provides a high-level façade over the session recorder,
// playback engine and service abstractions (archive, library, codec & logging)
// enabling rapid construction of gesture‑driven studio applications. Most
// applications interact with this package by:
//  1. Creating an AirCanvas via New() (optionally overriding default in‑memory services)
//  2. Recording performances through Recorder() or NewRecorder()
//  3. Replaying sealed sessions (Replay) or moving them across process
//     boundaries (SaveSession, LoadSession, ExportSession, ImportSession)
//
// The façade delegates capture to recorder.SessionRecorder and replay to
// playback.Engine while keeping setup and usage ergonomics concise. All
// defaults are safe for local development and testing; applications that keep
// sessions beyond the process typically supply a file-backed archive and a
// structured logger.
package aircanvas

import (
	"errors"

	"github.com/aircanvas/aircanvas/codec"
	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/library"
	"github.com/aircanvas/aircanvas/logging"
	"github.com/aircanvas/aircanvas/playback"
	"github.com/aircanvas/aircanvas/recorder"
	"github.com/aircanvas/aircanvas/session"
)

// Version is the release version of the aircanvas module.
const Version = "0.4.0"

// Options configures the AirCanvas instance.
type Options struct {
	// Clock drives recorder timestamps and playback timers. Sharing one clock
	// keeps capture and replay on the same timeline; tests swap in a manual
	// clock to make both deterministic.
	Clock core.Clock

	// ClientInfo identifies the capturing client in session metadata.
	ClientInfo string

	// Archive stores sealed sessions (defaults to an in-memory archive).
	Archive core.SessionArchive

	// Catalog indexes sealed sessions for search (defaults to in-memory).
	Catalog core.Catalog

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AirCanvas is the high-level façade aggregating the recorder registry and
// the session services.
type AirCanvas struct {
	opts     Options
	registry *recorder.Registry
}

// New creates a new AirCanvas instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *AirCanvas {
	opts := Options{
		Clock:      core.SystemClock(),
		ClientInfo: recorder.DefaultClientInfo,
		Archive:    session.NewInMemoryArchive(),
		Catalog:    library.NewInMemoryCatalog(),
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Clock == nil {
		opts.Clock = core.SystemClock()
	}
	if opts.Archive == nil {
		opts.Archive = session.NewInMemoryArchive()
	}
	if opts.Catalog == nil {
		opts.Catalog = library.NewInMemoryCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	registry := recorder.NewRegistry(func(o *recorder.Options) {
		o.Clock = opts.Clock
		o.Logger = opts.Logger
		o.ClientInfo = opts.ClientInfo
	})

	return &AirCanvas{opts: opts, registry: registry}
}

// Recorder returns the shared session recorder, creating it on first call.
// Every call returns the same instance.
func (c *AirCanvas) Recorder() *recorder.SessionRecorder { return c.registry.Shared() }

// NewRecorder returns an independent recorder configured like the shared one.
func (c *AirCanvas) NewRecorder() *recorder.SessionRecorder { return c.registry.New() }

// NewPlayback returns a playback engine wired to the façade clock and logger.
func (c *AirCanvas) NewPlayback() *playback.Engine {
	return playback.New(func(o *playback.Options) {
		o.Clock = c.opts.Clock
		o.Logger = c.opts.Logger
	})
}

// Replay starts playing a sealed session into handler on a fresh engine and
// returns the engine so the caller can pause, resume or stop the run.
func (c *AirCanvas) Replay(s *core.RecordingSession, handler core.EventHandler, optFns ...func(o *playback.RunOptions)) (*playback.Engine, error) {
	engine := c.NewPlayback()
	if err := engine.Start(s, handler, optFns...); err != nil {
		return nil, err
	}
	return engine, nil
}

// SaveSession archives a sealed session and indexes it for search. An archive
// failure is returned; an indexing failure is only logged because the catalog
// is advisory.
func (c *AirCanvas) SaveSession(s *core.RecordingSession) error {
	if err := c.opts.Archive.Save(s); err != nil {
		return err
	}
	if err := c.opts.Catalog.Add(s); err != nil {
		c.opts.Logger.Warn("failed to index session", "session_id", s.ID, "error", err)
	}
	return nil
}

// LoadSession retrieves a session from the archive by id.
func (c *AirCanvas) LoadSession(id string) (*core.RecordingSession, error) {
	return c.opts.Archive.Get(id)
}

// ListSessions returns the ids of every archived session.
func (c *AirCanvas) ListSessions() ([]string, error) {
	return c.opts.Archive.List()
}

// DeleteSession removes a session from the archive and the search index.
func (c *AirCanvas) DeleteSession(id string) error {
	if err := c.opts.Archive.Delete(id); err != nil {
		return err
	}
	if err := c.opts.Catalog.Remove(id); err != nil && !errors.Is(err, core.ErrNotFound) {
		c.opts.Logger.Warn("failed to unindex session", "session_id", id, "error", err)
	}
	return nil
}

// SearchSessions queries the catalog for archived sessions matching query.
func (c *AirCanvas) SearchSessions(query string, limit int) ([]core.SearchResult, error) {
	return c.opts.Catalog.Search(query, limit)
}

// ExportSession encodes a sealed session as portable JSON.
func (c *AirCanvas) ExportSession(s *core.RecordingSession) ([]byte, error) {
	return codec.ExportSession(s)
}

// ImportSession decodes a previously exported session.
func (c *AirCanvas) ImportSession(data []byte) (*core.RecordingSession, error) {
	return codec.ImportSession(data)
}
