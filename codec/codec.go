package codec

import (
	"encoding/json"
	"fmt"

	"github.com/aircanvas/aircanvas/core"
)

// sessionDocument is the wire shape of an exported session. The in-memory
// State field never leaves the process; importing always yields a stopped
// session.
type sessionDocument struct {
	ID          string                    `json:"id"`
	Gestures    []core.RecordedGesture    `json:"gestures"`
	Generations []core.RecordedGeneration `json:"generations"`
	Metadata    core.SessionMetadata      `json:"metadata"`
	Duration    float64                   `json:"duration"`
}

// importProbe distinguishes absent keys from zero values during validation.
type importProbe struct {
	ID          *string                    `json:"id"`
	Gestures    *[]core.RecordedGesture    `json:"gestures"`
	Generations *[]core.RecordedGeneration `json:"generations"`
	Metadata    *core.SessionMetadata      `json:"metadata"`
	Duration    *float64                   `json:"duration"`
}

// ExportSession encodes a session as compact JSON. Nil event streams are
// written as empty arrays so every export satisfies the import shape.
func ExportSession(session *core.RecordingSession) ([]byte, error) {
	doc, err := newSessionDocument(session)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// ExportSessionIndent encodes a session as indented JSON for files and CLI
// output. Content matches ExportSession.
func ExportSessionIndent(session *core.RecordingSession) ([]byte, error) {
	doc, err := newSessionDocument(session)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// ImportSession decodes an exported session. It fails with ErrImport when the
// input is not valid JSON or lacks the session shape: an id plus gesture and
// generation arrays. The returned session is stopped and ready for replay.
func ImportSession(data []byte) (*core.RecordingSession, error) {
	var probe importProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: Failed to import session: %v", core.ErrImport, err)
	}

	switch {
	case probe.ID == nil || *probe.ID == "":
		return nil, fmt.Errorf("%w: Failed to import session: missing id", core.ErrImport)
	case probe.Gestures == nil:
		return nil, fmt.Errorf("%w: Failed to import session: missing gestures", core.ErrImport)
	case probe.Generations == nil:
		return nil, fmt.Errorf("%w: Failed to import session: missing generations", core.ErrImport)
	}

	session := &core.RecordingSession{
		ID:          *probe.ID,
		Gestures:    *probe.Gestures,
		Generations: *probe.Generations,
		State:       core.SessionStateStopped,
	}
	if probe.Metadata != nil {
		session.Metadata = *probe.Metadata
	}
	if probe.Duration != nil {
		session.DurationMs = *probe.Duration
	}
	return session, nil
}

func newSessionDocument(session *core.RecordingSession) (*sessionDocument, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: nil session", core.ErrInvalidArgument)
	}

	doc := &sessionDocument{
		ID:          session.ID,
		Gestures:    session.Gestures,
		Generations: session.Generations,
		Metadata:    session.Metadata,
		Duration:    session.DurationMs,
	}
	if doc.Gestures == nil {
		doc.Gestures = []core.RecordedGesture{}
	}
	if doc.Generations == nil {
		doc.Generations = []core.RecordedGeneration{}
	}
	return doc, nil
}
