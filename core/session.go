package core

import "time"

// SessionState describes the lifecycle position of a RecordingSession.
type SessionState string

const (
	// SessionStateRecording marks a session that is still accepting events.
	SessionStateRecording SessionState = "recording"
	// SessionStateStopped marks a finalized session. Stopped sessions are
	// immutable except through serializer copies.
	SessionStateStopped SessionState = "stopped"
)

// SessionFormatVersion is the wire format version written into session
// metadata. Importers scope forward compatibility by this value.
const SessionFormatVersion = "1.0"

// SessionMetadata carries descriptive information captured at recording start.
// ClientInfo is the user-agent equivalent of the capturing client.
type SessionMetadata struct {
	Version    string    `json:"version"`
	ClientInfo string    `json:"client_info"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RecordingSession is the bounded capture of gesture and generation events
// between one start and one stop call.
//
// Contract:
//   - Both event slices are ordered by non-decreasing TimestampMs because the
//     capture clock is monotonic and append-only
//   - Every TimestampMs lies in [0, DurationMs] once the session is stopped
//   - ID is generated once at session start and never changes
//   - A session transitions recording to stopped exactly once; the owning
//     recorder serializes all mutation, so the struct itself carries no lock
//   - Clone performs deep copies of nested slices/maps for safe divergence
type RecordingSession struct {
	ID          string               `json:"id"`
	Gestures    []RecordedGesture    `json:"gestures"`
	Generations []RecordedGeneration `json:"generations"`
	Metadata    SessionMetadata      `json:"metadata"`
	DurationMs  float64              `json:"duration"`
	State       SessionState         `json:"state"`
}

// NewRecordingSession creates an empty session in the recording state.
func NewRecordingSession(id, clientInfo string, recordedAt time.Time) *RecordingSession {
	return &RecordingSession{
		ID:          id,
		Gestures:    []RecordedGesture{},
		Generations: []RecordedGeneration{},
		Metadata: SessionMetadata{
			Version:    SessionFormatVersion,
			ClientInfo: clientInfo,
			RecordedAt: recordedAt,
		},
		State: SessionStateRecording,
	}
}

// AddGesture appends a gesture event. Silently ignored once the session is
// stopped so a capture call racing finalization cannot corrupt a sealed
// session.
func (s *RecordingSession) AddGesture(g RecordedGesture) {
	if s.State != SessionStateRecording {
		return
	}
	s.Gestures = append(s.Gestures, g)
}

// AddGeneration appends a generation event under the same rules as AddGesture.
func (s *RecordingSession) AddGeneration(g RecordedGeneration) {
	if s.State != SessionStateRecording {
		return
	}
	s.Generations = append(s.Generations, g)
}

// IsStopped reports whether the session has been finalized.
func (s *RecordingSession) IsStopped() bool { return s.State == SessionStateStopped }

// EventCount returns the total number of recorded events across both streams.
func (s *RecordingSession) EventCount() int { return len(s.Gestures) + len(s.Generations) }

// Clone returns a deep copy of the session safe for independent mutation.
func (s *RecordingSession) Clone() *RecordingSession {
	clone := &RecordingSession{
		ID:         s.ID,
		Metadata:   s.Metadata,
		DurationMs: s.DurationMs,
		State:      s.State,
	}
	if s.Gestures != nil {
		clone.Gestures = make([]RecordedGesture, len(s.Gestures))
		for i, g := range s.Gestures {
			clone.Gestures[i] = g.Clone()
		}
	}
	if s.Generations != nil {
		clone.Generations = make([]RecordedGeneration, len(s.Generations))
		copy(clone.Generations, s.Generations)
	}
	return clone
}
