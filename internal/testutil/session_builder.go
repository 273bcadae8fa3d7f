package testutil

import (
	"fmt"
	"time"

	"github.com/aircanvas/aircanvas/core"
)

// SessionBuilder helps construct finalized sessions with fluent chaining for
// tests. Example:
//
//	sess := NewSessionBuilder("sess-1").
//		GestureAt(core.GesturePinch, 10).
//		GenerationAt("req-1", 40).
//		Build()
type SessionBuilder struct {
	id          string
	gestures    []core.RecordedGesture
	generations []core.RecordedGeneration
	durationMs  float64
	hasDuration bool
	state       core.SessionState
	clientInfo  string
	recordedAt  time.Time
}

// NewSessionBuilder creates a builder for a stopped session with the given id.
// Use chainable methods then call Build.
func NewSessionBuilder(id string) *SessionBuilder {
	return &SessionBuilder{
		id:         id,
		state:      core.SessionStateStopped,
		clientInfo: "testutil/1.0",
		recordedAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

// GestureAt appends a synthetic gesture with a full landmark set (chainable).
func (b *SessionBuilder) GestureAt(t core.GestureType, tsMs float64) *SessionBuilder {
	b.gestures = append(b.gestures, core.RecordedGesture{
		Type:        t,
		Landmarks:   Landmarks21(),
		Handedness:  core.HandednessRight,
		TimestampMs: tsMs,
	})
	return b
}

// Gesture appends a fully specified gesture (chainable).
func (b *SessionBuilder) Gesture(g core.RecordedGesture) *SessionBuilder {
	b.gestures = append(b.gestures, g)
	return b
}

// GenerationAt appends a synthetic generation event (chainable).
func (b *SessionBuilder) GenerationAt(requestID string, tsMs float64) *SessionBuilder {
	b.generations = append(b.generations, core.RecordedGeneration{
		ImageURL:       fmt.Sprintf("https://images.invalid/%s.png", requestID),
		PromptSnapshot: "a test prompt",
		Seed:           7,
		RequestID:      requestID,
		TimestampMs:    tsMs,
	})
	return b
}

// Generation appends a fully specified generation event (chainable).
func (b *SessionBuilder) Generation(g core.RecordedGeneration) *SessionBuilder {
	b.generations = append(b.generations, g)
	return b
}

// Duration overrides the session duration; without it Build uses the last
// event timestamp (chainable).
func (b *SessionBuilder) Duration(ms float64) *SessionBuilder {
	b.durationMs = ms
	b.hasDuration = true
	return b
}

// Recording marks the built session as still recording (chainable).
func (b *SessionBuilder) Recording() *SessionBuilder {
	b.state = core.SessionStateRecording
	return b
}

// Build returns a *core.RecordingSession with pre-populated event streams.
func (b *SessionBuilder) Build() *core.RecordingSession {
	s := core.NewRecordingSession(b.id, b.clientInfo, b.recordedAt)
	s.Gestures = append(s.Gestures, b.gestures...)
	s.Generations = append(s.Generations, b.generations...)

	s.DurationMs = b.durationMs
	if !b.hasDuration {
		for _, g := range s.Gestures {
			if g.TimestampMs > s.DurationMs {
				s.DurationMs = g.TimestampMs
			}
		}
		for _, g := range s.Generations {
			if g.TimestampMs > s.DurationMs {
				s.DurationMs = g.TimestampMs
			}
		}
	}

	s.State = b.state
	return s
}

// Landmarks21 returns a deterministic full hand landmark set.
func Landmarks21() []core.Landmark {
	points := make([]core.Landmark, core.HandLandmarkCount)
	for i := range points {
		points[i] = core.Landmark{
			X: 0.10 + 0.02*float64(i),
			Y: 0.60 - 0.01*float64(i),
			Z: -0.02,
		}
	}
	return points
}
