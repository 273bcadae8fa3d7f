// Package recorder captures gesture and generation events into replayable
// sessions.
//
// A SessionRecorder tracks one recording at a time. Starting is idempotent,
// recording calls are silent no-ops while inactive, and stopping seals the
// session so it can be replayed, exported, or archived:
//
//	rec := recorder.New()
//	rec.Start()
//	rec.RecordGesture(core.GesturePinch, landmarks)
//	session, err := rec.Stop()
//
// The Registry hands out recorders for larger applications: New creates
// independent recorders, Shared lazily creates a single recorder that every
// caller observes. Construct one registry during wiring and pass it down
// explicitly.
package recorder
