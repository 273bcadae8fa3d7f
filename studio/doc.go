// Package studio implements the live capture orchestration layer for AirCanvas.
//
// The Studio serves as the central coordination hub for a performance: it
// pulls tracked hand frames from a source, classifies them into gestures,
// applies each gesture to the prompt state, and fires image generation when
// the trigger gesture is recognized. Everything that happens is recorded
// through the session recorder and forwarded to the AR scene, so a finished
// run yields a session that replays into the same composition.
//
// # Responsibilities (abridged)
//   - Frame classification & gesture capture
//   - Prompt state transitions and generation triggering
//   - Generation call budgeting (CallLimiter)
//   - Session sealing, archiving and catalog indexing
//
// See studio.go for the operational implementation details.
package studio
