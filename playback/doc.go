// Package playback replays recorded sessions.
//
// The Engine merges a session's gesture and generation streams into one
// timestamp-ordered timeline and delivers each event to a handler at its
// recorded offset scaled by the run speed. Runs can be paused, resumed, and
// stopped, and starting a new run cancels the previous one. Scheduling goes
// through a core.Clock, so tests drive replays deterministically with a
// manual clock instead of waiting on wall time.
package playback
