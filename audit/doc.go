// Package audit inspects recorded sessions for structural problems and
// verifies that they replay faithfully.
//
// Inspect performs static checks on a session: identity, lifecycle state,
// timestamp ordering and bounds. VerifyReplay goes further and replays the
// session through the playback engine against a manual clock, confirming
// that every event is delivered exactly once in timeline order and that the
// run completes. Both are deterministic and safe to run in CI.
package audit
