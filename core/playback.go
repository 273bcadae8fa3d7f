package core

// PlaybackState is a point-in-time snapshot of a playback engine. Exactly one
// of IsPlaying / IsPaused is set while a run is active; the zero value means
// idle. CurrentTimeMs is the simulated position in the session timeline: it
// advances at Speed session-milliseconds per wall-millisecond while playing,
// freezes while paused and is clamped to the session duration.
type PlaybackState struct {
	IsPlaying     bool
	IsPaused      bool
	CurrentTimeMs float64
	Speed         float64
}
