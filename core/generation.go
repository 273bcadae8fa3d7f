package core

// RecordedGeneration is one completed image generation captured during a
// session. PromptSnapshot preserves the exact prompt text sent to the
// generation collaborator so a replayed session can show what produced each
// image without re-rendering prompt state. TimestampMs is milliseconds
// relative to the session start instant, assigned by the recorder.
type RecordedGeneration struct {
	ImageURL       string  `json:"image_url"`
	PromptSnapshot string  `json:"prompt_snapshot"`
	Seed           int64   `json:"seed"`
	RequestID      string  `json:"request_id"`
	TimestampMs    float64 `json:"timestamp_ms"`
}
