// Package prompt models the structured generation parameters a performer
// steers with hand gestures, and the refiners that polish the rendered text
// before it reaches an image generator.
//
// A Prompt is a small value type. Gesture-driven updates go through
// ApplyGesture, which returns a new Prompt and never mutates its input, so
// the studio can keep the prompt state for a live run and a replayed run
// strictly separate.
//
// Refiner implementations rewrite rendered prompt text. StaticRefiner
// decorates locally; the anthropic subpackage delegates to Claude.
package prompt
