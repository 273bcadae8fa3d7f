package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/aircanvas/aircanvas/core"
)

// Request captures the normalized input for a single image generation.
type Request struct {
	Prompt string `json:"prompt"`
	Seed   int64  `json:"seed,omitempty"`
	Size   string `json:"size,omitempty"` // e.g. "1024x1024"; provider default when empty
}

// Result is the outcome of a completed generation.
type Result struct {
	RequestID      string    `json:"request_id"`
	ImageURL       string    `json:"image_url"`
	PromptSnapshot string    `json:"prompt_snapshot"` // prompt as the provider resolved it
	Seed           int64     `json:"seed"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Recorded converts the result into the shape stored on a recording session.
// The recorder assigns the timestamp when the event is appended.
func (r *Result) Recorded() core.RecordedGeneration {
	return core.RecordedGeneration{
		ImageURL:       r.ImageURL,
		PromptSnapshot: r.PromptSnapshot,
		Seed:           r.Seed,
		RequestID:      r.RequestID,
	}
}

// Info contains metadata about a generator implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "mock", etc.
}

// Generator is the minimal interface required by the studio and replay
// tooling to drive image generation.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)

	// Info returns information about the generator implementation.
	Info() Info
}

// MockGenerator is a lightweight in‑memory Generator useful for tests &
// examples. Results are deterministic: the n-th call yields request id
// "mock-n" and, unless a canned image was registered for the prompt, an
// image URL derived from that id. Not safe for concurrent use.
type MockGenerator struct {
	info   Info
	images map[string]string
	count  int
	err    error
}

// NewMockGenerator constructs a MockGenerator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		info: Info{
			Name:     "mock-image-model",
			Provider: "mock",
		},
		images: make(map[string]string),
	}
}

// AddImage registers a deterministic canned image URL for an input prompt.
func (g *MockGenerator) AddImage(prompt, url string) { g.images[prompt] = url }

// FailWith makes every subsequent Generate call return err.
func (g *MockGenerator) FailWith(err error) { g.err = err }

// Generate implements Generator.
func (g *MockGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.err != nil {
		return nil, g.err
	}
	if req.Prompt == "" {
		return nil, fmt.Errorf("empty prompt")
	}
	g.count++
	id := fmt.Sprintf("mock-%d", g.count)
	url := g.images[req.Prompt]
	if url == "" {
		url = fmt.Sprintf("https://images.invalid/%s.png", id)
	}
	return &Result{
		RequestID:      id,
		ImageURL:       url,
		PromptSnapshot: req.Prompt,
		Seed:           req.Seed,
		CompletedAt:    time.Now(),
	}, nil
}

// Info implements Generator.
func (g *MockGenerator) Info() Info { return g.info }

// Count returns the number of successful Generate calls.
func (g *MockGenerator) Count() int { return g.count }
