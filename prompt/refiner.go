package prompt

import (
	"context"
	"strings"
)

// Refiner rewrites a rendered prompt before it reaches an image generator.
// Implementations must return the input unchanged rather than an empty
// string when they have nothing to add.
type Refiner interface {
	Refine(ctx context.Context, prompt string) (string, error)
}

// StaticRefiner decorates prompts with fixed prefix and suffix text.
// The zero value passes prompts through unchanged.
type StaticRefiner struct {
	Prefix string
	Suffix string
}

// Refine implements Refiner.
func (r StaticRefiner) Refine(_ context.Context, prompt string) (string, error) {
	out := strings.TrimSpace(prompt)
	if r.Prefix != "" {
		out = r.Prefix + " " + out
	}
	if r.Suffix != "" {
		out = out + ", " + r.Suffix
	}
	return out, nil
}
