// Package anthropic provides a prompt refiner backed by the Anthropic Claude API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/aircanvas/aircanvas/prompt"
)

// defaultInstructions steer the model toward single-line rewrites so the
// refined text can be handed to an image generator verbatim.
const defaultInstructions = "You refine prompts for an image generation model. " +
	"Rewrite the prompt you receive into one vivid, concrete sentence that keeps " +
	"every named subject, palette and intensity cue. Reply with the rewritten prompt only."

// Options configures the Anthropic refiner (model id, temperature, max
// tokens, API key, system instructions). Extend via functional options to
// preserve stability.
type Options struct {
	Model        anthropic.Model
	Temperature  float64
	MaxTokens    int64
	APIKey       string
	Instructions string
}

// Refiner rewrites rendered prompts with the Anthropic Messages API.
type Refiner struct {
	client *anthropic.Client
	opts   Options
}

// Interface compliance (compile-time assertion).
var _ prompt.Refiner = (*Refiner)(nil)

// NewRefiner creates a new Anthropic refiner using the official client
func NewRefiner(optFns ...func(o *Options)) *Refiner {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Refiner{
		client: &client,
		opts:   opts,
	}
}

// NewRefinerFromClient creates a new Anthropic refiner from an existing client
func NewRefinerFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Refiner {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Refiner{
		client: client,
		opts:   opts,
	}
}

func defaultOptions() Options {
	return Options{
		Model:        anthropic.ModelClaude3_5Sonnet20241022,
		Temperature:  0.7,
		MaxTokens:    1024,
		Instructions: defaultInstructions,
	}
}

// Refine implements prompt.Refiner. It sends the rendered prompt as a single
// user message and returns the model's rewrite.
func (r *Refiner) Refine(ctx context.Context, rendered string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       r.opts.Model,
		MaxTokens:   r.opts.MaxTokens,
		Temperature: anthropic.Float(r.opts.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: r.opts.Instructions},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(rendered)),
		},
	}

	resp, err := r.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	refined := strings.TrimSpace(sb.String())
	if refined == "" {
		// A refiner must never hand an empty prompt downstream.
		return rendered, nil
	}
	return refined, nil
}
