// Package openai provides an implementation of generation.Generator using the
// OpenAI Images API. It adapts AirCanvas's normalized Request/Result
// structures into the SDK's parameter format and back.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"

	"github.com/aircanvas/aircanvas/generation"
	"github.com/aircanvas/aircanvas/internal/util"
)

// Options configure the OpenAI image generation adapter.
// Fields mirror a subset of Images API parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model string
	Size  string
}

// Generator wraps the OpenAI Images API behind the generic generation.Generator interface.
type Generator struct {
	client *openai.Client
	opts   Options
}

// NewGenerator creates a new OpenAI generator using the official client
func NewGenerator(optFns ...func(o *Options)) *Generator {
	client := openai.NewClient()
	return NewGeneratorFromClient(&client, optFns...)
}

// NewGeneratorFromClient creates a new OpenAI generator from an existing client
func NewGeneratorFromClient(client *openai.Client, optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model: openai.ImageModelDallE3,
		Size:  string(openai.ImageGenerateParamsSize1024x1024),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Generator{client: client, opts: opts}
}

// Generate implements generation.Generator. The request seed is echoed into
// the result for provenance; the Images API itself is not seedable.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	params := openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          g.opts.Model,
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
		Size:           openai.ImageGenerateParamsSize(g.opts.Size),
	}
	if req.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(req.Size)
	}

	resp, err := g.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no images returned")
	}

	img := resp.Data[0]
	prompt := req.Prompt
	if img.RevisedPrompt != "" {
		prompt = img.RevisedPrompt
	}
	return &generation.Result{
		RequestID:      util.NewID(),
		ImageURL:       img.URL,
		PromptSnapshot: prompt,
		Seed:           req.Seed,
		CompletedAt:    time.Now(),
	}, nil
}

// Info returns metadata describing this OpenAI generator implementation.
func (g *Generator) Info() generation.Info {
	return generation.Info{
		Name:     g.opts.Model,
		Provider: "openai",
	}
}
