package main

import (
	"context"
	"fmt"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/aircanvas/aircanvas/config"
	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/generation"
	genopenai "github.com/aircanvas/aircanvas/generation/openai"
	"github.com/aircanvas/aircanvas/prompt"
	promptanthropic "github.com/aircanvas/aircanvas/prompt/anthropic"
	"github.com/aircanvas/aircanvas/studio"
	"github.com/aircanvas/aircanvas/tracking"
)

func newDemoCommand(ctx *commandContext) *cobra.Command {
	var subject string
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted studio performance and store the session",
		Long: "Demo drives the full capture pipeline with a scripted hand\n" +
			"choreography: pinches tune intensity, a swipe picks a palette and\n" +
			"each open palm releases an image through the configured generator\n" +
			"(mock by default). The sealed session lands in the session store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.store()
			if err != nil {
				return err
			}

			basePrompt := prompt.Prompt{
				Subject:   cfg.Studio.Subject,
				Style:     cfg.Studio.Style,
				Intensity: cfg.Studio.Intensity,
			}
			if subject != "" {
				basePrompt.Subject = subject
			}

			out := cmd.OutOrStdout()
			performer := studio.New(func(o *studio.Options) {
				o.Generator = buildGenerator(cfg)
				o.Refiner = buildRefiner(cfg)
				o.Archive = store
				o.BasePrompt = basePrompt
				o.TriggerGesture = core.GestureType(cfg.Studio.TriggerGesture)
				o.MaxGenerations = cfg.Studio.MaxGenerations
				o.Seed = seed
				o.Logger = ctx.logger()
				o.Callbacks = studio.Callbacks{
					OnGesture: func(g core.RecordedGesture) {
						fmt.Fprintf(out, "%8.0f ms  gesture  %s\n", g.TimestampMs, g.Type)
					},
					OnGeneration: func(g core.RecordedGeneration) {
						fmt.Fprintf(out, "%8.0f ms  image    %s  %s\n", g.TimestampMs, g.RequestID, g.PromptSnapshot)
					},
					OnError: func(err error) {
						fmt.Fprintf(out, "            warning  %v\n", err)
					},
				}
			})

			fmt.Fprintf(out, "Performing %q with the %s generator...\n", basePrompt.Subject, cfg.Generator.Provider)
			source := &pacedSource{frames: choreography(), gap: frameGap}
			sealed, err := performer.Run(cmd.Context(), source)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\nSealed session %s: %d gestures, %d images, %s\n",
				sealed.ID, len(sealed.Gestures), len(sealed.Generations), formatDurationMs(sealed.DurationMs))
			fmt.Fprintf(out, "Stored in %s\n", store.Dir())
			fmt.Fprintf(out, "Replay it with: aircanvas replay %s\n", sealed.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Base prompt subject (defaults to the configured subject)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Base seed for generation requests")
	return cmd
}

func buildGenerator(cfg *config.Config) generation.Generator {
	switch cfg.Generator.Provider {
	case "openai":
		return genopenai.NewGenerator(func(o *genopenai.Options) {
			if cfg.Generator.Model != "" {
				o.Model = cfg.Generator.Model
			}
			o.Size = cfg.Generator.Size
		})
	default:
		return generation.NewMockGenerator()
	}
}

func buildRefiner(cfg *config.Config) prompt.Refiner {
	switch cfg.Refiner.Provider {
	case "anthropic":
		return promptanthropic.NewRefiner(func(o *promptanthropic.Options) {
			if cfg.Refiner.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Refiner.Model)
			}
		})
	default:
		return prompt.StaticRefiner{Prefix: cfg.Refiner.Prefix, Suffix: cfg.Refiner.Suffix}
	}
}

// frameGap is the spacing between demo frames, slow enough that pose changes
// never read as swipes and fast enough to keep the demo under two seconds.
const frameGap = 150 * time.Millisecond

// pacedSource emits scripted frames at a fixed real-time cadence so the
// recorded timeline matches the frame capture times.
type pacedSource struct {
	frames []tracking.Frame
	gap    time.Duration
}

func (p *pacedSource) Frames(ctx context.Context) (<-chan tracking.Frame, error) {
	out := make(chan tracking.Frame)
	go func() {
		defer close(out)
		for i, f := range p.frames {
			if i > 0 {
				select {
				case <-time.After(p.gap):
				case <-ctx.Done():
					return
				}
			}
			select {
			case out <- f:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// choreography builds the demo's frame script: settle, three tightening
// pinches, a point, a right swipe, then two palm releases around a fist reset.
func choreography() []tracking.Frame {
	base := time.Now()
	at := func(step int) time.Time { return base.Add(time.Duration(step) * frameGap) }

	return []tracking.Frame{
		demoFrame(neutralHand(), at(0)),
		demoFrame(pinchHand(0.04), at(1)),
		demoFrame(pinchHand(0.02), at(2)),
		demoFrame(pinchHand(0.005), at(3)),
		demoFrame(pointHand(), at(4)),
		demoFrame(indexAt(0.30), at(5)),
		demoFrame(indexAt(0.64), at(6)),
		demoFrame(palmHand(), at(7)),
		demoFrame(fistHand(), at(8)),
		demoFrame(pinchHand(0.02), at(9)),
		demoFrame(palmHand(), at(10)),
	}
}

func demoFrame(landmarks []core.Landmark, capturedAt time.Time) tracking.Frame {
	return tracking.Frame{
		Landmarks:  landmarks,
		Handedness: core.HandednessRight,
		Confidence: 0.9,
		CapturedAt: capturedAt,
	}
}

// handWith fills a full landmark set with a resting hand and applies
// overrides for the landmarks that define the pose.
func handWith(points map[int]core.Landmark) []core.Landmark {
	landmarks := make([]core.Landmark, core.HandLandmarkCount)
	for i := range landmarks {
		landmarks[i] = core.Landmark{X: 0.5, Y: 0.65}
	}
	for idx, lm := range points {
		landmarks[idx] = lm
	}
	return landmarks
}

func neutralHand() []core.Landmark {
	return handWith(map[int]core.Landmark{
		core.LandmarkWrist:     {X: 0.5, Y: 0.8},
		core.LandmarkThumbTip:  {X: 0.35, Y: 0.62},
		core.LandmarkIndexTip:  {X: 0.47, Y: 0.5},
		core.LandmarkMiddleTip: {X: 0.5, Y: 0.5},
		core.LandmarkRingTip:   {X: 0.53, Y: 0.5},
		core.LandmarkPinkyTip:  {X: 0.56, Y: 0.52},
	})
}

// pinchHand puts the thumb and index tips gap apart.
func pinchHand(gap float64) []core.Landmark {
	return handWith(map[int]core.Landmark{
		core.LandmarkWrist:    {X: 0.5, Y: 0.8},
		core.LandmarkThumbTip: {X: 0.48, Y: 0.52},
		core.LandmarkIndexTip: {X: 0.48 + gap, Y: 0.52},
	})
}

func palmHand() []core.Landmark {
	return handWith(map[int]core.Landmark{
		core.LandmarkWrist:     {X: 0.5, Y: 0.85},
		core.LandmarkThumbTip:  {X: 0.3, Y: 0.6},
		core.LandmarkIndexTip:  {X: 0.45, Y: 0.4},
		core.LandmarkMiddleTip: {X: 0.5, Y: 0.38},
		core.LandmarkRingTip:   {X: 0.55, Y: 0.4},
		core.LandmarkPinkyTip:  {X: 0.62, Y: 0.45},
	})
}

func fistHand() []core.Landmark {
	return handWith(map[int]core.Landmark{
		core.LandmarkWrist:     {X: 0.5, Y: 0.8},
		core.LandmarkThumbTip:  {X: 0.6, Y: 0.64},
		core.LandmarkIndexTip:  {X: 0.52, Y: 0.68},
		core.LandmarkMiddleTip: {X: 0.5, Y: 0.67},
		core.LandmarkRingTip:   {X: 0.48, Y: 0.68},
		core.LandmarkPinkyTip:  {X: 0.46, Y: 0.7},
	})
}

func pointHand() []core.Landmark {
	return handWith(map[int]core.Landmark{
		core.LandmarkWrist:     {X: 0.5, Y: 0.8},
		core.LandmarkThumbTip:  {X: 0.42, Y: 0.65},
		core.LandmarkIndexTip:  {X: 0.5, Y: 0.35},
		core.LandmarkMiddleTip: {X: 0.5, Y: 0.62},
		core.LandmarkRingTip:   {X: 0.53, Y: 0.62},
		core.LandmarkPinkyTip:  {X: 0.56, Y: 0.63},
	})
}

// indexAt moves only the index tip of a resting hand, the shape the swipe
// detector keys on.
func indexAt(x float64) []core.Landmark {
	return handWith(map[int]core.Landmark{
		core.LandmarkWrist:     {X: 0.5, Y: 0.8},
		core.LandmarkThumbTip:  {X: 0.35, Y: 0.62},
		core.LandmarkIndexTip:  {X: x, Y: 0.5},
		core.LandmarkMiddleTip: {X: 0.5, Y: 0.5},
		core.LandmarkRingTip:   {X: 0.53, Y: 0.5},
		core.LandmarkPinkyTip:  {X: 0.56, Y: 0.52},
	})
}
