package studio

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/generation"
	"github.com/aircanvas/aircanvas/library"
	"github.com/aircanvas/aircanvas/logging"
	"github.com/aircanvas/aircanvas/prompt"
	"github.com/aircanvas/aircanvas/recorder"
	"github.com/aircanvas/aircanvas/scene"
	"github.com/aircanvas/aircanvas/session"
	"github.com/aircanvas/aircanvas/tracking"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Recorder captures the session while the studio runs.
	Recorder *recorder.SessionRecorder
	// Classifier turns tracked frames into gestures.
	Classifier *tracking.Classifier
	// Generator produces images when the trigger gesture fires.
	Generator generation.Generator
	// Refiner polishes rendered prompts before generation.
	Refiner prompt.Refiner
	// Scene receives every recorded event.
	Scene *scene.Canvas
	// Archive persists the sealed session after the run.
	Archive core.SessionArchive
	// Catalog indexes the sealed session for search.
	Catalog core.Catalog
	// BasePrompt seeds the gesture-driven prompt state.
	BasePrompt prompt.Prompt
	// TriggerGesture fires a generation when classified.
	TriggerGesture core.GestureType
	// MaxGenerations limits generation calls per run. 0 means unlimited.
	MaxGenerations int
	// Seed is recorded with the first generation; later calls increment it.
	Seed int64
	// Callbacks surface studio activity to embedders.
	Callbacks Callbacks
	// Logging services.
	Logger logging.Logger
}

// Callbacks deliver studio activity to embedders (UI overlays, metrics).
// They run synchronously on the run goroutine; keep them fast.
type Callbacks struct {
	OnGesture    func(g core.RecordedGesture)
	OnGeneration func(g core.RecordedGeneration)
	OnError      func(err error)
}

// Studio coordinates a live capture run: classification, prompt state,
// generation, recording and scene updates. A Studio is built once and may
// run several performances; each Run seals and returns its own session.
type Studio struct {
	recorder   *recorder.SessionRecorder
	classifier *tracking.Classifier
	generator  generation.Generator
	refiner    prompt.Refiner
	canvas     *scene.Canvas
	archive    core.SessionArchive
	catalog    core.Catalog
	basePrompt prompt.Prompt
	trigger    core.GestureType
	maxCalls   int
	seed       int64
	callbacks  Callbacks
	logger     logging.Logger
}

// New constructs a Studio with optional overrides.
func New(optFns ...func(o *Options)) *Studio {
	opts := Options{
		Recorder:       recorder.New(),
		Classifier:     tracking.NewClassifier(),
		Generator:      generation.NewMockGenerator(),
		Refiner:        prompt.StaticRefiner{},
		Scene:          scene.NewCanvas(),
		Archive:        session.NewInMemoryArchive(),
		Catalog:        library.NewInMemoryCatalog(),
		BasePrompt:     prompt.Prompt{Subject: "an abstract composition", Intensity: 0.5},
		TriggerGesture: core.GestureOpenPalm,
		MaxGenerations: 25,
		Logger:         logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Studio{
		recorder:   opts.Recorder,
		classifier: opts.Classifier,
		generator:  opts.Generator,
		refiner:    opts.Refiner,
		canvas:     opts.Scene,
		archive:    opts.Archive,
		catalog:    opts.Catalog,
		basePrompt: opts.BasePrompt,
		trigger:    opts.TriggerGesture,
		maxCalls:   opts.MaxGenerations,
		seed:       opts.Seed,
		callbacks:  opts.Callbacks,
		logger:     opts.Logger,
	}
}

// Run drives one performance: it drains the frame source until it closes or
// ctx is cancelled, then seals the recording. Cancellation is the normal way
// to end a live run, so the sealed session is returned without error in both
// cases. The session is archived and indexed before Run returns.
func (s *Studio) Run(ctx context.Context, source tracking.Source) (*core.RecordingSession, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: source must not be nil", core.ErrInvalidArgument)
	}
	if err := s.basePrompt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid base prompt: %w", err)
	}

	frames, err := source.Frames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame source: %w", err)
	}

	limiter := generation.NewCallLimiter(s.maxCalls)
	state := s.basePrompt.Clone()

	s.recorder.Start()
	s.logger.Info("Studio run started",
		"trigger", string(s.trigger),
		"generator", s.generator.Info().Name,
		"max_generations", s.maxCalls)

	for {
		select {
		case <-ctx.Done():
			return s.seal()
		case frame, ok := <-frames:
			if !ok {
				return s.seal()
			}
			state = s.handleFrame(ctx, frame, state, limiter)
		}
	}
}

// handleFrame classifies one frame and applies its consequences. Returns the
// updated prompt state.
func (s *Studio) handleFrame(
	ctx context.Context,
	frame tracking.Frame,
	state prompt.Prompt,
	limiter *generation.CallLimiter,
) prompt.Prompt {
	detection, ok := s.classifier.Classify(frame)
	if !ok {
		return state
	}

	gesture, recorded := s.recorder.RecordGesture(detection.Type, frame.Landmarks, func(o *recorder.GestureOptions) {
		o.Handedness = frame.Handedness
		o.Metadata = map[string]string{
			"confidence": strconv.FormatFloat(detection.Confidence, 'f', 4, 64),
			"detector":   detection.Detector,
		}
	})
	if !recorded {
		return state
	}

	s.forward(core.TimelineEvent{Kind: core.EventKindGesture, Gesture: &gesture})
	if s.callbacks.OnGesture != nil {
		s.callbacks.OnGesture(gesture)
	}

	state = prompt.ApplyGesture(state, gesture)

	if gesture.Type == s.trigger {
		s.generate(ctx, state, limiter)
	}
	return state
}

// generate runs the refine + generate pipeline for the current prompt state.
// Failures are reported and skipped; the run keeps going.
func (s *Studio) generate(ctx context.Context, state prompt.Prompt, limiter *generation.CallLimiter) {
	if err := limiter.Increment(); err != nil {
		s.fail(fmt.Errorf("generation skipped: %w", err))
		return
	}

	rendered := state.Render()
	refined, err := s.refiner.Refine(ctx, rendered)
	if err != nil {
		// Refinement is polish, not a gate. Fall back to the rendered text.
		s.fail(fmt.Errorf("failed to refine prompt: %w", err))
		refined = rendered
	}

	start := time.Now()
	result, err := s.generator.Generate(ctx, generation.Request{
		Prompt: refined,
		Seed:   s.seed + int64(limiter.Count()-1),
	})
	if err != nil {
		s.fail(fmt.Errorf("generation failed: %w", err))
		return
	}
	s.logger.Info("Generation completed",
		"request_id", result.RequestID,
		"elapsed", time.Since(start))

	gen, recorded := s.recorder.RecordGeneration(result.Recorded())
	if !recorded {
		return
	}

	s.forward(core.TimelineEvent{Kind: core.EventKindGeneration, Generation: &gen})
	if s.callbacks.OnGeneration != nil {
		s.callbacks.OnGeneration(gen)
	}
}

// forward hands one recorded event to the scene. Scene errors belong to the
// single delivery that produced them and never abort the run.
func (s *Studio) forward(ev core.TimelineEvent) {
	if s.canvas == nil {
		return
	}
	if err := s.canvas.Apply(ev); err != nil {
		s.fail(fmt.Errorf("scene rejected event: %w", err))
	}
}

func (s *Studio) fail(err error) {
	s.logger.Warn("Studio run issue", "error", err.Error())
	if s.callbacks.OnError != nil {
		s.callbacks.OnError(err)
	}
}

// seal stops the recorder, persists the session and indexes it.
func (s *Studio) seal() (*core.RecordingSession, error) {
	sealed, err := s.recorder.Stop()
	if err != nil {
		return nil, fmt.Errorf("failed to stop recording: %w", err)
	}

	if s.archive != nil {
		if err := s.archive.Save(sealed); err != nil {
			return sealed, fmt.Errorf("failed to archive session: %w", err)
		}
	}
	if s.catalog != nil {
		if err := s.catalog.Add(sealed); err != nil {
			// The search index is advisory; losing an entry is not fatal.
			s.logger.Warn("Failed to index session", "session_id", sealed.ID, "error", err.Error())
		}
	}

	s.logger.Info("Studio run finished",
		"session_id", sealed.ID,
		"gestures", len(sealed.Gestures),
		"generations", len(sealed.Generations),
		"duration_ms", sealed.DurationMs)
	return sealed, nil
}
