package tracking

import (
	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/logging"
)

// Detector recognizes a single gesture family from tracking frames.
// Implementations may be pure functions of one frame (poses) or keep state
// across frames (swipes).
type Detector interface {
	// Name identifies the detector in logs and gesture metadata.
	Name() string

	// Detect inspects the frame and reports a detection when its gesture is
	// present.
	Detect(frame Frame) (Detection, bool)
}

// Detection is a recognized gesture with a confidence in [0, 1].
type Detection struct {
	Type       core.GestureType
	Confidence float64
	Detector   string
}

// ClassifierOptions configures a Classifier.
type ClassifierOptions struct {
	// Detectors override the default chain. Order matters: detectors run in
	// sequence and the first match wins, so stateful detectors belong early
	// in the chain where every frame reaches them.
	Detectors []Detector

	// Logger for per-frame classification decisions.
	Logger logging.Logger
}

// Classifier runs a detector chain over a frame stream. It is not safe for
// concurrent use; run one classifier per stream so stateful detectors see a
// continuous sequence.
type Classifier struct {
	detectors []Detector
	logger    logging.Logger
}

// NewClassifier creates a classifier with the default detector chain unless
// overridden.
func NewClassifier(optFns ...func(o *ClassifierOptions)) *Classifier {
	opts := ClassifierOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Detectors == nil {
		opts.Detectors = DefaultDetectors()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Classifier{
		detectors: opts.Detectors,
		logger:    opts.Logger,
	}
}

// DefaultDetectors returns the standard chain: swipes lead so fast motion
// outranks static poses, then pinch, fist, open palm, and point.
func DefaultDetectors() []Detector {
	return []Detector{
		NewSwipeDetector(),
		NewPinchDetector(),
		NewFistDetector(),
		NewOpenPalmDetector(),
		NewPointDetector(),
	}
}

// Classify runs the frame through the detector chain. Invalid frames match
// nothing.
func (c *Classifier) Classify(frame Frame) (Detection, bool) {
	if err := frame.Validate(); err != nil {
		c.logger.Debug("Dropping invalid frame", "error", err)
		return Detection{}, false
	}

	for _, d := range c.detectors {
		if det, ok := d.Detect(frame); ok {
			c.logger.Debug("Gesture detected",
				"detector", det.Detector,
				"type", det.Type,
				"confidence", det.Confidence,
			)
			return det, true
		}
	}
	return Detection{}, false
}
