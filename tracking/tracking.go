package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/aircanvas/aircanvas/core"
)

// Frame is one sample from a hand tracking pipeline: the landmark set for a
// single detected hand plus capture metadata.
type Frame struct {
	// Landmarks holds the hand model points in normalized coordinates.
	// Frames usually carry core.HandLandmarkCount points, but detectors
	// tolerate other counts and simply skip lookups they cannot make.
	Landmarks []core.Landmark

	// Handedness of the detected hand.
	Handedness core.Handedness

	// Confidence is the tracker's detection confidence in [0, 1].
	Confidence float64

	// CapturedAt is the capture instant, used by motion detectors to compute
	// velocities between consecutive frames.
	CapturedAt time.Time
}

// Validate checks that the frame is usable for classification.
func (f Frame) Validate() error {
	if len(f.Landmarks) == 0 {
		return fmt.Errorf("%w: frame has no landmarks", core.ErrInvalidArgument)
	}
	if f.Confidence < 0 || f.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1, got %f", core.ErrInvalidArgument, f.Confidence)
	}
	switch f.Handedness {
	case core.HandednessLeft, core.HandednessRight, core.HandednessUnknown:
		return nil
	default:
		return fmt.Errorf("%w: handedness must be %q or %q, got %q",
			core.ErrInvalidArgument, core.HandednessLeft, core.HandednessRight, f.Handedness)
	}
}

// Source produces hand tracking frames. Implementations wrap camera
// pipelines, network feeds, or scripted fixtures.
type Source interface {
	// Frames returns a channel of tracking frames in capture order. The
	// channel closes when the source ends or ctx is cancelled.
	Frames(ctx context.Context) (<-chan Frame, error)
}

// ScriptedSource replays a fixed sequence of frames and then closes. It lets
// studio runs and tests drive the full pipeline without a camera.
type ScriptedSource struct {
	frames []Frame
}

// NewScriptedSource creates a source that emits the given frames in order.
func NewScriptedSource(frames ...Frame) *ScriptedSource {
	return &ScriptedSource{frames: frames}
}

// Frames emits the scripted frames on a freshly spawned goroutine.
func (s *ScriptedSource) Frames(ctx context.Context) (<-chan Frame, error) {
	out := make(chan Frame)
	go func() {
		defer close(out)
		for _, f := range s.frames {
			select {
			case out <- f:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
