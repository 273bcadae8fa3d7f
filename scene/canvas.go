package scene

import (
	"fmt"
	"sync"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/logging"
)

// Pointer is the current anchor position in normalized coordinates.
// Active reports whether any gesture has steered it yet.
type Pointer struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
}

// Placement is one generated image anchored in the scene.
type Placement struct {
	RequestID  string  `json:"request_id"`
	ImageURL   string  `json:"image_url"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	PlacedAtMs float64 `json:"placed_at_ms"`
}

// Snapshot is a comparable view of the composition. Two canvases fed the
// same event stream produce equal snapshots.
type Snapshot struct {
	Pointer         Pointer     `json:"pointer"`
	Placements      []Placement `json:"placements"`
	GestureCount    int         `json:"gesture_count"`
	GenerationCount int         `json:"generation_count"`
}

// Options configure a Canvas.
type Options struct {
	// Logger receives per-event debug output. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Canvas accumulates scene state from a timeline event stream. Safe for
// concurrent use.
type Canvas struct {
	logger logging.Logger

	mu          sync.Mutex
	pointer     Pointer
	placements  []Placement
	gestures    int
	generations int
}

// NewCanvas creates an empty canvas.
func NewCanvas(optFns ...func(o *Options)) *Canvas {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Canvas{logger: opts.Logger}
}

// Apply consumes one timeline event. It has the core.EventHandler signature,
// so a canvas can sit directly behind the recorder or the playback engine.
func (c *Canvas) Apply(ev core.TimelineEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case core.EventKindGesture:
		if ev.Gesture == nil {
			return fmt.Errorf("%w: gesture event without payload", core.ErrInvalidArgument)
		}
		c.gestures++
		c.trackPointerLocked(ev.Gesture)
		return nil
	case core.EventKindGeneration:
		if ev.Generation == nil {
			return fmt.Errorf("%w: generation event without payload", core.ErrInvalidArgument)
		}
		c.generations++
		c.placeLocked(ev.Generation)
		return nil
	default:
		return fmt.Errorf("%w: unknown event kind %q", core.ErrInvalidArgument, ev.Kind)
	}
}

// trackPointerLocked follows the index fingertip. Gestures captured with a
// landmark set too short to include the tip leave the pointer where it was.
func (c *Canvas) trackPointerLocked(g *core.RecordedGesture) {
	if len(g.Landmarks) <= core.LandmarkIndexTip {
		return
	}
	tip := g.Landmarks[core.LandmarkIndexTip]
	c.pointer = Pointer{X: tip.X, Y: tip.Y, Active: true}
	c.logger.Debug("Pointer moved", "x", tip.X, "y", tip.Y, "gesture", string(g.Type))
}

// placeLocked anchors a generated image at the current pointer, or at the
// frame center when no gesture has steered the pointer yet.
func (c *Canvas) placeLocked(g *core.RecordedGeneration) {
	x, y := 0.5, 0.5
	if c.pointer.Active {
		x, y = c.pointer.X, c.pointer.Y
	}
	c.placements = append(c.placements, Placement{
		RequestID:  g.RequestID,
		ImageURL:   g.ImageURL,
		X:          x,
		Y:          y,
		PlacedAtMs: g.TimestampMs,
	})
	c.logger.Debug("Image placed", "request_id", g.RequestID, "x", x, "y", y)
}

// Pointer returns the current pointer state.
func (c *Canvas) Pointer() Pointer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pointer
}

// Placements returns a copy of all placements in placement order.
func (c *Canvas) Placements() []Placement {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Placement, len(c.placements))
	copy(out, c.placements)
	return out
}

// Snapshot returns a comparable view of the composition.
func (c *Canvas) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	placements := make([]Placement, len(c.placements))
	copy(placements, c.placements)
	return Snapshot{
		Pointer:         c.pointer,
		Placements:      placements,
		GestureCount:    c.gestures,
		GenerationCount: c.generations,
	}
}

// Reset clears the composition back to an empty canvas.
func (c *Canvas) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pointer = Pointer{}
	c.placements = nil
	c.gestures = 0
	c.generations = 0
}
