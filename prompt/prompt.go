package prompt

import (
	"fmt"
	"math"
	"strings"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/util"
)

// Palettes is the ordered palette cycle that swipe gestures walk through.
var Palettes = []string{"vivid", "pastel", "monochrome", "neon", "earthen"}

// pinchRange is the thumb-to-index distance (normalized coordinates) at which
// a pinch reads as fully open, mapping to intensity zero.
const pinchRange = 0.25

// Prompt is the structured parameter state behind each generated image.
// The zero value is not renderable; Subject must be set.
type Prompt struct {
	Subject   string   `json:"subject"`
	Style     string   `json:"style,omitempty"`
	Palette   string   `json:"palette,omitempty"`
	Intensity float64  `json:"intensity"` // 0..1
	Extras    []string `json:"extras,omitempty"`
}

// Validate checks that the prompt can be rendered.
func (p Prompt) Validate() error {
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: prompt subject must not be empty", core.ErrInvalidArgument)
	}
	if p.Intensity < 0 || p.Intensity > 1 {
		return fmt.Errorf("%w: intensity must be between 0 and 1, got %f", core.ErrInvalidArgument, p.Intensity)
	}
	return nil
}

// Render produces the deterministic prompt text sent to a generator.
func (p Prompt) Render() string {
	parts := []string{strings.TrimSpace(p.Subject)}
	if p.Style != "" {
		parts = append(parts, p.Style)
	}
	if p.Palette != "" {
		parts = append(parts, p.Palette+" palette")
	}
	parts = append(parts, fmt.Sprintf("intensity %d%%", int(math.Round(p.Intensity*100))))
	parts = append(parts, p.Extras...)
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy safe for independent mutation.
func (p Prompt) Clone() Prompt {
	clone := p
	if p.Extras != nil {
		clone.Extras = make([]string, len(p.Extras))
		copy(clone.Extras, p.Extras)
	}
	return clone
}

// ApplyGesture maps one captured gesture onto the prompt state and returns
// the updated prompt. The input prompt is never mutated, so the same gesture
// stream always produces the same sequence of prompts.
//
//   - pinch sets intensity from the thumb-to-index distance
//   - fist drops intensity to zero
//   - open_palm clears accumulated extras
//   - point adds a "sharp focus" extra
//   - swipe_left / swipe_right cycle through Palettes
//
// Unrecognized gesture kinds leave the prompt unchanged.
func ApplyGesture(p Prompt, g core.RecordedGesture) Prompt {
	switch g.Type {
	case core.GesturePinch:
		out := p.Clone()
		out.Intensity = pinchIntensity(g.Landmarks, p.Intensity)
		return out
	case core.GestureFist:
		out := p.Clone()
		out.Intensity = 0
		return out
	case core.GestureOpenPalm:
		out := p.Clone()
		out.Extras = nil
		return out
	case core.GesturePoint:
		return withExtra(p, "sharp focus")
	case core.GestureSwipeRight:
		out := p.Clone()
		out.Palette = cyclePalette(p.Palette, 1)
		return out
	case core.GestureSwipeLeft:
		out := p.Clone()
		out.Palette = cyclePalette(p.Palette, -1)
		return out
	default:
		return p
	}
}

// pinchIntensity maps the captured thumb-to-index distance onto [0, 1].
// A tight pinch reads as full intensity. Falls back to the current value
// when the landmark set is too short to measure.
func pinchIntensity(landmarks []core.Landmark, current float64) float64 {
	if len(landmarks) <= core.LandmarkIndexTip {
		return current
	}
	dist := util.Distance(landmarks[core.LandmarkThumbTip], landmarks[core.LandmarkIndexTip])
	return util.Clamp01(1 - dist/pinchRange)
}

func withExtra(p Prompt, extra string) Prompt {
	for _, e := range p.Extras {
		if e == extra {
			return p
		}
	}
	out := p.Clone()
	out.Extras = append(out.Extras, extra)
	return out
}

func cyclePalette(current string, step int) string {
	idx := -1
	for i, name := range Palettes {
		if name == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Off-cycle palettes enter the cycle at the nearest end.
		if step > 0 {
			return Palettes[0]
		}
		return Palettes[len(Palettes)-1]
	}
	n := len(Palettes)
	return Palettes[((idx+step)%n+n)%n]
}
