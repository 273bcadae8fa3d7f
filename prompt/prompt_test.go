package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aircanvas/aircanvas/core"
)

func TestPrompt_Render(t *testing.T) {
	p := Prompt{
		Subject:   "a koi pond at night",
		Style:     "watercolor",
		Palette:   "neon",
		Intensity: 0.75,
		Extras:    []string{"sharp focus"},
	}
	assert.Equal(t, "a koi pond at night, watercolor, neon palette, intensity 75%, sharp focus", p.Render())

	minimal := Prompt{Subject: "  a koi pond  "}
	assert.Equal(t, "a koi pond, intensity 0%", minimal.Render())
}

func TestPrompt_Validate(t *testing.T) {
	require.NoError(t, Prompt{Subject: "a koi pond", Intensity: 0.5}.Validate())

	tests := []struct {
		name string
		p    Prompt
	}{
		{"empty subject", Prompt{Intensity: 0.5}},
		{"blank subject", Prompt{Subject: "   "}},
		{"negative intensity", Prompt{Subject: "x", Intensity: -0.1}},
		{"intensity above one", Prompt{Subject: "x", Intensity: 1.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.p.Validate(), core.ErrInvalidArgument)
		})
	}
}

func TestPrompt_Clone(t *testing.T) {
	p := Prompt{Subject: "a koi pond", Extras: []string{"sharp focus"}}

	clone := p.Clone()
	clone.Extras[0] = "soft focus"
	clone.Subject = "something else"

	assert.Equal(t, "a koi pond", p.Subject)
	assert.Equal(t, []string{"sharp focus"}, p.Extras)
}

func pinchLandmarks(thumb, index core.Landmark) []core.Landmark {
	lm := make([]core.Landmark, core.HandLandmarkCount)
	lm[core.LandmarkThumbTip] = thumb
	lm[core.LandmarkIndexTip] = index
	return lm
}

func TestApplyGesture_PinchSetsIntensityFromDistance(t *testing.T) {
	base := Prompt{Subject: "a koi pond", Intensity: 0.3}

	tight := ApplyGesture(base, core.RecordedGesture{
		Type:      core.GesturePinch,
		Landmarks: pinchLandmarks(core.Landmark{X: 0.5, Y: 0.5}, core.Landmark{X: 0.5, Y: 0.5}),
	})
	assert.Equal(t, 1.0, tight.Intensity)

	mid := ApplyGesture(base, core.RecordedGesture{
		Type:      core.GesturePinch,
		Landmarks: pinchLandmarks(core.Landmark{X: 0.5, Y: 0.5}, core.Landmark{X: 0.5, Y: 0.625}),
	})
	assert.InDelta(t, 0.5, mid.Intensity, 1e-9)

	wide := ApplyGesture(base, core.RecordedGesture{
		Type:      core.GesturePinch,
		Landmarks: pinchLandmarks(core.Landmark{X: 0.2, Y: 0.5}, core.Landmark{X: 0.6, Y: 0.5}),
	})
	assert.Equal(t, 0.0, wide.Intensity)

	// Too few landmarks to measure: intensity stays where it was.
	short := ApplyGesture(base, core.RecordedGesture{
		Type:      core.GesturePinch,
		Landmarks: []core.Landmark{{X: 0.5, Y: 0.5}},
	})
	assert.Equal(t, 0.3, short.Intensity)
}

func TestApplyGesture_FistDropsIntensity(t *testing.T) {
	got := ApplyGesture(Prompt{Subject: "a koi pond", Intensity: 0.9}, core.RecordedGesture{Type: core.GestureFist})
	assert.Zero(t, got.Intensity)
}

func TestApplyGesture_OpenPalmClearsExtras(t *testing.T) {
	base := Prompt{Subject: "a koi pond", Extras: []string{"sharp focus", "film grain"}}
	got := ApplyGesture(base, core.RecordedGesture{Type: core.GestureOpenPalm})
	assert.Nil(t, got.Extras)
	assert.Equal(t, []string{"sharp focus", "film grain"}, base.Extras)
}

func TestApplyGesture_PointAddsExtraOnce(t *testing.T) {
	base := Prompt{Subject: "a koi pond"}

	once := ApplyGesture(base, core.RecordedGesture{Type: core.GesturePoint})
	assert.Equal(t, []string{"sharp focus"}, once.Extras)

	twice := ApplyGesture(once, core.RecordedGesture{Type: core.GesturePoint})
	assert.Equal(t, []string{"sharp focus"}, twice.Extras)
}

func TestApplyGesture_SwipesCyclePalette(t *testing.T) {
	base := Prompt{Subject: "a koi pond"}

	right := ApplyGesture(base, core.RecordedGesture{Type: core.GestureSwipeRight})
	assert.Equal(t, "vivid", right.Palette)

	again := ApplyGesture(right, core.RecordedGesture{Type: core.GestureSwipeRight})
	assert.Equal(t, "pastel", again.Palette)

	back := ApplyGesture(again, core.RecordedGesture{Type: core.GestureSwipeLeft})
	assert.Equal(t, "vivid", back.Palette)

	// The cycle wraps in both directions.
	last := ApplyGesture(Prompt{Subject: "x", Palette: Palettes[len(Palettes)-1]}, core.RecordedGesture{Type: core.GestureSwipeRight})
	assert.Equal(t, Palettes[0], last.Palette)

	fromEmptyLeft := ApplyGesture(base, core.RecordedGesture{Type: core.GestureSwipeLeft})
	assert.Equal(t, Palettes[len(Palettes)-1], fromEmptyLeft.Palette)

	// A palette outside the cycle re-enters at the nearest end.
	custom := ApplyGesture(Prompt{Subject: "x", Palette: "sunset"}, core.RecordedGesture{Type: core.GestureSwipeRight})
	assert.Equal(t, Palettes[0], custom.Palette)
}

func TestApplyGesture_UnknownKindPassesThrough(t *testing.T) {
	base := Prompt{Subject: "a koi pond", Palette: "neon", Intensity: 0.4}
	got := ApplyGesture(base, core.RecordedGesture{Type: "thumbs_up"})
	assert.Equal(t, base, got)
}

func TestApplyGesture_NeverMutatesInput(t *testing.T) {
	base := Prompt{Subject: "a koi pond", Intensity: 0.4, Extras: []string{"film grain"}}

	_ = ApplyGesture(base, core.RecordedGesture{Type: core.GesturePoint})
	_ = ApplyGesture(base, core.RecordedGesture{Type: core.GestureFist})
	_ = ApplyGesture(base, core.RecordedGesture{Type: core.GestureOpenPalm})

	assert.Equal(t, Prompt{Subject: "a koi pond", Intensity: 0.4, Extras: []string{"film grain"}}, base)
}

func TestStaticRefiner(t *testing.T) {
	passthrough, err := StaticRefiner{}.Refine(context.Background(), "a koi pond, intensity 40%")
	require.NoError(t, err)
	assert.Equal(t, "a koi pond, intensity 40%", passthrough)

	decorated, err := StaticRefiner{Prefix: "masterpiece:", Suffix: "8k render"}.Refine(context.Background(), "a koi pond")
	require.NoError(t, err)
	assert.Equal(t, "masterpiece: a koi pond, 8k render", decorated)
}
