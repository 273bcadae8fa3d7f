package tracking

import (
	"math"
	"time"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/util"
)

// PinchDetector fires when the thumb and index fingertips touch.
type PinchDetector struct {
	// MaxDistance is the normalized fingertip distance at or below which a
	// pinch registers.
	MaxDistance float64
}

// NewPinchDetector creates a pinch detector with default thresholds.
func NewPinchDetector() *PinchDetector {
	return &PinchDetector{MaxDistance: 0.05}
}

func (d *PinchDetector) Name() string { return "pinch" }

func (d *PinchDetector) Detect(frame Frame) (Detection, bool) {
	thumb, ok := landmarkAt(frame, core.LandmarkThumbTip)
	if !ok {
		return Detection{}, false
	}
	index, ok := landmarkAt(frame, core.LandmarkIndexTip)
	if !ok {
		return Detection{}, false
	}

	dist := util.Distance(thumb, index)
	if dist > d.MaxDistance {
		return Detection{}, false
	}
	return Detection{
		Type:       core.GesturePinch,
		Confidence: util.Clamp01(1 - dist/(2*d.MaxDistance)),
		Detector:   d.Name(),
	}, true
}

// FistDetector fires when all four fingertips curl in toward the wrist.
type FistDetector struct {
	// MaxAvgDistance is the mean fingertip-to-wrist distance at or below
	// which a fist registers.
	MaxAvgDistance float64
}

// NewFistDetector creates a fist detector with default thresholds.
func NewFistDetector() *FistDetector {
	return &FistDetector{MaxAvgDistance: 0.22}
}

func (d *FistDetector) Name() string { return "fist" }

func (d *FistDetector) Detect(frame Frame) (Detection, bool) {
	wrist, ok := landmarkAt(frame, core.LandmarkWrist)
	if !ok {
		return Detection{}, false
	}

	total := 0.0
	for _, idx := range fingerTips {
		tip, ok := landmarkAt(frame, idx)
		if !ok {
			return Detection{}, false
		}
		total += util.Distance(wrist, tip)
	}

	avg := total / float64(len(fingerTips))
	if avg > d.MaxAvgDistance {
		return Detection{}, false
	}
	return Detection{
		Type:       core.GestureFist,
		Confidence: util.Clamp01(1 - avg/(2*d.MaxAvgDistance)),
		Detector:   d.Name(),
	}, true
}

// OpenPalmDetector fires when all fingers extend away from the wrist with the
// thumb spread clear of the index finger.
type OpenPalmDetector struct {
	// MinTipDistance is the fingertip-to-wrist distance every finger must
	// exceed.
	MinTipDistance float64

	// MinThumbSpread is the thumb-to-index distance separating an open palm
	// from a closing hand.
	MinThumbSpread float64
}

// NewOpenPalmDetector creates an open palm detector with default thresholds.
func NewOpenPalmDetector() *OpenPalmDetector {
	return &OpenPalmDetector{MinTipDistance: 0.38, MinThumbSpread: 0.10}
}

func (d *OpenPalmDetector) Name() string { return "open_palm" }

func (d *OpenPalmDetector) Detect(frame Frame) (Detection, bool) {
	wrist, ok := landmarkAt(frame, core.LandmarkWrist)
	if !ok {
		return Detection{}, false
	}

	minDist := math.MaxFloat64
	for _, idx := range fingerTips {
		tip, ok := landmarkAt(frame, idx)
		if !ok {
			return Detection{}, false
		}
		dist := util.Distance(wrist, tip)
		if dist < d.MinTipDistance {
			return Detection{}, false
		}
		minDist = math.Min(minDist, dist)
	}

	thumb, ok := landmarkAt(frame, core.LandmarkThumbTip)
	if !ok {
		return Detection{}, false
	}
	index, _ := landmarkAt(frame, core.LandmarkIndexTip)
	if util.Distance(thumb, index) < d.MinThumbSpread {
		return Detection{}, false
	}

	return Detection{
		Type:       core.GestureOpenPalm,
		Confidence: util.Clamp01(minDist / (2 * d.MinTipDistance)),
		Detector:   d.Name(),
	}, true
}

// PointDetector fires when the index finger extends while the remaining
// fingers stay curled.
type PointDetector struct {
	// MinIndexDistance is the index-tip-to-wrist distance an extended finger
	// must exceed.
	MinIndexDistance float64

	// MaxCurledDistance bounds the remaining fingertip distances.
	MaxCurledDistance float64
}

// NewPointDetector creates a point detector with default thresholds.
func NewPointDetector() *PointDetector {
	return &PointDetector{MinIndexDistance: 0.38, MaxCurledDistance: 0.25}
}

func (d *PointDetector) Name() string { return "point" }

func (d *PointDetector) Detect(frame Frame) (Detection, bool) {
	wrist, ok := landmarkAt(frame, core.LandmarkWrist)
	if !ok {
		return Detection{}, false
	}
	index, ok := landmarkAt(frame, core.LandmarkIndexTip)
	if !ok {
		return Detection{}, false
	}

	indexDist := util.Distance(wrist, index)
	if indexDist < d.MinIndexDistance {
		return Detection{}, false
	}

	for _, idx := range []int{core.LandmarkMiddleTip, core.LandmarkRingTip, core.LandmarkPinkyTip} {
		tip, ok := landmarkAt(frame, idx)
		if !ok {
			return Detection{}, false
		}
		if util.Distance(wrist, tip) > d.MaxCurledDistance {
			return Detection{}, false
		}
	}

	return Detection{
		Type:       core.GesturePoint,
		Confidence: util.Clamp01(indexDist / (2 * d.MinIndexDistance)),
		Detector:   d.Name(),
	}, true
}

// SwipeDetector recognizes fast horizontal hand motion from consecutive
// frames. It tracks the index fingertip between calls, so a single instance
// must see a continuous frame stream in capture order.
type SwipeDetector struct {
	// MinVelocity is the horizontal speed, in normalized screen widths per
	// second, at or above which motion counts as a swipe.
	MinVelocity float64

	// MaxGap bounds the time between consecutive frames; longer gaps reset
	// tracking.
	MaxGap time.Duration

	prev    core.Landmark
	prevAt  time.Time
	hasPrev bool
}

// NewSwipeDetector creates a swipe detector with default thresholds.
func NewSwipeDetector() *SwipeDetector {
	return &SwipeDetector{MinVelocity: 1.5, MaxGap: 250 * time.Millisecond}
}

func (d *SwipeDetector) Name() string { return "swipe" }

func (d *SwipeDetector) Detect(frame Frame) (Detection, bool) {
	index, ok := landmarkAt(frame, core.LandmarkIndexTip)
	if !ok {
		d.hasPrev = false
		return Detection{}, false
	}

	prev, prevAt, hasPrev := d.prev, d.prevAt, d.hasPrev
	d.prev, d.prevAt, d.hasPrev = index, frame.CapturedAt, true

	if !hasPrev {
		return Detection{}, false
	}
	dt := frame.CapturedAt.Sub(prevAt)
	if dt <= 0 || dt > d.MaxGap {
		return Detection{}, false
	}

	velocity := (index.X - prev.X) / dt.Seconds()
	if math.Abs(velocity) < d.MinVelocity {
		return Detection{}, false
	}

	gestureType := core.GestureSwipeRight
	if velocity < 0 {
		gestureType = core.GestureSwipeLeft
	}
	return Detection{
		Type:       gestureType,
		Confidence: util.Clamp01(math.Abs(velocity) / (2 * d.MinVelocity)),
		Detector:   d.Name(),
	}, true
}

// fingerTips indexes the four non-thumb fingertips.
var fingerTips = []int{
	core.LandmarkIndexTip,
	core.LandmarkMiddleTip,
	core.LandmarkRingTip,
	core.LandmarkPinkyTip,
}

// landmarkAt returns the landmark at idx when the frame carries it. Frames
// with unusual landmark counts fail the lookup instead of panicking.
func landmarkAt(frame Frame, idx int) (core.Landmark, bool) {
	if idx < 0 || idx >= len(frame.Landmarks) {
		return core.Landmark{}, false
	}
	return frame.Landmarks[idx], true
}
