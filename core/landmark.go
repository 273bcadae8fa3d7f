package core

// HandLandmarkCount is the number of tracked points the hand-tracking
// collaborator emits per detected hand.
const HandLandmarkCount = 21

// Canonical landmark indices in MediaPipe hand order. Gesture heuristics
// address landmarks by these positions.
const (
	LandmarkWrist     = 0
	LandmarkThumbTip  = 4
	LandmarkIndexTip  = 8
	LandmarkMiddleTip = 12
	LandmarkRingTip   = 16
	LandmarkPinkyTip  = 20
)

// Landmark is a single tracked hand point in normalized coordinate space.
// X and Y lie in [0, 1] relative to the camera frame; Z is depth relative to
// the wrist, negative toward the camera.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Handedness labels which hand produced a detection.
type Handedness string

const (
	// HandednessLeft marks a detection classified as the left hand.
	HandednessLeft Handedness = "Left"
	// HandednessRight marks a detection classified as the right hand.
	HandednessRight Handedness = "Right"
	// HandednessUnknown is the default when the tracker provides no label.
	HandednessUnknown Handedness = "unknown"
)
