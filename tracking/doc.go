// Package tracking turns hand tracking frames into recognized gestures.
//
// A Source produces Frames (landmark sets with handedness and confidence), a
// Detector recognizes one gesture family, and the Classifier runs a detector
// chain over each frame where the first match wins. The default chain covers
// the gestures the recorder and prompt layers understand: swipes, pinch,
// fist, open palm, and point.
//
// Landmark geometry follows the common 21-point hand model with normalized
// coordinates; see the core package for the index constants.
package tracking
