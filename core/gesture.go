package core

// GestureType identifies a classified hand pose or motion.
type GestureType string

// Gesture kinds produced by the tracking classifier. The recorder treats the
// type as opaque: kinds outside this list pass through capture, export and
// replay unchanged.
const (
	GesturePinch      GestureType = "pinch"
	GestureOpenPalm   GestureType = "open_palm"
	GestureFist       GestureType = "fist"
	GesturePoint      GestureType = "point"
	GestureSwipeLeft  GestureType = "swipe_left"
	GestureSwipeRight GestureType = "swipe_right"
)

// RecordedGesture is one captured gesture event. After capture it should be
// treated as immutable. TimestampMs is milliseconds relative to the session
// start instant. Landmark cardinality is accepted as given; callers normally
// supply HandLandmarkCount points but the recorder does not enforce a count.
// Metadata is an opaque key/value map owned by the producer (classifier
// confidence, device tags, experiment flags).
type RecordedGesture struct {
	Type        GestureType       `json:"type"`
	Landmarks   []Landmark        `json:"landmarks"`
	Handedness  Handedness        `json:"handedness"`
	Metadata    map[string]string `json:"metadata"`
	TimestampMs float64           `json:"timestamp_ms"`
}

// Clone returns a deep copy safe for independent mutation.
func (g RecordedGesture) Clone() RecordedGesture {
	clone := g
	if g.Landmarks != nil {
		clone.Landmarks = make([]Landmark, len(g.Landmarks))
		copy(clone.Landmarks, g.Landmarks)
	}
	if g.Metadata != nil {
		clone.Metadata = make(map[string]string, len(g.Metadata))
		for k, v := range g.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}
