package core

// EventKind discriminates the two event streams in a merged timeline.
type EventKind string

const (
	// EventKindGesture marks a TimelineEvent carrying a RecordedGesture.
	EventKindGesture EventKind = "gesture"
	// EventKindGeneration marks a TimelineEvent carrying a RecordedGeneration.
	EventKindGeneration EventKind = "generation"
)

// TimelineEvent is one entry of a merged session timeline. Exactly one of
// Gesture / Generation is non-nil, matching Kind. The pointers reference the
// session's own slices; consumers must treat them as read-only.
type TimelineEvent struct {
	Kind       EventKind
	Gesture    *RecordedGesture
	Generation *RecordedGeneration
}

// TimestampMs returns the session-relative timestamp of the wrapped event.
func (e TimelineEvent) TimestampMs() float64 {
	switch e.Kind {
	case EventKindGesture:
		if e.Gesture != nil {
			return e.Gesture.TimestampMs
		}
	case EventKindGeneration:
		if e.Generation != nil {
			return e.Generation.TimestampMs
		}
	}
	return 0
}

// EventHandler consumes timeline events. The same signature serves the live
// capture pipeline and the playback engine, so downstream consumers (gesture
// mapping, AR scene updates) cannot tell a recorded stream from a live one.
// A returned error belongs to the single delivery that produced it and must
// not tear down the rest of the stream.
type EventHandler func(ev TimelineEvent) error

// Timeline merges the gesture and generation streams into one sequence
// ordered by non-decreasing timestamp. Gestures sort before generations on
// equal timestamps. Both inputs are already ordered, so this is a two-pointer
// merge.
func (s *RecordingSession) Timeline() []TimelineEvent {
	merged := make([]TimelineEvent, 0, len(s.Gestures)+len(s.Generations))
	gi, ni := 0, 0
	for gi < len(s.Gestures) || ni < len(s.Generations) {
		takeGesture := ni >= len(s.Generations) ||
			(gi < len(s.Gestures) && s.Gestures[gi].TimestampMs <= s.Generations[ni].TimestampMs)
		if takeGesture {
			merged = append(merged, TimelineEvent{Kind: EventKindGesture, Gesture: &s.Gestures[gi]})
			gi++
		} else {
			merged = append(merged, TimelineEvent{Kind: EventKindGeneration, Generation: &s.Generations[ni]})
			ni++
		}
	}
	return merged
}
