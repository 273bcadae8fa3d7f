package core

import "testing"

func TestTimeline_MergesStreamsInTimestampOrder(t *testing.T) {
	s := &RecordingSession{
		ID: "s1",
		Gestures: []RecordedGesture{
			{Type: GesturePinch, TimestampMs: 10},
			{Type: GestureOpenPalm, TimestampMs: 30},
			{Type: GestureFist, TimestampMs: 50},
		},
		Generations: []RecordedGeneration{
			{RequestID: "r1", TimestampMs: 20},
			{RequestID: "r2", TimestampMs: 30},
		},
		DurationMs: 60,
		State:      SessionStateStopped,
	}

	timeline := s.Timeline()
	if len(timeline) != 5 {
		t.Fatalf("expected 5 merged events, got %d", len(timeline))
	}

	wantKinds := []EventKind{
		EventKindGesture,    // 10
		EventKindGeneration, // 20
		EventKindGesture,    // 30, gestures win ties
		EventKindGeneration, // 30
		EventKindGesture,    // 50
	}
	last := -1.0
	for i, ev := range timeline {
		if ev.Kind != wantKinds[i] {
			t.Errorf("event %d: kind = %s, want %s", i, ev.Kind, wantKinds[i])
		}
		if ev.TimestampMs() < last {
			t.Errorf("event %d: timestamp %v out of order after %v", i, ev.TimestampMs(), last)
		}
		last = ev.TimestampMs()
	}
}

func TestTimelineEvent_TimestampMs(t *testing.T) {
	g := RecordedGesture{TimestampMs: 12.5}
	ev := TimelineEvent{Kind: EventKindGesture, Gesture: &g}
	if ev.TimestampMs() != 12.5 {
		t.Errorf("gesture timestamp = %v", ev.TimestampMs())
	}

	gen := RecordedGeneration{TimestampMs: 99}
	ev = TimelineEvent{Kind: EventKindGeneration, Generation: &gen}
	if ev.TimestampMs() != 99 {
		t.Errorf("generation timestamp = %v", ev.TimestampMs())
	}

	if (TimelineEvent{}).TimestampMs() != 0 {
		t.Error("zero event should report timestamp 0")
	}
}

func TestTimeline_EmptySession(t *testing.T) {
	s := &RecordingSession{ID: "empty", State: SessionStateStopped}
	if got := s.Timeline(); len(got) != 0 {
		t.Errorf("expected empty timeline, got %d events", len(got))
	}
}
