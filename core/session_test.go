package core

import (
	"testing"
	"time"
)

func TestRecordingSession_AddAndSeal(t *testing.T) {
	s := NewRecordingSession("s1", "test-client", time.Now().UTC())

	s.AddGesture(RecordedGesture{Type: GesturePinch, TimestampMs: 10})
	s.AddGeneration(RecordedGeneration{ImageURL: "https://img.invalid/1.png", TimestampMs: 20})
	if s.EventCount() != 2 {
		t.Fatalf("expected 2 events, got %d", s.EventCount())
	}

	s.State = SessionStateStopped
	s.AddGesture(RecordedGesture{Type: GestureFist, TimestampMs: 30})
	s.AddGeneration(RecordedGeneration{TimestampMs: 40})
	if s.EventCount() != 2 {
		t.Errorf("stopped session accepted events: %d", s.EventCount())
	}
	if !s.IsStopped() {
		t.Error("expected IsStopped after sealing")
	}
}

func TestRecordingSession_CloneDeepCopy(t *testing.T) {
	s := NewRecordingSession("s2", "test-client", time.Now().UTC())
	s.AddGesture(RecordedGesture{
		Type:       GesturePinch,
		Landmarks:  []Landmark{{X: 0.1, Y: 0.2, Z: -0.01}},
		Handedness: HandednessRight,
		Metadata:   map[string]string{"confidence": "0.91"},
	})

	clone := s.Clone()
	if clone == s {
		t.Fatal("Clone should be a different pointer")
	}

	clone.Gestures[0].Landmarks[0].X = 0.9
	clone.Gestures[0].Metadata["confidence"] = "0.10"
	if s.Gestures[0].Landmarks[0].X != 0.1 {
		t.Error("clone landmark mutation leaked into original")
	}
	if s.Gestures[0].Metadata["confidence"] != "0.91" {
		t.Error("clone metadata mutation leaked into original")
	}
}

func TestRecordingSession_CloneKeepsNilSlices(t *testing.T) {
	s := &RecordingSession{ID: "s3", State: SessionStateStopped}
	clone := s.Clone()
	if clone.Gestures != nil || clone.Generations != nil {
		t.Error("nil event slices should stay nil through Clone")
	}
}
