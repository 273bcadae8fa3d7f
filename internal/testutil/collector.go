package testutil

import (
	"sync"

	"github.com/aircanvas/aircanvas/core"
)

// EventCollector gathers timeline events delivered by a playback run or a live
// studio session so tests can assert on ordering and content. Safe for use
// from multiple goroutines.
type EventCollector struct {
	mu     sync.Mutex
	events []core.TimelineEvent
}

// NewEventCollector creates an empty collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{}
}

// Handler returns an EventHandler that appends every delivery to the
// collector and never fails.
func (c *EventCollector) Handler() core.EventHandler {
	return func(ev core.TimelineEvent) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.events = append(c.events, ev)
		return nil
	}
}

// Events returns a copy of all collected events in delivery order.
func (c *EventCollector) Events() []core.TimelineEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.TimelineEvent, len(c.events))
	copy(out, c.events)
	return out
}

// Timestamps returns the collected event timestamps in delivery order.
func (c *EventCollector) Timestamps() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]float64, len(c.events))
	for i, ev := range c.events {
		out[i] = ev.TimestampMs()
	}
	return out
}

// Kinds returns the collected event kinds in delivery order.
func (c *EventCollector) Kinds() []core.EventKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.EventKind, len(c.events))
	for i, ev := range c.events {
		out[i] = ev.Kind
	}
	return out
}

// Len reports how many events have been collected so far.
func (c *EventCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}
