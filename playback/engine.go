package playback

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/logging"
)

// Options configures an Engine.
type Options struct {
	// Clock schedules event deliveries. Defaults to the system clock; tests
	// inject a manual clock for deterministic replays.
	Clock core.Clock

	// Logger for replay lifecycle events. Defaults to a no-op logger.
	Logger logging.Logger
}

// RunOptions configures a single replay run.
type RunOptions struct {
	// Speed is the playback speed multiplier. 2.0 replays in half the
	// recorded time. Defaults to 1.0.
	Speed float64

	// OnHandlerError receives errors returned by the event handler. Each
	// error belongs to exactly one delivery; the rest of the schedule keeps
	// running. Defaults to logging the error.
	OnHandlerError func(ev core.TimelineEvent, err error)

	// OnComplete fires once after the final event has been delivered and the
	// session duration has elapsed. It does not fire for stopped or
	// superseded runs.
	OnComplete func()
}

// Engine replays recorded sessions by delivering timeline events to a
// handler at their recorded timestamps scaled by speed.
//
// At most one run is active per engine. Starting a new run cancels every
// pending delivery of the previous one. All methods are safe for concurrent
// use, and the handler may call back into the engine, so a delivered event
// can pause or stop its own replay.
type Engine struct {
	clock  core.Clock
	logger logging.Logger

	mu  sync.Mutex
	run *run
}

// run holds the state of one replay. The engine drops the run pointer when
// the run retires, so a timer fired by a superseded run finds e.run != r and
// returns without delivering.
type run struct {
	sessionID string
	timeline  []core.TimelineEvent
	handler   core.EventHandler
	speed     float64
	duration  float64

	onHandlerError func(ev core.TimelineEvent, err error)
	onComplete     func()

	// next indexes the first undelivered timeline event. Guarded by
	// Engine.mu.
	next int

	// baseMs is the session position when the run last started or paused.
	// While playing, position = baseMs + speed * wall elapsed since
	// resumedAt. Guarded by Engine.mu.
	baseMs    float64
	resumedAt time.Time
	paused    bool

	handles []core.Timer

	// deliverMu serializes handler invocations so deliveries never overlap
	// or invert, even when several timers fire close together.
	deliverMu sync.Mutex
}

// New creates a playback engine.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Clock:  core.SystemClock(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Engine{
		clock:  opts.Clock,
		logger: opts.Logger,
	}
}

// Start begins replaying a stopped session, delivering every gesture and
// generation event to handler in timestamp order. A run already in progress
// is cancelled first and none of its pending deliveries fire afterwards.
//
// Start fails with ErrInvalidArgument when the session is nil or not
// stopped, the handler is nil, or the speed is not a positive finite number.
func (e *Engine) Start(session *core.RecordingSession, handler core.EventHandler, optFns ...func(o *RunOptions)) error {
	rOpts := RunOptions{
		Speed: 1.0,
	}
	for _, fn := range optFns {
		fn(&rOpts)
	}

	if session == nil {
		return fmt.Errorf("%w: nil session", core.ErrInvalidArgument)
	}
	if !session.IsStopped() {
		return fmt.Errorf("%w: session %s is not stopped", core.ErrInvalidArgument, session.ID)
	}
	if handler == nil {
		return fmt.Errorf("%w: nil event handler", core.ErrInvalidArgument)
	}
	if rOpts.Speed <= 0 || math.IsInf(rOpts.Speed, 0) || math.IsNaN(rOpts.Speed) {
		return fmt.Errorf("%w: speed must be a positive finite number, got %v", core.ErrInvalidArgument, rOpts.Speed)
	}

	r := &run{
		sessionID:      session.ID,
		timeline:       session.Timeline(),
		handler:        handler,
		speed:          rOpts.Speed,
		duration:       session.DurationMs,
		onHandlerError: rOpts.OnHandlerError,
		onComplete:     rOpts.OnComplete,
	}
	// Completion never precedes the final event, even for sessions whose
	// recorded duration is inconsistent with their streams.
	if n := len(r.timeline); n > 0 {
		if last := r.timeline[n-1].TimestampMs(); last > r.duration {
			r.duration = last
		}
	}
	if r.onHandlerError == nil {
		r.onHandlerError = func(ev core.TimelineEvent, err error) {
			e.logger.Error("Replay handler failed",
				"session_id", r.sessionID,
				"timestamp_ms", ev.TimestampMs(),
				"error", err,
			)
		}
	}

	e.mu.Lock()
	e.stopLocked()
	e.run = r
	r.resumedAt = e.clock.Now()
	e.scheduleLocked(r)
	e.mu.Unlock()

	e.logger.Info("Replay started",
		"session_id", r.sessionID,
		"events", len(r.timeline),
		"speed", r.speed,
	)
	return nil
}

// Pause suspends delivery and freezes the playback position. Pausing while
// nothing plays, or while already paused, does nothing.
func (e *Engine) Pause() {
	e.mu.Lock()
	r := e.run
	if r == nil || r.paused {
		e.mu.Unlock()
		return
	}

	r.baseMs = r.positionLocked(e.clock.Now())
	r.paused = true
	e.stopHandlesLocked(r)
	e.mu.Unlock()

	e.logger.Debug("Replay paused", "session_id", r.sessionID, "position_ms", r.baseMs)
}

// Resume continues a paused run. Remaining events are rescheduled from the
// frozen position at the run speed, so time spent paused never shortens the
// remaining delays. Resuming while not paused does nothing.
func (e *Engine) Resume() {
	e.mu.Lock()
	r := e.run
	if r == nil || !r.paused {
		e.mu.Unlock()
		return
	}

	r.paused = false
	r.resumedAt = e.clock.Now()
	e.scheduleLocked(r)
	e.mu.Unlock()

	e.logger.Debug("Replay resumed", "session_id", r.sessionID, "position_ms", r.baseMs)
}

// Stop cancels the active run and every pending delivery; no delivery starts
// after the run retires. Stopping while nothing plays does nothing. Like
// time.Timer.Stop, Stop does not wait for a delivery already in flight on
// another goroutine to return.
func (e *Engine) Stop() {
	e.mu.Lock()
	r := e.run
	e.stopLocked()
	e.mu.Unlock()

	if r != nil {
		e.logger.Info("Replay stopped", "session_id", r.sessionID)
	}
}

// State reports the current playback state. Without an active run it returns
// the zero value.
func (e *Engine) State() core.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.run
	if r == nil {
		return core.PlaybackState{}
	}
	return core.PlaybackState{
		IsPlaying:     !r.paused,
		IsPaused:      r.paused,
		CurrentTimeMs: r.positionLocked(e.clock.Now()),
		Speed:         r.speed,
	}
}

// scheduleLocked arms one timer per undelivered event plus one for run
// completion. Call with e.mu held and r playing.
func (e *Engine) scheduleLocked(r *run) {
	r.handles = r.handles[:0]
	for idx := r.next; idx < len(r.timeline); idx++ {
		r.handles = append(r.handles, e.clock.AfterFunc(r.delay(r.timeline[idx].TimestampMs()), func() {
			e.deliver(r, idx)
		}))
	}
	r.handles = append(r.handles, e.clock.AfterFunc(r.delay(r.duration), func() {
		e.complete(r)
	}))
}

// deliver is the timer callback for the event at idx. The run cursor, not
// idx, decides what fires: when several deadlines have passed, the first
// callback to run drains every event due up to and including idx, and the
// remaining callbacks find the cursor already beyond them.
func (e *Engine) deliver(r *run, idx int) {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	for {
		e.mu.Lock()
		if e.run != r || r.paused || r.next > idx {
			e.mu.Unlock()
			return
		}
		ev := r.timeline[r.next]
		r.next++
		e.mu.Unlock()

		if err := r.handler(ev); err != nil {
			r.onHandlerError(ev, err)
		}
	}
}

// complete is the completion timer callback. Events sharing the final
// deadline drain first, then the run retires.
func (e *Engine) complete(r *run) {
	if n := len(r.timeline); n > 0 {
		e.deliver(r, n-1)
	}

	e.mu.Lock()
	if e.run != r || r.paused || r.next < len(r.timeline) {
		e.mu.Unlock()
		return
	}
	e.run = nil
	e.mu.Unlock()

	e.logger.Info("Replay completed", "session_id", r.sessionID, "events", len(r.timeline))
	if r.onComplete != nil {
		r.onComplete()
	}
}

// stopLocked retires the active run, if any. Call with e.mu held.
func (e *Engine) stopLocked() {
	if e.run == nil {
		return
	}
	e.stopHandlesLocked(e.run)
	e.run = nil
}

func (e *Engine) stopHandlesLocked(r *run) {
	for _, h := range r.handles {
		h.Stop()
	}
	r.handles = r.handles[:0]
}

// positionLocked returns the current session position in milliseconds. Call
// with Engine.mu held.
func (r *run) positionLocked(now time.Time) float64 {
	if r.paused {
		return r.baseMs
	}
	pos := r.baseMs + r.speed*float64(now.Sub(r.resumedAt))/float64(time.Millisecond)
	if pos > r.duration {
		pos = r.duration
	}
	return pos
}

// delay converts a session timestamp into a wall delay from the current
// position at the run speed. Timestamps at or behind the position are due
// immediately.
func (r *run) delay(tsMs float64) time.Duration {
	d := time.Duration((tsMs - r.baseMs) / r.speed * float64(time.Millisecond))
	if d < 0 {
		d = 0
	}
	return d
}
