package recorder

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/internal/util"
	"github.com/aircanvas/aircanvas/logging"
)

// DefaultClientInfo identifies recordings produced without an explicit
// ClientInfo option.
var DefaultClientInfo = fmt.Sprintf("aircanvas-go (%s; %s)", runtime.GOOS, runtime.GOARCH)

// Options configures a SessionRecorder.
type Options struct {
	// Clock supplies timestamps for recorded events. Defaults to the system
	// clock.
	Clock core.Clock

	// Logger for recorder lifecycle events. Defaults to a no-op logger.
	Logger logging.Logger

	// ClientInfo identifies the capturing client and is stored in session
	// metadata, for example "aircanvas-cli/0.4.0 (linux)".
	ClientInfo string
}

// GestureOptions configures optional fields of a recorded gesture.
type GestureOptions struct {
	// Handedness of the detected hand. Defaults to HandednessUnknown.
	Handedness core.Handedness

	// Metadata carries free-form annotations stored alongside the gesture.
	Metadata map[string]string
}

// SessionRecorder captures gesture and generation events into a session.
//
// A recorder holds at most one active recording. Its methods are safe for
// concurrent use, and the recording methods are built for hot paths: while no
// recording is active they do nothing and report false instead of failing.
//
// Event timestamps are milliseconds elapsed since Start, measured on the
// configured clock. The recorder assigns them itself so recorded sessions
// replay on a single consistent timeline.
type SessionRecorder struct {
	clock      core.Clock
	logger     logging.Logger
	clientInfo string

	mu        sync.Mutex
	session   *core.RecordingSession
	startedAt time.Time
}

// New creates a session recorder.
func New(optFns ...func(o *Options)) *SessionRecorder {
	opts := Options{
		Clock:      core.SystemClock(),
		Logger:     logging.NoOpLogger{},
		ClientInfo: DefaultClientInfo,
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

	return &SessionRecorder{
		clock:      opts.Clock,
		logger:     opts.Logger,
		clientInfo: opts.ClientInfo,
	}
}

// Start begins a new recording. Calling Start while a recording is already
// active leaves the current recording untouched.
func (r *SessionRecorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		r.logger.Debug("Recording already in progress", "session_id", r.session.ID)
		return
	}

	now := r.clock.Now()
	r.session = core.NewRecordingSession(util.NewID(), r.clientInfo, now)
	r.startedAt = now

	r.logger.Info("Recording started", "session_id", r.session.ID)
}

// RecordGesture appends a gesture event to the active recording and returns
// the stored event. When no recording is active it records nothing and
// reports false.
//
// Landmark sets of any size are accepted and stored as given; the slice and
// any metadata map are copied so later caller mutations cannot reach the
// session.
func (r *SessionRecorder) RecordGesture(gestureType core.GestureType, landmarks []core.Landmark, optFns ...func(o *GestureOptions)) (core.RecordedGesture, bool) {
	gOpts := GestureOptions{
		Handedness: core.HandednessUnknown,
	}
	for _, fn := range optFns {
		fn(&gOpts)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return core.RecordedGesture{}, false
	}

	gesture := core.RecordedGesture{
		Type:        gestureType,
		Handedness:  gOpts.Handedness,
		TimestampMs: r.elapsedMsLocked(),
	}
	if landmarks != nil {
		gesture.Landmarks = make([]core.Landmark, len(landmarks))
		copy(gesture.Landmarks, landmarks)
	}
	if gOpts.Metadata != nil {
		gesture.Metadata = make(map[string]string, len(gOpts.Metadata))
		for k, v := range gOpts.Metadata {
			gesture.Metadata[k] = v
		}
	}

	r.session.Gestures = append(r.session.Gestures, gesture)
	return gesture, true
}

// RecordGeneration appends a generation result to the active recording and
// returns the stored event. The recorder assigns the event timestamp; any
// TimestampMs on the input is replaced. When no recording is active it
// records nothing and reports false.
func (r *SessionRecorder) RecordGeneration(gen core.RecordedGeneration) (core.RecordedGeneration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return core.RecordedGeneration{}, false
	}

	gen.TimestampMs = r.elapsedMsLocked()
	r.session.Generations = append(r.session.Generations, gen)
	return gen, true
}

// Stop ends the active recording and returns the sealed session. The session
// duration spans Start to Stop on the recorder clock. After Stop the
// recorder is ready for a fresh Start.
//
// Stopping while no recording is active fails with ErrInvalidState.
func (r *SessionRecorder) Stop() (*core.RecordingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil, fmt.Errorf("%w: No recording in progress", core.ErrInvalidState)
	}

	session := r.session
	session.DurationMs = r.elapsedMsLocked()
	session.State = core.SessionStateStopped
	r.session = nil

	r.logger.Info("Recording stopped",
		"session_id", session.ID,
		"gestures", len(session.Gestures),
		"generations", len(session.Generations),
		"duration_ms", session.DurationMs,
	)
	return session, nil
}

// IsRecording reports whether a recording is currently active.
func (r *SessionRecorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

func (r *SessionRecorder) elapsedMsLocked() float64 {
	return float64(r.clock.Now().Sub(r.startedAt)) / float64(time.Millisecond)
}
