package audit

import (
	"fmt"
	"time"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/logging"
	"github.com/aircanvas/aircanvas/playback"
)

// ReplayOptions configure VerifyReplay.
type ReplayOptions struct {
	// Speed for the simulated run. The manual clock makes every speed
	// equally fast in wall time; this only exercises the scheduling math.
	Speed float64
	// Logger receives the engine's log output. Defaults to NoOpLogger.
	Logger logging.Logger
}

// ReplayReport summarizes a simulated replay of one session.
type ReplayReport struct {
	SessionID string  `json:"session_id"`
	Expected  int     `json:"expected"`
	Delivered int     `json:"delivered"`
	Completed bool    `json:"completed"`
	Issues    []Issue `json:"issues,omitempty"`
}

// OK reports whether the replay delivered every event in order and ran to
// completion.
func (r ReplayReport) OK() bool {
	return r.Completed && r.Delivered == r.Expected && len(r.Issues) == 0
}

// VerifyReplay replays the session through the playback engine against a
// manual clock and checks the delivery guarantees: every recorded event
// arrives exactly once, timestamps never regress, and the run completes.
// The whole verification happens synchronously on the calling goroutine.
func VerifyReplay(s *core.RecordingSession, optFns ...func(o *ReplayOptions)) (ReplayReport, error) {
	opts := ReplayOptions{
		Speed:  1.0,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	report := ReplayReport{}
	if s == nil {
		return report, fmt.Errorf("%w: session must not be nil", core.ErrInvalidArgument)
	}
	report.SessionID = s.ID
	report.Expected = s.EventCount()

	clock := core.NewManualClock(time.Unix(0, 0))
	engine := playback.New(func(o *playback.Options) {
		o.Clock = clock
		o.Logger = opts.Logger
	})

	var (
		last  float64
		first = true
	)
	handler := func(ev core.TimelineEvent) error {
		ts := ev.TimestampMs()
		if !first && ts < last {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityError,
				Code:     "regressed-delivery",
				Message:  fmt.Sprintf("event at %.3f ms delivered after %.3f ms", ts, last),
			})
		}
		first = false
		last = ts
		report.Delivered++
		return nil
	}

	err := engine.Start(s, handler, func(o *playback.RunOptions) {
		o.Speed = opts.Speed
		o.OnComplete = func() { report.Completed = true }
	})
	if err != nil {
		return report, fmt.Errorf("failed to start verification replay: %w", err)
	}

	// The run horizon covers sessions whose recorded duration disagrees with
	// their streams; the engine schedules completion at the later of the two.
	horizonMs := s.DurationMs
	if n := len(s.Gestures); n > 0 && s.Gestures[n-1].TimestampMs > horizonMs {
		horizonMs = s.Gestures[n-1].TimestampMs
	}
	if n := len(s.Generations); n > 0 && s.Generations[n-1].TimestampMs > horizonMs {
		horizonMs = s.Generations[n-1].TimestampMs
	}
	clock.Advance(time.Duration((horizonMs/opts.Speed + 1) * float64(time.Millisecond)))

	if report.Delivered != report.Expected {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     "delivery-count",
			Message:  fmt.Sprintf("delivered %d of %d events", report.Delivered, report.Expected),
		})
	}
	if !report.Completed {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     "no-completion",
			Message:  "replay never reported completion",
		})
	}

	return report, nil
}
