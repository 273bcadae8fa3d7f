package audit

import (
	"fmt"
	"math"

	"github.com/aircanvas/aircanvas/core"
)

// Severity grades an audit finding.
type Severity string

const (
	// SeverityError marks findings that break replay or export guarantees.
	SeverityError Severity = "error"
	// SeverityWarning marks findings that are unusual but tolerated.
	SeverityWarning Severity = "warning"
)

// Issue is one finding from a session inspection.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Report aggregates the findings for one session.
type Report struct {
	SessionID   string  `json:"session_id"`
	Gestures    int     `json:"gestures"`
	Generations int     `json:"generations"`
	DurationMs  float64 `json:"duration_ms"`
	Issues      []Issue `json:"issues,omitempty"`
}

// OK reports whether the inspection found no error-level issues.
// Warnings do not fail a report.
func (r Report) OK() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

func (r *Report) add(severity Severity, code, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Inspect statically checks a session against the recording contract:
// a stable identity, sealed state, and both event streams ordered by
// non-decreasing timestamps that lie within the recorded duration.
// Landmark cardinality is advisory only; unusual counts are warnings.
func Inspect(s *core.RecordingSession) Report {
	if s == nil {
		return Report{Issues: []Issue{{
			Severity: SeverityError,
			Code:     "nil-session",
			Message:  "no session provided",
		}}}
	}

	r := Report{
		SessionID:   s.ID,
		Gestures:    len(s.Gestures),
		Generations: len(s.Generations),
		DurationMs:  s.DurationMs,
	}

	if s.ID == "" {
		r.add(SeverityError, "empty-id", "session has no id")
	}
	if !s.IsStopped() {
		r.add(SeverityError, "not-stopped", "session is still in state %q", string(s.State))
	}
	if s.DurationMs < 0 {
		r.add(SeverityError, "negative-duration", "duration is %.3f ms", s.DurationMs)
	}
	if s.Metadata.Version == "" {
		r.add(SeverityWarning, "missing-version", "metadata carries no format version")
	}

	prev := math.Inf(-1)
	for i, g := range s.Gestures {
		prev = r.checkTimestamp(s, "gesture", i, g.TimestampMs, prev)
		if len(g.Landmarks) != core.HandLandmarkCount {
			r.add(SeverityWarning, "unusual-landmark-count",
				"gesture %d carries %d landmarks", i, len(g.Landmarks))
		}
	}

	prev = math.Inf(-1)
	for i, g := range s.Generations {
		prev = r.checkTimestamp(s, "generation", i, g.TimestampMs, prev)
	}

	return r
}

func (r *Report) checkTimestamp(s *core.RecordingSession, stream string, i int, ts, prev float64) float64 {
	if ts < prev {
		r.add(SeverityError, "out-of-order", "%s %d at %.3f ms precedes %s %d at %.3f ms",
			stream, i, ts, stream, i-1, prev)
	}
	if ts < 0 {
		r.add(SeverityError, "out-of-bounds", "%s %d has negative timestamp %.3f ms", stream, i, ts)
	} else if s.IsStopped() && ts > s.DurationMs {
		r.add(SeverityError, "out-of-bounds", "%s %d at %.3f ms exceeds duration %.3f ms",
			stream, i, ts, s.DurationMs)
	}
	return ts
}
