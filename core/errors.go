package core

import "errors"

// Sentinel error kinds shared across packages. Call sites wrap these with
// fmt.Errorf("%w: detail", ...) and callers branch with errors.Is rather than
// matching message text.
var (
	// ErrInvalidState marks lifecycle calls made in the wrong state, such as
	// stopping a recorder with no active recording.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument marks rejected call arguments, such as a playback
	// speed that is zero, negative or not finite.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrImport marks session text that could not be parsed or that fails
	// the structural shape check.
	ErrImport = errors.New("import error")

	// ErrNotFound marks lookups for sessions or assets that do not exist.
	ErrNotFound = errors.New("not found")
)

// ErrorKind returns a short classification tag for err, for log fields and
// user-facing summaries. Returns "unknown" for errors outside the taxonomy
// and "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrImport):
		return "import"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "unknown"
	}
}
