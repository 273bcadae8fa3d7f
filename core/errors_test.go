package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: No recording in progress", ErrInvalidState), "invalid_state"},
		{fmt.Errorf("%w: speed must be positive", ErrInvalidArgument), "invalid_argument"},
		{fmt.Errorf("%w: Failed to import session", ErrImport), "import"},
		{fmt.Errorf("%w: session abc", ErrNotFound), "not_found"},
		{errors.New("disk on fire"), "unknown"},
	}
	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
