package artifact

import (
	"fmt"

	"github.com/aircanvas/aircanvas/core"
)

var (
	// ErrNotFound is returned when an asset for the given session / id pair
	// does not exist in the underlying store. It wraps core.ErrNotFound so
	// callers can match on either sentinel.
	ErrNotFound = fmt.Errorf("%w: asset not found", core.ErrNotFound)
)
