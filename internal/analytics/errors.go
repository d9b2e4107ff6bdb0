package analytics

import "fmt"

// InvalidArgumentError reports a caller error: a bad enum value, an
// out-of-range year, a non-positive top_n. It is surfaced verbatim to
// the dispatch layer.
type InvalidArgumentError struct {
	Op     string // operation that rejected the argument
	Arg    string // argument name
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument %q: %s", e.Op, e.Arg, e.Reason)
}

// InsufficientDataError reports an analysis that needs more data points
// than the entity has in range. It is a structured "cannot compute"
// result, not a crash.
type InsufficientDataError struct {
	Op       string
	EntityID string
	Needed   int
	Got      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: entity %q has %d data points in range, need at least %d",
		e.Op, e.EntityID, e.Got, e.Needed)
}
