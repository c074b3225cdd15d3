package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references an entry id that does
// not exist.
var ErrNotFound = errors.New("entry not found")

// ValidationError reports malformed entry input. It is surfaced to the
// immediate caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
