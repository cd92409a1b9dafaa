package repo

import (
	"errors"
	"fmt"
)

// ErrUnknown tags infrastructure failures that happen outside statement
// execution, such as a transaction begin or commit going wrong.
var ErrUnknown = errors.New("unknown storage failure")

// Error wraps an underlying storage or driver failure. The original
// diagnostic is always retained and reachable through Unwrap.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("repo: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
