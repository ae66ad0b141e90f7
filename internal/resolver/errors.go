package resolver

import (
	"errors"
	"fmt"
)

// ErrNoVersion is returned when no published version matches a query
var ErrNoVersion = errors.New("no matching version")

// ResolutionError reports a failed metadata lookup or artifact download
type ResolutionError struct {
	Coordinate string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s: %v", e.Coordinate, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
