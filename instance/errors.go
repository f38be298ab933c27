package instance

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is matched by every parse failure (see ParseError).
	ErrMalformed = errors.New("instance: malformed instance file")

	// ErrInvalidInstance is returned by New when the data violates an
	// invariant (n or m not positive, cost length, non-positive cost).
	// Coverage shape and value problems wrap the matrix sentinels instead.
	ErrInvalidInstance = errors.New("instance: invalid instance")

	// ErrAssignment reports an assignment of the wrong length or with an
	// entry other than 0 or 1.
	ErrAssignment = errors.New("instance: invalid assignment")
)

// ParseError describes a malformed instance file. Line is 1-based and refers to
// the physical line of the input (0 when the input ended early).
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("instance: %s", e.Msg)
	}

	return fmt.Sprintf("instance: line %d: %s", e.Line, e.Msg)
}

// Unwrap lets errors.Is(err, ErrMalformed) match any ParseError.
func (e *ParseError) Unwrap() error { return ErrMalformed }
