package engine

import "errors"

// Error taxonomy surfaced by every engine operation. Callers classify with
// errors.Is; the HTTP layer maps these onto status codes.
var (
	// ErrInvalidArgument is returned for bad input: empty titles, update
	// requests carrying no recognized field.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a referenced column or card does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when a transaction could not commit within
	// its retry budget.
	ErrUnavailable = errors.New("unavailable")
)
