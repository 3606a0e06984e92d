package journal

import "errors"

var (
	// ErrNotFound indicates no record exists for the requested sequence number.
	ErrNotFound = errors.New("journal: record not found")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("journal: nil parameter")

	// ErrClosed indicates the journal has been closed.
	ErrClosed = errors.New("journal: closed")
)
