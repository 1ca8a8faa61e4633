package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup by key finds no entity
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks a retryable store failure such as pool exhaustion
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnsupportedFormat is returned when a document cannot be read as a structured grid
	ErrUnsupportedFormat = errors.New("document is not a structured spreadsheet")
)
