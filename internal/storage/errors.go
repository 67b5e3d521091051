package storage

import "errors"

// Storage errors. These form the closed error taxonomy of the persistence
// layer; callers match them with errors.Is.
var (
	// ErrNotFound is returned when a requested report does not exist,
	// including latest-retrieval on an empty store.
	ErrNotFound = errors.New("report not found")

	// ErrStorage wraps persistence failures (I/O, permissions, connectivity).
	// Stores attach the underlying cause when wrapping.
	ErrStorage = errors.New("storage failure")

	// ErrDuplicateKey is returned when a report identifier already exists.
	// Report stores are append-only and never update in place.
	ErrDuplicateKey = errors.New("duplicate report id: append-only store does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
