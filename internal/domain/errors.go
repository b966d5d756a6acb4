package domain

import "errors"

// Sentinel errors used across all layers.
var (
	// ErrNotFound marks a lookup miss. It is a normal result, not a
	// failure: the renderer turns it into a "no data found" block.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists marks a unique-key violation during bulk import.
	ErrAlreadyExists = errors.New("already exists")
)
