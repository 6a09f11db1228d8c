package core

import "errors"

// Common errors.
var (
	// ErrBadReference marks an asset-reference token that cannot be
	// resolved to a stored filename.
	ErrBadReference = errors.New("bad asset reference")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)
