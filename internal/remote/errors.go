package remote

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotConfigured is returned by Open when no DSN is set.
	ErrNotConfigured = errors.New("cloud store not configured")
)
