package remote

import "errors"

var (
	// ErrNotConnected indicates there is no active session; mutations fail
	// fast with this error without contacting the backend.
	ErrNotConnected = errors.New("not connected to backend")

	// ErrNotFound indicates the backend has no record for the given
	// identifier.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates an insert collided with an existing
	// identifier.
	ErrAlreadyExists = errors.New("record already exists")
)
