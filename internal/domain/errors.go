package domain

import (
	"errors"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals malformed search parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthenticated signals a request without a resolvable viewer.
	ErrUnauthenticated = errors.New("unauthenticated")
)
