package boardsearch

import "github.com/kailas-cloud/boardsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest  = domain.ErrInvalidRequest
	ErrUnauthenticated = domain.ErrUnauthenticated
)
