package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the service can tell a cache miss from a broken backend:
// - ErrNotFound: key does not exist in the store
// - ErrUnavailable: backend skipped, e.g. while its circuit breaker is open
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
