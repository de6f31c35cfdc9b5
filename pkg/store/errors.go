package store

import "errors"

var (
	// ErrNotFound is returned by single-row lookups when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrUpstreamUnavailable wraps every failure to reach or query the
	// datastore. Callers may retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrValidation marks malformed input such as an unknown operator, an
	// invalid identifier or a non-positive limit.
	ErrValidation = errors.New("validation failed")
)
