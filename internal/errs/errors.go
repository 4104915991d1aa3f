// Package errs defines the error taxonomy shared by controllers and mapped to
// HTTP statuses in handlers. Controllers wrap these sentinels with context via
// fmt.Errorf("...: %w", ...); handlers match with errors.Is.
package errs

import "errors"

var (
	// ErrNotFound covers missing records and records outside the caller's
	// ownership scope. The two are indistinguishable to the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness violation (duplicate vote, RSVP or
	// feedback tuple).
	ErrConflict = errors.New("already exists")

	// ErrValidation signals caller-correctable bad input (rating out of
	// range, missing field).
	ErrValidation = errors.New("validation failed")

	// ErrUpstream signals a failed external catalog lookup or a catalog
	// category with no local mapping. Aborts the request, no retry.
	ErrUpstream = errors.New("upstream failure")
)
