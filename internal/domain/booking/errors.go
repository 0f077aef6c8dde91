// Package booking holds the appointment-booking contract: the request
// shape, the error taxonomy and the transactional store boundary the
// coordinator runs against.
package booking

import "errors"

var (
	// ErrInvalidRequest: caller error, required identifiers missing or
	// malformed. Not retryable without fixing the request.
	ErrInvalidRequest = errors.New("invalid booking request")

	// ErrClientNotFound: the referenced client does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrPermissionDenied: the client exists but belongs to another
	// account. Never retried.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrStoreUnavailable: transient commit failure. The store guarantees
	// no partial effects, so the whole operation is safe to retry from
	// scratch. Retrying is the caller's decision.
	ErrStoreUnavailable = errors.New("store unavailable")
)
