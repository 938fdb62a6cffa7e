package counter

import "errors"

var (
	// ErrRateLimited indicates the client is still inside its cooldown window.
	ErrRateLimited = errors.New("rate limited")
	// ErrStorageUnavailable indicates the counter store could not be used.
	ErrStorageUnavailable = errors.New("counter storage unavailable")
	// ErrUnknownKind indicates an action kind without a configured policy.
	ErrUnknownKind = errors.New("unknown action kind")
)
