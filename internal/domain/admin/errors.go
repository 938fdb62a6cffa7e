package admin

import "errors"

var (
	// ErrUnauthorized indicates a wrong password or an invalid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotConfigured indicates no admin password hash or secret is set.
	ErrNotConfigured = errors.New("admin access not configured")
)
