package auth

import "errors"

var (
	// ErrNoMatchingUser is the only failure a credential check reports.
	// There is no lockout and no rate limiting.
	ErrNoMatchingUser = errors.New("auth: no matching user found")
)
