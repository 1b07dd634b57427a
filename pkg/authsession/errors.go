package authsession

import "errors"

var (
	// ErrNotAuthenticated indicates an operation that requires a persisted
	// access token was attempted without one. No network call was made.
	ErrNotAuthenticated = errors.New("authsession.not_authenticated")
)
