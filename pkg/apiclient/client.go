package apiclient

import "context"

// Client is the gateway consumed by the session manager and the web shell.
// Every method returns an *Error on failure; the Kind sentinels in errors.go
// describe the taxonomy per method:
//
//   - Login: ErrInvalidCredentials, ErrValidation
//   - Register: ErrValidation
//   - Profile: ErrUnauthorized
//   - UpdateProfile: ErrUnauthorized, ErrValidation
//   - Refresh: ErrUnauthorized
//
// Any method can additionally fail with ErrNetwork.
type Client interface {
	// Login exchanges a username/password for a token pair.
	Login(ctx context.Context, creds Credentials) (TokenPair, error)

	// Register creates an account and returns its first token pair.
	Register(ctx context.Context, reg Registration) (TokenPair, error)

	// Profile fetches the profile of the token's owner.
	Profile(ctx context.Context, accessToken string) (User, error)

	// UpdateProfile applies the given changes and returns the server's new
	// authoritative representation of the profile.
	UpdateProfile(ctx context.Context, accessToken string, update ProfileUpdate) (User, error)

	// Logout invalidates the access token server-side. Local state is the
	// session manager's job, not the gateway's.
	Logout(ctx context.Context, accessToken string) error

	// Refresh exchanges a refresh token for a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}
