// Package apiclient talks to the token-issuing REST gateway: login,
// registration, logout, profile fetch/update and the refresh-token exchange.
//
// The package exposes a narrow Client interface so the session manager and
// the web shell can be tested against fakes, and one production
// implementation, HTTPClient, speaking JSON over HTTP.
//
// # Error handling
//
// Every failure is normalized into a single *Error value carrying a sentinel
// kind (ErrInvalidCredentials, ErrValidation, ErrUnauthorized, ErrNetwork)
// and a human-readable message taken from the gateway's {"error": "..."}
// envelope. Callers classify with errors.Is and display with Message:
//
//	pair, err := api.Login(ctx, creds)
//	if errors.Is(err, apiclient.ErrInvalidCredentials) {
//	    form.ShowError(apiclient.Message(err))
//	}
//
// Responses with no parseable error body, and transport-level failures that
// produced no response at all, collapse to ErrNetwork with a generic
// message.
package apiclient
