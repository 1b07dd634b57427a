package apiclient

import "errors"

var (
	// ErrInvalidCredentials indicates the login username/password was rejected.
	ErrInvalidCredentials = errors.New("apiclient.invalid_credentials")

	// ErrValidation indicates the server rejected the request payload
	// (duplicate username, malformed email, and so on).
	ErrValidation = errors.New("apiclient.validation")

	// ErrUnauthorized indicates an invalid or expired token.
	ErrUnauthorized = errors.New("apiclient.unauthorized")

	// ErrNetwork indicates a transport failure or an unintelligible response.
	ErrNetwork = errors.New("apiclient.network")
)

// genericNetworkMessage is shown when the gateway produced no displayable
// message of its own. Transport details never leak to the UI.
const genericNetworkMessage = "Network error. Please try again."

// Error is the single failure type every Client method returns. Kind is one
// of the sentinel errors above (matchable with errors.Is); Message is the
// server-supplied, human-readable text the UI renders verbatim.
type Error struct {
	Kind    error
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// newError builds an *Error, substituting the generic network message when
// the server gave none.
func newError(kind error, message string, status int) *Error {
	if message == "" {
		message = genericNetworkMessage
	}
	return &Error{Kind: kind, Message: message, Status: status}
}

// Message extracts the displayable message from any error returned by this
// package. Unknown errors collapse to the generic network message so raw
// transport errors never reach the UI.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return genericNetworkMessage
}
