package apiclient

// TokenPair is the gateway's token response: an access/refresh pair plus the
// scheme the access token is meant to be presented with (always "bearer" in
// practice).
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// User is the server-held profile record. It is replaced wholesale on every
// successful fetch or update; the server representation is authoritative.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the account-creation request body.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries the fields to change on the profile. Nil fields are
// omitted from the request entirely, so the server distinguishes "unchanged"
// from "cleared".
type ProfileUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Mobile    *string `json:"mobile,omitempty"`
}
