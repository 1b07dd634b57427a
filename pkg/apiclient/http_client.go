package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPClient implements Client against the REST gateway described by the
// endpoints below. All request/response bodies are JSON; failures decode the
// gateway's {"error": "..."} envelope into an *Error.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client, e.g. to install a
// transport with custom TLS settings.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		h.client.Timeout = d
	}
}

// NewHTTP creates a gateway client rooted at baseURL (e.g.
// "http://localhost:8000/api").
func NewHTTP(baseURL string, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Login exchanges a username/password for a token pair.
func (h *HTTPClient) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	var pair TokenPair
	err := h.do(ctx, http.MethodPost, "/auth/login", "", creds, &pair, loginCall)
	return pair, err
}

// Register creates an account and returns its first token pair.
func (h *HTTPClient) Register(ctx context.Context, reg Registration) (TokenPair, error) {
	var pair TokenPair
	err := h.do(ctx, http.MethodPost, "/auth/register", "", reg, &pair, apiCall)
	return pair, err
}

// Profile fetches the profile of the token's owner.
func (h *HTTPClient) Profile(ctx context.Context, accessToken string) (User, error) {
	var user User
	err := h.do(ctx, http.MethodGet, "/auth/profile", accessToken, nil, &user, apiCall)
	return user, err
}

// UpdateProfile applies the given changes and returns the server's new
// authoritative profile.
func (h *HTTPClient) UpdateProfile(ctx context.Context, accessToken string, update ProfileUpdate) (User, error) {
	var user User
	err := h.do(ctx, http.MethodPut, "/auth/profile", accessToken, update, &user, apiCall)
	return user, err
}

// Logout invalidates the access token server-side.
func (h *HTTPClient) Logout(ctx context.Context, accessToken string) error {
	return h.do(ctx, http.MethodPost, "/auth/logout", accessToken, nil, nil, apiCall)
}

// Refresh exchanges a refresh token for a fresh token pair. The refresh
// token travels in the body, not the Authorization header.
func (h *HTTPClient) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}

	var pair TokenPair
	err := h.do(ctx, http.MethodPost, "/auth/refresh", "", body, &pair, apiCall)
	return pair, err
}

// callKind distinguishes the login endpoint, where a 401 means "bad
// credentials" rather than "bad token".
type callKind int

const (
	apiCall callKind = iota
	loginCall
)

func (h *HTTPClient) do(ctx context.Context, method, endpoint, accessToken string, body, out any, kind callKind) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newError(ErrNetwork, "", 0)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+endpoint, reader)
	if err != nil {
		return newError(ErrNetwork, "", 0)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return newError(ErrNetwork, "", 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return h.decodeError(resp, kind)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(ErrNetwork, "", resp.StatusCode)
	}
	return nil
}

// decodeError turns a non-2xx response into an *Error. The gateway's error
// envelope is {"error": "..."}; an unparseable body normalizes to the
// generic network message so transport details never reach the UI.
func (h *HTTPClient) decodeError(resp *http.Response, kind callKind) error {
	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	return newError(classify(resp.StatusCode, kind), envelope.Error, resp.StatusCode)
}

func classify(status int, kind callKind) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if kind == loginCall {
			return ErrInvalidCredentials
		}
		return ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return ErrValidation
	default:
		return ErrNetwork
	}
}
