package authsession

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/webstarter/webstarter/pkg/apiclient"
	"github.com/webstarter/webstarter/pkg/credstore"
)

// Manager owns the lifecycle of the client session: the persisted
// access/refresh pair and the last-fetched profile snapshot. It is the only
// component that writes to the credential store.
//
// The projection (User, IsAuthenticated, IsLoading) is safe to read from any
// goroutine. The operations are not serialized against each other: CheckAuth
// is meant to run once at startup, and callers invoking operations
// concurrently get last-writer-wins on the profile snapshot.
type Manager struct {
	store credstore.Store
	api   apiclient.Client
	log   *slog.Logger

	mu      sync.RWMutex
	user    *apiclient.User
	loading bool
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger attaches a logger for session lifecycle events. Without it the
// manager stays silent.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a session manager over the given store and gateway. The
// session starts in its initializing state (IsLoading reports true) until
// the first CheckAuth resolves it.
func New(store credstore.Store, api apiclient.Client, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		api:     api,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		loading: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// User returns a copy of the current profile snapshot, or nil when the
// session is unauthenticated.
func (m *Manager) User() *apiclient.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a profile snapshot is present, i.e. the
// last credential-validating call succeeded since the last logout.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsLoading reports whether the initial authentication check is still
// pending. Only CheckAuth clears it.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Login persists the token pair obtained from a successful login or
// registration call and fetches the profile it authorizes. On profile-fetch
// failure the session is rolled all the way back (tokens removed, no user)
// before the error is returned, so the caller observes either a fully
// authenticated session or a fully logged-out one, never a partial state.
func (m *Manager) Login(ctx context.Context, accessToken, refreshToken string) error {
	if err := m.store.Set(credstore.AccessTokenKey, accessToken); err != nil {
		m.Logout()
		return err
	}
	if err := m.store.Set(credstore.RefreshTokenKey, refreshToken); err != nil {
		m.Logout()
		return err
	}

	user, err := m.api.Profile(ctx, accessToken)
	if err != nil {
		m.log.Warn("profile fetch after login failed", "error", err)
		m.Logout()
		return err
	}

	m.setUser(&user)
	m.log.Info("session established", "username", user.Username)
	return nil
}

// Logout clears both tokens from the store and drops the profile snapshot.
// It makes no network call (server-side invalidation is the caller's
// separate concern) and always succeeds: store removal failures are logged
// and ignored, since the in-memory session is cleared regardless.
func (m *Manager) Logout() {
	if err := m.store.Remove(credstore.AccessTokenKey); err != nil {
		m.log.Warn("failed to remove access token", "error", err)
	}
	if err := m.store.Remove(credstore.RefreshTokenKey); err != nil {
		m.log.Warn("failed to remove refresh token", "error", err)
	}
	m.setUser(nil)
}

// CheckAuth revalidates the persisted session, typically once at process
// start. A failing profile fetch is treated as an expired access token and
// recovered with exactly one refresh exchange; if that exchange fails, or
// anything after it does, the session is terminated rather than retried.
// Every exit path clears the loading flag.
func (m *Manager) CheckAuth(ctx context.Context) bool {
	defer m.setLoading(false)

	accessToken, ok := m.store.Get(credstore.AccessTokenKey)
	if !ok {
		return false
	}

	user, err := m.api.Profile(ctx, accessToken)
	if err == nil {
		m.setUser(&user)
		return true
	}

	refreshToken, ok := m.store.Get(credstore.RefreshTokenKey)
	if !ok {
		m.Logout()
		return false
	}

	pair, err := m.api.Refresh(ctx, refreshToken)
	if err != nil {
		m.log.Info("token refresh failed, ending session", "error", err)
		m.Logout()
		return false
	}

	if err := m.store.Set(credstore.AccessTokenKey, pair.AccessToken); err != nil {
		m.Logout()
		return false
	}
	if err := m.store.Set(credstore.RefreshTokenKey, pair.RefreshToken); err != nil {
		m.Logout()
		return false
	}

	user, err = m.api.Profile(ctx, pair.AccessToken)
	if err != nil {
		m.log.Warn("profile fetch after refresh failed", "error", err)
		m.Logout()
		return false
	}

	m.setUser(&user)
	m.log.Info("session restored", "username", user.Username)
	return true
}

// UpdateProfile sends the given changes to the gateway and replaces the
// local snapshot with the server's returned representation. It fails with
// ErrNotAuthenticated, before any network call, when no access token is
// persisted. On gateway failure the snapshot is left untouched.
func (m *Manager) UpdateProfile(ctx context.Context, update apiclient.ProfileUpdate) (*apiclient.User, error) {
	accessToken, ok := m.store.Get(credstore.AccessTokenKey)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	user, err := m.api.UpdateProfile(ctx, accessToken, update)
	if err != nil {
		return nil, err
	}

	m.setUser(&user)
	return &user, nil
}

// AccessToken exposes the persisted access token for callers that talk to
// the gateway directly, such as the shell's server-side logout.
func (m *Manager) AccessToken() (string, bool) {
	return m.store.Get(credstore.AccessTokenKey)
}

func (m *Manager) setUser(u *apiclient.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = v
}
