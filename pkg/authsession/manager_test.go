package authsession_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstarter/webstarter/pkg/apiclient"
	"github.com/webstarter/webstarter/pkg/authsession"
	"github.com/webstarter/webstarter/pkg/credstore"
)

// fakeGateway implements apiclient.Client with function fields and call
// counters, so each test wires exactly the behavior it needs.
type fakeGateway struct {
	profileFn func(accessToken string) (apiclient.User, error)
	refreshFn func(refreshToken string) (apiclient.TokenPair, error)
	updateFn  func(accessToken string, update apiclient.ProfileUpdate) (apiclient.User, error)

	profileCalls int
	refreshCalls int
	updateCalls  int
}

func (f *fakeGateway) Login(ctx context.Context, creds apiclient.Credentials) (apiclient.TokenPair, error) {
	return apiclient.TokenPair{}, errors.New("not implemented")
}

func (f *fakeGateway) Register(ctx context.Context, reg apiclient.Registration) (apiclient.TokenPair, error) {
	return apiclient.TokenPair{}, errors.New("not implemented")
}

func (f *fakeGateway) Profile(ctx context.Context, accessToken string) (apiclient.User, error) {
	f.profileCalls++
	return f.profileFn(accessToken)
}

func (f *fakeGateway) UpdateProfile(ctx context.Context, accessToken string, update apiclient.ProfileUpdate) (apiclient.User, error) {
	f.updateCalls++
	return f.updateFn(accessToken, update)
}

func (f *fakeGateway) Logout(ctx context.Context, accessToken string) error {
	return nil
}

func (f *fakeGateway) Refresh(ctx context.Context, refreshToken string) (apiclient.TokenPair, error) {
	f.refreshCalls++
	return f.refreshFn(refreshToken)
}

var testUser = apiclient.User{ID: 1, Username: "alice", Email: "alice@example.com"}

func unauthorized() *apiclient.Error {
	return &apiclient.Error{Kind: apiclient.ErrUnauthorized, Message: "Token is invalid or expired", Status: 401}
}

// requireConsistent asserts the core invariant: IsAuthenticated is true iff
// a user snapshot is present.
func requireConsistent(t *testing.T, mgr *authsession.Manager) {
	t.Helper()
	assert.Equal(t, mgr.User() != nil, mgr.IsAuthenticated())
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("persists tokens and fetches profile", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		gw := &fakeGateway{
			profileFn: func(token string) (apiclient.User, error) {
				assert.Equal(t, "acc-1", token)
				return testUser, nil
			},
		}
		mgr := authsession.New(store, gw)

		err := mgr.Login(ctx, "acc-1", "ref-1")
		require.NoError(t, err)

		assert.True(t, mgr.IsAuthenticated())
		require.NotNil(t, mgr.User())
		assert.Equal(t, testUser, *mgr.User())

		access, ok := store.Get(credstore.AccessTokenKey)
		require.True(t, ok)
		assert.Equal(t, "acc-1", access)
		refresh, ok := store.Get(credstore.RefreshTokenKey)
		require.True(t, ok)
		assert.Equal(t, "ref-1", refresh)
		requireConsistent(t, mgr)
	})

	t.Run("cleans up fully when profile fetch fails", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		gw := &fakeGateway{
			profileFn: func(string) (apiclient.User, error) {
				return apiclient.User{}, unauthorized()
			},
		}
		mgr := authsession.New(store, gw)

		err := mgr.Login(ctx, "acc-1", "ref-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, apiclient.ErrUnauthorized)

		assert.False(t, mgr.IsAuthenticated())
		assert.Nil(t, mgr.User())
		_, ok := store.Get(credstore.AccessTokenKey)
		assert.False(t, ok)
		_, ok = store.Get(credstore.RefreshTokenKey)
		assert.False(t, ok)
		requireConsistent(t, mgr)
	})

	t.Run("returned user is a copy", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		gw := &fakeGateway{
			profileFn: func(string) (apiclient.User, error) { return testUser, nil },
		}
		mgr := authsession.New(store, gw)
		require.NoError(t, mgr.Login(ctx, "acc-1", "ref-1"))

		u := mgr.User()
		u.Username = "mallory"
		assert.Equal(t, "alice", mgr.User().Username)
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears user and both store keys", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		gw := &fakeGateway{
			profileFn: func(string) (apiclient.User, error) { return testUser, nil },
		}
		mgr := authsession.New(store, gw)
		require.NoError(t, mgr.Login(ctx, "acc-1", "ref-1"))
		require.True(t, mgr.IsAuthenticated())

		mgr.Logout()

		assert.False(t, mgr.IsAuthenticated())
		assert.Nil(t, mgr.User())
		_, ok := store.Get(credstore.AccessTokenKey)
		assert.False(t, ok)
		_, ok = store.Get(credstore.RefreshTokenKey)
		assert.False(t, ok)
		requireConsistent(t, mgr)
	})

	t.Run("is a no-op on an already clean session", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		mgr := authsession.New(store, &fakeGateway{})

		mgr.Logout()

		assert.False(t, mgr.IsAuthenticated())
		assert.Nil(t, mgr.User())
	})
}

func TestManager_CheckAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("no persisted tokens", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		gw := &fakeGateway{}
		mgr := authsession.New(store, gw)
		require.True(t, mgr.IsLoading())

		ok := mgr.CheckAuth(ctx)

		assert.False(t, ok)
		assert.False(t, mgr.IsLoading())
		assert.Nil(t, mgr.User())
		assert.Zero(t, gw.profileCalls)
		assert.Zero(t, gw.refreshCalls)
	})

	t.Run("valid access token", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		require.NoError(t, store.Set(credstore.AccessTokenKey, "acc-1"))
		require.NoError(t, store.Set(credstore.RefreshTokenKey, "ref-1"))

		gw := &fakeGateway{
			profileFn: func(token string) (apiclient.User, error) {
				assert.Equal(t, "acc-1", token)
				return testUser, nil
			},
		}
		mgr := authsession.New(store, gw)

		ok := mgr.CheckAuth(ctx)

		assert.True(t, ok)
		assert.False(t, mgr.IsLoading())
		assert.True(t, mgr.IsAuthenticated())
		assert.Zero(t, gw.refreshCalls)
		requireConsistent(t, mgr)
	})

	t.Run("expired access token with valid refresh token", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		require.NoError(t, store.Set(credstore.AccessTokenKey, "acc-old"))
		require.NoError(t, store.Set(credstore.RefreshTokenKey, "ref-old"))

		gw := &fakeGateway{
			profileFn: func(token string) (apiclient.User, error) {
				if token == "acc-old" {
					return apiclient.User{}, unauthorized()
				}
				return testUser, nil
			},
			refreshFn: func(refreshToken string) (apiclient.TokenPair, error) {
				assert.Equal(t, "ref-old", refreshToken)
				return apiclient.TokenPair{AccessToken: "acc-new", RefreshToken: "ref-new", TokenType: "bearer"}, nil
			},
		}
		mgr := authsession.New(store, gw)

		ok := mgr.CheckAuth(ctx)

		assert.True(t, ok)
		assert.True(t, mgr.IsAuthenticated())
		assert.Equal(t, 1, gw.refreshCalls)
		assert.Equal(t, 2, gw.profileCalls)

		access, present := store.Get(credstore.AccessTokenKey)
		require.True(t, present)
		assert.Equal(t, "acc-new", access)
		refresh, present := store.Get(credstore.RefreshTokenKey)
		require.True(t, present)
		assert.Equal(t, "ref-new", refresh)
		requireConsistent(t, mgr)
	})

	t.Run("expired access token with expired refresh token", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		require.NoError(t, store.Set(credstore.AccessTokenKey, "acc-old"))
		require.NoError(t, store.Set(credstore.RefreshTokenKey, "ref-old"))

		gw := &fakeGateway{
			profileFn: func(string) (apiclient.User, error) {
				return apiclient.User{}, unauthorized()
			},
			refreshFn: func(string) (apiclient.TokenPair, error) {
				return apiclient.TokenPair{}, unauthorized()
			},
		}
		mgr := authsession.New(store, gw)

		ok := mgr.CheckAuth(ctx)

		assert.False(t, ok)
		assert.False(t, mgr.IsLoading())
		assert.Nil(t, mgr.User())
		assert.Equal(t, 1, gw.refreshCalls)

		_, present := store.Get(credstore.AccessTokenKey)
		assert.False(t, present)
		_, present = store.Get(credstore.RefreshTokenKey)
		assert.False(t, present)
		requireConsistent(t, mgr)
	})

	t.Run("expired access token without refresh token", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		require.NoError(t, store.Set(credstore.AccessTokenKey, "acc-old"))

		gw := &fakeGateway{
			profileFn: func(string) (apiclient.User, error) {
				return apiclient.User{}, unauthorized()
			},
		}
		mgr := authsession.New(store, gw)

		ok := mgr.CheckAuth(ctx)

		assert.False(t, ok)
		assert.Zero(t, gw.refreshCalls)
		_, present := store.Get(credstore.AccessTokenKey)
		assert.False(t, present)
	})

	t.Run("profile fetch fails after successful refresh", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		require.NoError(t, store.Set(credstore.AccessTokenKey, "acc-old"))
		require.NoError(t, store.Set(credstore.RefreshTokenKey, "ref-old"))

		gw := &fakeGateway{
			profileFn: func(string) (apiclient.User, error) {
				return apiclient.User{}, unauthorized()
			},
			refreshFn: func(string) (apiclient.TokenPair, error) {
				return apiclient.TokenPair{AccessToken: "acc-new", RefreshToken: "ref-new"}, nil
			},
		}
		mgr := authsession.New(store, gw)

		ok := mgr.CheckAuth(ctx)

		assert.False(t, ok)
		assert.Nil(t, mgr.User())
		// The refresh token is never retried after its single use.
		assert.Equal(t, 1, gw.refreshCalls)
		_, present := store.Get(credstore.RefreshTokenKey)
		assert.False(t, present)
		requireConsistent(t, mgr)
	})

	t.Run("loading clears on every exit path", func(t *testing.T) {
		for name, setup := range map[string]func(*credstore.MemoryStore, *fakeGateway){
			"no tokens": func(*credstore.MemoryStore, *fakeGateway) {},
			"valid token": func(s *credstore.MemoryStore, gw *fakeGateway) {
				_ = s.Set(credstore.AccessTokenKey, "acc")
				gw.profileFn = func(string) (apiclient.User, error) { return testUser, nil }
			},
			"refresh fails": func(s *credstore.MemoryStore, gw *fakeGateway) {
				_ = s.Set(credstore.AccessTokenKey, "acc")
				_ = s.Set(credstore.RefreshTokenKey, "ref")
				gw.profileFn = func(string) (apiclient.User, error) { return apiclient.User{}, unauthorized() }
				gw.refreshFn = func(string) (apiclient.TokenPair, error) { return apiclient.TokenPair{}, unauthorized() }
			},
		} {
			t.Run(name, func(t *testing.T) {
				store := credstore.NewMemoryStore()
				gw := &fakeGateway{}
				setup(store, gw)
				mgr := authsession.New(store, gw)
				require.True(t, mgr.IsLoading())

				mgr.CheckAuth(ctx)
				assert.False(t, mgr.IsLoading())
			})
		}
	})
}

func TestManager_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	str := func(s string) *string { return &s }

	t.Run("fails without access token and makes no gateway call", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		gw := &fakeGateway{}
		mgr := authsession.New(store, gw)

		_, err := mgr.UpdateProfile(ctx, apiclient.ProfileUpdate{FirstName: str("Alice")})

		assert.ErrorIs(t, err, authsession.ErrNotAuthenticated)
		assert.Zero(t, gw.updateCalls)
	})

	t.Run("replaces the snapshot with the server representation", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		gw := &fakeGateway{
			profileFn: func(string) (apiclient.User, error) { return testUser, nil },
			updateFn: func(token string, update apiclient.ProfileUpdate) (apiclient.User, error) {
				assert.Equal(t, "acc-1", token)
				// The server is authoritative: it returns fields the update
				// never mentioned, and the snapshot must take all of them.
				return apiclient.User{
					ID:        1,
					Username:  "alice",
					Email:     "alice@example.com",
					FirstName: "Alice",
					Role:      "member",
				}, nil
			},
		}
		mgr := authsession.New(store, gw)
		require.NoError(t, mgr.Login(ctx, "acc-1", "ref-1"))

		user, err := mgr.UpdateProfile(ctx, apiclient.ProfileUpdate{FirstName: str("Alice")})
		require.NoError(t, err)

		assert.Equal(t, "Alice", user.FirstName)
		assert.Equal(t, "member", user.Role)
		assert.Equal(t, *user, *mgr.User())
		requireConsistent(t, mgr)
	})

	t.Run("leaves the snapshot untouched on failure", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		gw := &fakeGateway{
			profileFn: func(string) (apiclient.User, error) { return testUser, nil },
			updateFn: func(string, apiclient.ProfileUpdate) (apiclient.User, error) {
				return apiclient.User{}, &apiclient.Error{Kind: apiclient.ErrValidation, Message: "Mobile number is invalid", Status: 400}
			},
		}
		mgr := authsession.New(store, gw)
		require.NoError(t, mgr.Login(ctx, "acc-1", "ref-1"))

		_, err := mgr.UpdateProfile(ctx, apiclient.ProfileUpdate{Mobile: str("nope")})

		assert.ErrorIs(t, err, apiclient.ErrValidation)
		assert.Equal(t, testUser, *mgr.User())
		assert.True(t, mgr.IsAuthenticated())
	})
}
