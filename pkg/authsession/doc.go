// Package authsession owns the client-side authentication session: the
// persisted access/refresh token pair, the profile snapshot, and the rules
// for moving between authenticated and unauthenticated states.
//
// # Architecture
//
// A Manager orchestrates two collaborators: a credstore.Store holding the
// two opaque tokens across restarts, and an apiclient.Client issuing the
// actual gateway calls. Consumers (route guards, form handlers) read the
// projection (User, IsAuthenticated, IsLoading) and invoke the four
// operations: Login, Logout, CheckAuth, UpdateProfile.
//
//	┌──────────┐  projection  ┌─────────────┐
//	│ Consumer │ ───────────► │   Manager   │
//	└──────────┘              └─────────────┘
//	                           │          │
//	                 tokens    ▼          ▼   HTTP
//	                 ┌───────────┐   ┌──────────┐
//	                 │ credstore │   │ apiclient│
//	                 └───────────┘   └──────────┘
//
// # Token refresh protocol
//
// CheckAuth revalidates a persisted session without a fresh login. A failed
// profile fetch is read as "access token expired" and recovered by
// exchanging the refresh token for a new pair, exactly once. A failed
// exchange is always session-ending: the tokens are cleared and the user
// must authenticate again. There is no retry and no second concurrent
// exchange; CheckAuth runs once at startup and callers gate re-invocations
// on IsLoading.
//
// # State guarantees
//
// Every operation resolves to a well-defined state: IsAuthenticated is true
// exactly when a profile snapshot is present, and the two tokens are either
// both persisted or both absent once an operation returns. Login cleans up
// after itself on partial failure; Logout never fails.
package authsession
