// Package credstore provides durable key-value persistence for the two
// opaque credential strings (access token, refresh token) that make up a
// client session. It is the native counterpart of origin-scoped browser
// storage: values survive process restarts and belong to exactly one
// installation of the application.
//
// The package is storage-agnostic: anything satisfying the Store interface
// can back the session manager. Three implementations ship out of the box:
//
//   - FileStore: a JSON document on disk with atomic replacement, the
//     default for desktop and localhost runs.
//   - MemoryStore: a map behind a mutex, for tests and ephemeral runs.
//   - RedisStore: for containerized deployments without a persistent disk.
//
// # Usage
//
//	store, err := credstore.NewFileStore(filepath.Join(cfgDir, "credentials.json"))
//	if err != nil {
//	    // handle error
//	}
//	_ = store.Set(credstore.AccessTokenKey, token)
//
// The Store interface is deliberately synchronous and context-free: the
// session manager reads tokens on hot paths and treats the store as an
// exclusively owned local resource, never as a remote dependency it has to
// await. RedisStore hides its network round trips behind short internal
// timeouts to preserve that contract.
package credstore
