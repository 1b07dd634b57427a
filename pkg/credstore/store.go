package credstore

// Well-known keys used by the session manager. The store itself is
// key-agnostic; these constants exist so every component spells the keys
// the same way.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store persists opaque credential strings across process restarts.
// Implementations must be safe for concurrent use and synchronous from the
// caller's point of view: Get never blocks on anything the caller has to
// await separately.
type Store interface {
	// Get returns the value for key, and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}
