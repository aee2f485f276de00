// Package session owns the operator's authenticated-user record: it persists the record in a
// durable storage slot, re-validates the token expiry once at start-up and answers whether the
// process is currently authenticated.
package session

// StorageKey is the fixed slot the session record is persisted under.
const StorageKey = "staroseUser"

// Session is the record returned by the authentication exchange. It is replaced wholesale on
// login and logout and never mutated in place.
type Session struct {
	ID    string `json:"_id"`   // Opaque user id
	Email string `json:"email"` // Login email, display only
	Role  string `json:"role"`  // Display/authorization hint for other components, not enforced here
	Token string `json:"token"` // Bearer credential carrying an exp claim
}

// Storage is a durable key-value slot holding the serialized session record as text.
// Remove must not fail when the key is absent.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
