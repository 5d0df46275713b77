// Package storage provides the durable client-side key-value store backing
// the token store and the cart. It is the localStorage analogue: a handful
// of fixed keys, synchronous reads and writes, scoped to one profile.
package storage

// Keys used by the client. They match the web client's localStorage keys so
// the persisted shapes stay comparable across implementations.
const (
	KeyAuth    = "auth"
	KeyCart    = "cart"
	KeyCookies = "cookies"
)

// Storage is a small synchronous key-value store.
type Storage interface {
	// Get returns the value for key, reporting whether it was present.
	Get(key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
