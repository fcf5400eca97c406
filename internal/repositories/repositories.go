// package repositories provides the persistence layer for locally stored
// client state.
//
// The client keeps a small amount of durable state between runs: the bearer
// token issued at login and the cached display identity. Both live in a
// string key-value store so the auth layer can be tested against an
// in-memory implementation.
package repositories

import "fmt"

// Store defines the persistence port for string-valued client state.
//
// Get returns ErrKeyNotFound when the key is absent. Set and Delete are
// synchronous: once they return, the value is durable (or gone).
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// ErrKeyNotFound is returned by Store.Get for absent keys.
var ErrKeyNotFound = fmt.Errorf("key not found")

// Well-known credential keys.
const (
	AuthTokenKey = "auth_token"
	AuthUserKey  = "auth_user"
)
