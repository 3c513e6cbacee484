package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Well-known state keys persisted by the storefront session.
const (
	KeyCartItems      = "cartItems"
	KeyCartOpen       = "isCartOpen"
	KeySessionRef     = "cartSessionId"
	KeySavedCustomers = "savedCustomers"
	KeyCookieConsent  = "cookieConsent"
)

// ErrNotFound is returned by Get when no value exists under the key.
// A miss is a normal outcome for first-run state, not a failure.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable key-value store for session state. Values are
// JSON-serialized; each key holds one document. This is the server-side
// analog of the browser's local storage.
type Store interface {
	// Get unmarshals the value under key into v. Returns ErrNotFound when
	// the key has never been written.
	Get(ctx context.Context, key string, v interface{}) error
	// Put marshals v and durably replaces the value under key.
	Put(ctx context.Context, key string, v interface{}) error
	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
	// Close releases any underlying resources.
	Close() error
}

// Open selects and initializes a store backend from environment variables.
// STORE_BACKEND chooses "file" (default), "postgres" or "redis".
func Open() (Store, error) {
	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "file"
	}

	switch backend {
	case "file":
		dir := os.Getenv("STORE_DIR")
		if dir == "" {
			dir = "data/state"
		}
		return NewFileStore(dir)
	case "postgres":
		return NewPostgresStore()
	case "redis":
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL must be set when STORE_BACKEND=redis")
		}
		return NewRedisStore(redisURL)
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want file, postgres or redis)", backend)
	}
}
