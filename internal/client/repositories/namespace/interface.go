// Package namespace is the durable key/value area the record store persists
// into. One Repository is scoped to a single origin, the same way a browser's
// local storage is scoped to one origin of one profile.
//
// Contract shared by every backend:
//   - Get returns (nil, nil) for a key that was never set or was deleted.
//   - Set fully replaces the previous value.
//   - Delete of a missing key is a no-op.
//   - Clear removes every key of the origin and nothing else.
package namespace

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// UpdateFunc receives the current value (nil when unset) and returns the
// value to store.
type UpdateFunc func(current []byte) ([]byte, error)

// Updater is implemented by backends that can read-modify-write a single key
// without another writer slipping in between.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
