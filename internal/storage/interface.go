package storage

import "context"

// Usage reports how much of the durable medium is in use.
type Usage struct {
	TotalBytes int64
	ItemCount  int
}

// Backend is the raw durable medium underneath the key/value store. Only the
// Store touches a Backend; every other component goes through the Store.
type Backend interface {
	// Put writes value under key, returning model.ErrStoreFull when the
	// medium cannot hold it.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the value for key, or model.ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys.
	Keys(ctx context.Context) ([]string, error)

	// Usage reports current medium usage.
	Usage(ctx context.Context) (Usage, error)

	// Clear removes everything.
	Clear(ctx context.Context) error
}
