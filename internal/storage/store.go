// Package storage is the persistence layer for all storefront state.
//
// Values are opaque JSON blobs under flat string keys: one key per cart
// scope (e.g. "pharmacy2_cart", "pharmacy2_cart_demo"), one key per placed
// order ("pharmacy2_order_<number>"), plus the collaborator-owned profile
// and setup blobs that the engine reads but never writes.
//
// A missing key and an empty cart are the same thing: mutations that empty
// a cart delete its key rather than writing an empty value.
//
// Writers within one process are serialized by the implementations; there
// is no cross-process versioning, so two processes pointed at the same
// store are last-write-wins.
package storage

import (
	"context"
	"errors"
)

var ErrKeyRequired = errors.New("storage: key must not be empty")

// Store is the persistence adapter injected into the cart store and the
// order repository.
type Store interface {
	// Get returns the raw value at key. The second result is false when
	// the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put writes value at key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists all keys starting with prefix, in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
