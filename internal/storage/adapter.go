// Package storage provides the key-value persistence adapter consumed by
// the reservation store.  State is serialized by the caller as JSON blobs
// and stored under well-known keys; the adapter itself is agnostic to the
// shape of the data.  Implementations exist for Redis (primary), plain
// memory (tests and fallback) and a failover combination of the two.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
// Callers treat an absent key as empty state, not as a failure.
var ErrKeyNotFound = errors.New("storage: key not found")

// Adapter is the persistence contract of the reservation store.  All
// operations are scoped by context so callers can bound their latency.
type Adapter interface {
	// Get returns the blob stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set durably stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes the value under key.  Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}
