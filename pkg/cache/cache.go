// Package cache stores rendered markup keyed by the input that produced
// it, so repeated conversions of an unchanged figure skip the layout
// engine entirely.
package cache

import "context"

// Cache is the storage interface shared by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under key.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
