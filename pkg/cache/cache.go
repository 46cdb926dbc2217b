// Package cache provides the byte-level cache backends used by the HTTP
// clients in pkg/integrations.
//
// Two backends are available:
//
//   - [FileCache]: one JSON entry file per key under a directory, with
//     per-entry expiry. Used by the CLI (~/.cache/autoreadme).
//   - [NullCache]: never stores anything. Used for --no-cache and in tests.
//
// The package also carries the retry helpers shared by those clients,
// since cached fetches are the only place retries happen.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
