// Package db holds the storage contracts shared by the wire adapters.
package db

import (
	"context"
	"time"
)

// Cache is the key-value store behind the query-embedding cache.
type Cache interface {
	Pinger
	KV
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KV reads and writes opaque values. A ttl of zero means no expiry; on Get a
// positive ttl restarts the entry's expiry.
type KV interface {
	Get(ctx context.Context, key string, ttl time.Duration) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
