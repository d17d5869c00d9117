package ports

import (
	"context"
	"time"
)

// Cache is the key-value cache fronting the record stores. Implementations
// must degrade gracefully: an error return means "treat as a miss", never a
// reason to stop serving from the authoritative store.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key until now+ttl. Expiry is enforced by the
	// backend; there is no eviction scan on our side.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}
