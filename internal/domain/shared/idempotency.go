package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks processed operation keys so replayed submissions
// can be detected and rejected
type IdempotencyStore interface {
	// MarkProcessed atomically marks a key as processed with a TTL
	// Returns true if the key was newly marked, false if it already existed
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases store resources
	Close() error
}
