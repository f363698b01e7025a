package shared

import (
	"context"
	"time"
)

// Locker grants short-lived exclusive ownership of a key across processes.
type Locker interface {
	// Acquire takes the lock for key, holding it for at most ttl.
	// It returns the release token and false when another holder owns it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	// Release drops the lock if token still owns it.
	Release(ctx context.Context, key, token string) error
	// Close releases resources held by the locker
	Close() error
}
