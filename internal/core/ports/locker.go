package ports

import (
	"context"
	"errors"
)

// ErrLockNotAcquired is returned by WithLock when another instance already
// holds the lock for the given key. The caller skips the tick; it is not a
// failure.
var ErrLockNotAcquired = errors.New("lock not acquired")

// TickLocker serializes scheduled ticks across service instances. fn runs
// only while the lock for key is held, so exactly one instance executes a
// given tick even when the service is scaled out.
type TickLocker interface {
	WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error
}
