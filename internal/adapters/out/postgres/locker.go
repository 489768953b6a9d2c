package postgres

import (
	"context"

	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// GormTickLocker serializes scheduled ticks across service instances using
// postgres advisory locks. The lock is transaction scoped
// (pg_try_advisory_xact_lock), so it is released automatically when the
// wrapping transaction ends, even if the instance crashes mid-tick.
type GormTickLocker struct {
	db *gorm.DB
}

// NewGormTickLocker creates a tick locker on the given connection.
func NewGormTickLocker(db *gorm.DB) *GormTickLocker {
	return &GormTickLocker{db: db}
}

// WithLock runs fn while holding the advisory lock for key. Returns
// ports.ErrLockNotAcquired without running fn when another instance already
// holds the lock.
func (l *GormTickLocker) WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acquired bool
		err := tx.Raw("SELECT pg_try_advisory_xact_lock(?)", key).Scan(&acquired).Error
		if err != nil {
			return err
		}
		if !acquired {
			return ports.ErrLockNotAcquired
		}

		return fn(ctx)
	})
}
