// Package inboxrepo implements the consumer-side dedup set. Each consumer
// group keeps its own table of processed event ids so the groups never
// suppress each other's deliveries.
package inboxrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// ProcessedEventDTO represents one processed event id. Rows are insert-only;
// the primary key constraint is what makes concurrent duplicate deliveries
// safe.
type ProcessedEventDTO struct {
	EventID     string `gorm:"primaryKey"`
	ProcessedAt time.Time
}

// GormProcessedEventRepository implements ProcessedEventRepository using
// GORM. The table name is a parameter so each consumer group gets its own
// dedup set.
type GormProcessedEventRepository struct {
	db    *gorm.DB
	table string
}

// NewGormProcessedEventRepository creates a dedup repository backed by the
// given table. Requires the gorm connection to be opened with error
// translation so unique violations surface as gorm.ErrDuplicatedKey.
func NewGormProcessedEventRepository(db *gorm.DB, table string) *GormProcessedEventRepository {
	return &GormProcessedEventRepository{db: db, table: table}
}

// Add records an event id as processed. Returns
// ports.ErrEventAlreadyProcessed when the id was recorded before.
func (r *GormProcessedEventRepository) Add(ctx context.Context, eventID string) error {
	dto := ProcessedEventDTO{
		EventID:     eventID,
		ProcessedAt: time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Table(r.table).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrEventAlreadyProcessed
	}

	return err
}

// Exists reports whether an event id has already been processed.
func (r *GormProcessedEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(r.table).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
