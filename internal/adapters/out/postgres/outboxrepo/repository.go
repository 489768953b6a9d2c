package outboxrepo

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists a domain event as a pending outbox row.
func (r *GormOutboxRepository) Add(ctx context.Context, e event.Event) error {
	dto, err := fromDomain(e)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending retrieves all not-yet-published events, oldest first.
func (r *GormOutboxRepository) GetPending(ctx context.Context) ([]ports.OutboxEvent, error) {
	var dtos []OutboxEventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	pending := make([]ports.OutboxEvent, 0, len(dtos))
	for _, dto := range dtos {
		pending = append(pending, toPending(dto))
	}

	return pending, nil
}

// MarkPublished records a successful publish by stamping the row. The row is
// retained; it just stops being selected as pending.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, eventID string) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&OutboxEventDTO{}).
		Where("event_id = ?", eventID).
		Update("published_at", now)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox event", eventID)
	}

	return nil
}
