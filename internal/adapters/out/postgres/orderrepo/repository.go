package orderrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(number kernel.OrderNumber, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its item snapshot and any
// history entries the aggregate already carries.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.insertHistory(ctx, aggregate.UncommittedHistory()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderNumber(), aggregate)
	return nil
}

// Update saves an existing order to the database and appends the history
// entries recorded since the aggregate was loaded. The item snapshot is
// immutable and is not touched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ?", dto.Number).
		Updates(map[string]any{
			"status":   dto.Status,
			"comments": dto.Comments,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.insertHistory(ctx, aggregate.UncommittedHistory()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderNumber(), aggregate)
	return nil
}

// GetByNumber retrieves an order by its number with its full status history.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "number = ?", number.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number.String())
		}
		return nil, err
	}

	historyDTOs, err := r.historyRows(ctx, number.String())
	if err != nil {
		return nil, err
	}

	return toDomain(dto, historyDTOs)
}

// GetAllInStatus retrieves all orders in the given status, oldest first.
// The committed history is not loaded here; the job paths that use this
// method only append new entries.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at").
		Find(&dtos, "status = ?", status.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, dtoErr := toDomain(dto, nil)
		if dtoErr != nil {
			return nil, dtoErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetHistory retrieves the status history of an order, oldest first.
func (r *GormOrderRepository) GetHistory(ctx context.Context, number kernel.OrderNumber) ([]order.HistoryEntry, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	historyDTOs, err := r.historyRows(ctx, number.String())
	if err != nil {
		return nil, err
	}

	entries := make([]order.HistoryEntry, 0, len(historyDTOs))
	for _, dto := range historyDTOs {
		entry, entryErr := historyToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *GormOrderRepository) insertHistory(ctx context.Context, entries []order.HistoryEntry) error {
	for _, entry := range entries {
		dto := historyFromDomain(entry)
		if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) historyRows(ctx context.Context, number string) ([]HistoryDTO, error) {
	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at, id").
		Find(&dtos, "order_number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return dtos, nil
}
