// Package ports defines the contracts between the ordering core and its
// infrastructure adapters. These interfaces establish the boundary that keeps
// the domain and application layers free of persistence, transport and
// scheduling concerns.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations persist the order row together with any uncommitted history
// entries the aggregate carries, so that a single Add or Update is atomic
// with respect to the audit trail.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including any
	// history entries recorded since the aggregate was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByNumber retrieves an order aggregate by its order number, with its
	// full status history. Returns errs.ObjectNotFoundError when no order
	// with that number exists.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// oldest first. Used by the processing job to reconcile NEW orders and
	// re-notify PAYMENT_REJECTED ones.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetHistory retrieves the status history of an order, oldest first,
	// without loading the aggregate.
	GetHistory(ctx context.Context, number kernel.OrderNumber) ([]order.HistoryEntry, error)
}
