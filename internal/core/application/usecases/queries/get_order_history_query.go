package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery retrieves the status transition history of an order,
// oldest entry first.
//
// Example:
//
//	query, _ := NewGetOrderHistoryQuery(number)
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order history: %w", err)
//	}
//
//	for _, e := range entries {
//	    fmt.Printf("%s -> %s by %s\n", e.FromStatus, e.ToStatus, e.Actor)
//	}
type GetOrderHistoryQuery struct {
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for an order's status history.
func NewGetOrderHistoryQuery(orderNumber kernel.OrderNumber) (GetOrderHistoryQuery, error) {
	if err := orderNumber.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderNumber returns the external identifier of the requested order.
func (q GetOrderHistoryQuery) OrderNumber() kernel.OrderNumber {
	return q.orderNumber
}

// GetOrderHistoryQueryResponse represents one status transition of an order.
type GetOrderHistoryQueryResponse struct {
	FromStatus string
	ToStatus   string
	Comment    string
	Actor      string
	OccurredAt time.Time
}
