// Package queries contains read-only operations that bypass the domain
// model. Handlers read the database directly and return plain response
// structs shaped for presentation, the read side of the CQRS split.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the current state of a single order by its number.
//
// Example:
//
//	query, err := NewGetOrderQuery(number)
//	if err != nil {
//	    return err
//	}
//
//	order, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("order %s is %s\n", order.Number, order.Status)
type GetOrderQuery struct {
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderNumber kernel.OrderNumber) (GetOrderQuery, error) {
	if err := orderNumber.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderNumber returns the external identifier of the requested order.
func (q GetOrderQuery) OrderNumber() kernel.OrderNumber {
	return q.orderNumber
}

// GetOrderItemResponse is one order line in the order response.
type GetOrderItemResponse struct {
	Code     string
	Name     string
	Price    float64
	Quantity int
}

// GetOrderQueryResponse represents the current state of an order.
type GetOrderQueryResponse struct {
	Number    string
	UserID    string
	Status    string
	Comments  string
	Total     float64
	CreatedAt time.Time
	Items     []GetOrderItemResponse
}
