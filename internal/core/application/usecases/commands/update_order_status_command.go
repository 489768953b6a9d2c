package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// lifecycle status. The state machine itself lives on the aggregate; the
// command only identifies the order, the target status and who asked.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	newStatus   order.Status
	comment     string
	actor       string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to transition an order.
// Validates the order number and target status; comment and actor are free
// text carried into the history entry.
func NewUpdateOrderStatusCommand(
	orderNumber kernel.OrderNumber,
	newStatus order.Status,
	comment string,
	actor string,
) (UpdateOrderStatusCommand, error) {
	if err := orderNumber.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	if err := newStatus.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderNumber: orderNumber,
		newStatus:   newStatus,
		comment:     comment,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderNumber returns the external identifier of the order to transition.
func (c UpdateOrderStatusCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// NewStatus returns the requested target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Comment returns the free-text comment recorded with the transition.
func (c UpdateOrderStatusCommand) Comment() string {
	return c.comment
}

// Actor returns the identifier of whoever requested the transition.
func (c UpdateOrderStatusCommand) Actor() string {
	return c.actor
}
