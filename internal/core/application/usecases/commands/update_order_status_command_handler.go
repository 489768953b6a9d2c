package commands

import (
	"context"

	"ordering/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler executes order status transitions.
// Loads the aggregate, delegates the transition to the state machine, and
// commits the order update, its history row and any produced outbox event in
// one transaction. This is the single write path for status changes: the
// HTTP adapter, the inbound consumer and the processing job all go through it.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory)
//	cmd, _ := NewUpdateOrderStatusCommand(number, order.Delivered, "", "courier-7")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var illegal *order.IllegalTransitionError
//	    if errors.As(err, &illegal) {
//	        // order already in a terminal status
//	    }
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
// Requires an OrderUoWFactory for transactional persistence.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) (UpdateOrderStatusCommandHandler, error) {
	if uowFactory == nil {
		return UpdateOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}

	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}, nil
}

// Handle processes the status transition command.
//
// A transition that repeats the current status returns nil without writing
// anything. An illegal transition surfaces the aggregate's
// IllegalTransitionError untouched so callers can map it to their own 409.
// On an executed transition the order row, its history entry and any domain
// event's outbox row commit atomically.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	changed, err := o.ChangeStatus(cmd.NewStatus(), cmd.Comment(), cmd.Actor())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	outboxRepo := uow.OutboxRepository()
	for _, e := range o.UncommittedEvents() {
		if err = outboxRepo.Add(ctx, e); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
