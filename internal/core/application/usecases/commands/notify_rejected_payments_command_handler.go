package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// paymentRejectedReason is the reason carried by the re-notification events
// written for orders stuck in PaymentRejected.
const paymentRejectedReason = "Payment rejected."

// NotifyRejectedPaymentsCommandHandler re-notifies downstream consumers
// about orders whose payment was rejected. Rejection itself is silent at
// creation time; this handler is what makes it visible, writing one fresh
// Error event to the outbox per rejected order on every pass. The order
// state is not touched.
type NotifyRejectedPaymentsCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewNotifyRejectedPaymentsCommandHandler creates a handler for the
// notification pass.
func NewNotifyRejectedPaymentsCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) (NotifyRejectedPaymentsCommandHandler, error) {
	if uowFactory == nil {
		return NotifyRejectedPaymentsCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		return NotifyRejectedPaymentsCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return NotifyRejectedPaymentsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}, nil
}

// Handle runs one notification pass.
//
// Each rejected order gets its own transaction and its own event id, so a
// failure on one order neither blocks the rest nor dedups away the next
// pass's nudge for it.
func (h *NotifyRejectedPaymentsCommandHandler) Handle(
	ctx context.Context,
	cmd NotifyRejectedPaymentsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.loadRejectedOrders(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		if err = h.notifyOrder(ctx, o); err != nil {
			h.logger.Error("failed to write payment rejection notification, retrying next pass",
				"order_number", o.OrderNumber().String(),
				"error", err)
		}
	}

	return nil
}

func (h *NotifyRejectedPaymentsCommandHandler) loadRejectedOrders(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllInStatus(ctx, order.PaymentRejected)
}

func (h *NotifyRejectedPaymentsCommandHandler) notifyOrder(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().Add(ctx, o.NotificationEvent(paymentRejectedReason)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
