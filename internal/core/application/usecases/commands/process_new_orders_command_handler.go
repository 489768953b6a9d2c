package commands

import (
	"context"
	"log/slog"
	"strings"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// processingActor identifies the processing job in status history entries.
const processingActor = "order-processing-job"

// cantDeliverComment is the cancellation comment for undeliverable addresses.
const cantDeliverComment = "Can't deliver to the location."

// ProcessNewOrdersCommandHandler sweeps orders in status New and settles
// each one: deliverable addresses go to Delivered, undeliverable ones to
// Cancelled. Every order is processed in its own transaction through the
// status transition handler, so one failing order never blocks the rest of
// the batch.
type ProcessNewOrdersCommandHandler struct {
	uowFactory       OrderUoWFactory
	statusHandler    UpdateOrderStatusCommandHandler
	allowedCountries map[string]struct{}
	logger           *slog.Logger
}

// NewProcessNewOrdersCommandHandler creates a handler for the processing pass.
// allowedCountries is the deliverability allow-list, matched case-insensitively.
func NewProcessNewOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	statusHandler UpdateOrderStatusCommandHandler,
	allowedCountries []string,
	logger *slog.Logger,
) (ProcessNewOrdersCommandHandler, error) {
	if uowFactory == nil {
		return ProcessNewOrdersCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if len(allowedCountries) == 0 {
		return ProcessNewOrdersCommandHandler{}, errs.NewValueIsRequiredError("allowedCountries")
	}
	if logger == nil {
		return ProcessNewOrdersCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	allowed := make(map[string]struct{}, len(allowedCountries))
	for _, country := range allowedCountries {
		allowed[normalizeCountry(country)] = struct{}{}
	}

	return ProcessNewOrdersCommandHandler{
		uowFactory:       uowFactory,
		statusHandler:    statusHandler,
		allowedCountries: allowed,
		logger:           logger,
	}, nil
}

// Handle runs one processing pass.
//
// Orders are loaded in a short read-only transaction, then settled one by
// one. A failed settlement is escalated to an Error transition carrying the
// failure message; if even that fails the order is logged and skipped, to be
// retried on the next pass.
func (h *ProcessNewOrdersCommandHandler) Handle(ctx context.Context, cmd ProcessNewOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.loadNewOrders(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		h.settleOrder(ctx, o)
	}

	return nil
}

func (h *ProcessNewOrdersCommandHandler) loadNewOrders(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllInStatus(ctx, order.New)
}

func (h *ProcessNewOrdersCommandHandler) settleOrder(ctx context.Context, o *order.Order) {
	target := order.Delivered
	comment := ""
	if !h.isDeliverable(o.Address().Country()) {
		target = order.Cancelled
		comment = cantDeliverComment
	}

	if err := h.transition(ctx, o, target, comment); err != nil {
		h.logger.Error("failed to settle order, escalating to error status",
			"order_number", o.OrderNumber().String(),
			"target_status", target.String(),
			"error", err)

		if errErr := h.transition(ctx, o, order.Error, err.Error()); errErr != nil {
			h.logger.Error("failed to move order to error status, skipping until next pass",
				"order_number", o.OrderNumber().String(),
				"error", errErr)
		}
	}
}

func (h *ProcessNewOrdersCommandHandler) transition(
	ctx context.Context,
	o *order.Order,
	target order.Status,
	comment string,
) error {
	cmd, err := NewUpdateOrderStatusCommand(o.OrderNumber(), target, comment, processingActor)
	if err != nil {
		return err
	}

	return h.statusHandler.Handle(ctx, cmd)
}

func (h *ProcessNewOrdersCommandHandler) isDeliverable(country string) bool {
	_, ok := h.allowedCountries[normalizeCountry(country)]
	return ok
}

func normalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}
