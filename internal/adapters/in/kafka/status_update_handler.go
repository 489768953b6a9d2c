package kafka

import (
	"context"
	"errors"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// statusUpdateActor identifies this consumer in status history entries.
const statusUpdateActor = "status-consumer"

// StatusUpdateHandler applies order status changes announced by remote
// events. It is idempotent: every event id is checked against and recorded
// in this consumer group's dedup set, so redeliveries and outbox republishes
// change nothing.
type StatusUpdateHandler struct {
	statusHandler commands.UpdateOrderStatusCommandHandler
	processed     ports.ProcessedEventRepository
	logger        *slog.Logger
}

// NewStatusUpdateHandler creates the status update consumer handler.
func NewStatusUpdateHandler(
	statusHandler commands.UpdateOrderStatusCommandHandler,
	processed ports.ProcessedEventRepository,
	logger *slog.Logger,
) (StatusUpdateHandler, error) {
	if processed == nil {
		return StatusUpdateHandler{}, errs.NewValueIsRequiredError("processed")
	}
	if logger == nil {
		return StatusUpdateHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return StatusUpdateHandler{
		statusHandler: statusHandler,
		processed:     processed,
		logger:        logger,
	}, nil
}

// Handle processes one raw event payload.
//
// Outcomes that cannot improve on a retry are absorbed after logging: an
// already-processed event id, an unknown order, an illegal transition.
// Transient failures return an error without recording the event id, so a
// later duplicate delivery gets another chance.
func (h StatusUpdateHandler) Handle(ctx context.Context, payload []byte) error {
	e, warnings, err := event.Decode(payload)
	if err != nil {
		return err
	}

	eventID := e.Payload().EventID
	for _, warning := range warnings {
		h.logger.Warn("event decoded with defaults",
			"event_id", eventID,
			"warning", warning)
	}

	seen, err := h.processed.Exists(ctx, eventID)
	if err != nil {
		return err
	}
	if seen {
		h.logger.Debug("skipping already processed event", "event_id", eventID)
		return nil
	}

	target, ok := targetStatus(e.Type())
	if !ok {
		// Created announces a new order elsewhere, nothing to transition
		return h.recordProcessed(ctx, eventID)
	}

	number, err := kernel.OrderNumberFromString(e.Payload().OrderNumber)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(number, target, e.Payload().Reason, statusUpdateActor)
	if err != nil {
		return err
	}

	if err = h.statusHandler.Handle(ctx, cmd); err != nil {
		var illegal *order.IllegalTransitionError
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			h.logger.Warn("discarding event for unknown order",
				"event_id", eventID,
				"order_number", number.String())
		case errors.As(err, &illegal):
			h.logger.Warn("discarding event for terminal order",
				"event_id", eventID,
				"order_number", number.String(),
				"from", illegal.From.String(),
				"to", illegal.To.String())
		default:
			return err
		}
	}

	return h.recordProcessed(ctx, eventID)
}

func (h StatusUpdateHandler) recordProcessed(ctx context.Context, eventID string) error {
	err := h.processed.Add(ctx, eventID)
	if errors.Is(err, ports.ErrEventAlreadyProcessed) {
		// a concurrent delivery won the race, same outcome
		return nil
	}
	return err
}

// targetStatus maps an event type to the status it announces. Created maps
// to no transition.
func targetStatus(t event.Type) (order.Status, bool) {
	switch t {
	case event.TypeDelivered:
		return order.Delivered, true
	case event.TypeCancelled:
		return order.Cancelled, true
	case event.TypeError:
		return order.Error, true
	case event.TypeCreated:
		return order.Unknown, false
	default:
		return order.Unknown, false
	}
}
