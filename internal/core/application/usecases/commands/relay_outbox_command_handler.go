package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// RelayOutboxCommandHandler drains the transactional outbox. Each pass loads
// all pending events in creation order, publishes them to the broker and
// marks each one published only after the broker confirmed it. Delivery is
// therefore at least once: a crash between publish and mark republishes the
// event on the next pass, and consumers dedup by event id.
type RelayOutboxCommandHandler struct {
	outboxRepo     ports.OutboxRepository
	publisher      ports.EventPublisher
	publishTimeout time.Duration
	logger         *slog.Logger
}

// NewRelayOutboxCommandHandler creates a handler for outbox relay passes.
// publishTimeout bounds each individual publish so one unresponsive broker
// call cannot stall the whole pass.
func NewRelayOutboxCommandHandler(
	outboxRepo ports.OutboxRepository,
	publisher ports.EventPublisher,
	publishTimeout time.Duration,
	logger *slog.Logger,
) (RelayOutboxCommandHandler, error) {
	if outboxRepo == nil {
		return RelayOutboxCommandHandler{}, errs.NewValueIsRequiredError("outboxRepo")
	}
	if publisher == nil {
		return RelayOutboxCommandHandler{}, errs.NewValueIsRequiredError("publisher")
	}
	if publishTimeout <= 0 {
		return RelayOutboxCommandHandler{}, errs.NewValueIsInvalidError("publishTimeout")
	}
	if logger == nil {
		return RelayOutboxCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return RelayOutboxCommandHandler{
		outboxRepo:     outboxRepo,
		publisher:      publisher,
		publishTimeout: publishTimeout,
		logger:         logger,
	}, nil
}

// Handle runs one relay pass.
//
// Events are isolated from each other: a row that fails to decode or publish
// is logged and skipped, stays pending, and the pass moves on. The pass only
// returns an error when the pending set itself cannot be loaded.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, err := h.outboxRepo.GetPending(ctx)
	if err != nil {
		return err
	}

	for _, row := range pending {
		if err = h.relayEvent(ctx, row); err != nil {
			h.logger.Error("failed to relay outbox event, leaving pending",
				"event_id", row.EventID,
				"event_type", string(row.Type),
				"order_number", row.OrderNumber,
				"error", err)
		}
	}

	return nil
}

func (h *RelayOutboxCommandHandler) relayEvent(ctx context.Context, row ports.OutboxEvent) error {
	e, warnings, err := event.Decode(row.Payload)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		h.logger.Warn("outbox event decoded with defaults",
			"event_id", row.EventID,
			"warning", warning)
	}

	publishCtx, cancel := context.WithTimeout(ctx, h.publishTimeout)
	defer cancel()

	if err = h.publisher.Publish(publishCtx, e); err != nil {
		return err
	}

	return h.outboxRepo.MarkPublished(ctx, row.EventID)
}
