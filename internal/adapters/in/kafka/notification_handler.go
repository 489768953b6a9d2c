package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// NotificationHandler turns order events into customer notifications. It
// keeps its own dedup set, separate from the status consumer's, so the two
// groups never suppress each other's deliveries. A rare duplicate email is
// accepted as the cost of at-least-once delivery.
type NotificationHandler struct {
	notifier  ports.Notifier
	processed ports.ProcessedEventRepository
	logger    *slog.Logger
}

// NewNotificationHandler creates the notification consumer handler.
func NewNotificationHandler(
	notifier ports.Notifier,
	processed ports.ProcessedEventRepository,
	logger *slog.Logger,
) (NotificationHandler, error) {
	if notifier == nil {
		return NotificationHandler{}, errs.NewValueIsRequiredError("notifier")
	}
	if processed == nil {
		return NotificationHandler{}, errs.NewValueIsRequiredError("processed")
	}
	if logger == nil {
		return NotificationHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return NotificationHandler{
		notifier:  notifier,
		processed: processed,
		logger:    logger,
	}, nil
}

// Handle processes one raw event payload. Events without a customer email
// are recorded as processed and skipped with a warning; there is no address
// to deliver to and a redelivery would not change that.
func (h NotificationHandler) Handle(ctx context.Context, payload []byte) error {
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

	to := e.Payload().Customer.Email
	if to == "" {
		h.logger.Warn("skipping notification, event has no customer email",
			"event_id", eventID,
			"order_number", e.Payload().OrderNumber)
		return h.recordProcessed(ctx, eventID)
	}

	subject, body := composeNotification(e)
	if err = h.notifier.Send(ctx, to, subject, body); err != nil {
		return err
	}

	return h.recordProcessed(ctx, eventID)
}

func (h NotificationHandler) recordProcessed(ctx context.Context, eventID string) error {
	err := h.processed.Add(ctx, eventID)
	if errors.Is(err, ports.ErrEventAlreadyProcessed) {
		return nil
	}
	return err
}

func composeNotification(e event.Event) (subject, body string) {
	number := e.Payload().OrderNumber
	name := e.Payload().Customer.Name

	switch e.(type) {
	case event.Created:
		subject = fmt.Sprintf("Order %s received", number)
		body = fmt.Sprintf("Hi %s, we received your order %s and will process it shortly.", name, number)
	case event.Delivered:
		subject = fmt.Sprintf("Order %s delivered", number)
		body = fmt.Sprintf("Hi %s, your order %s has been delivered.", name, number)
	case event.Cancelled:
		subject = fmt.Sprintf("Order %s cancelled", number)
		body = fmt.Sprintf("Hi %s, your order %s was cancelled: %s", name, number, e.Payload().Reason)
	case event.Error:
		subject = fmt.Sprintf("Problem with order %s", number)
		body = fmt.Sprintf("Hi %s, there is a problem with your order %s: %s", name, number, e.Payload().Reason)
	}

	return subject, body
}
