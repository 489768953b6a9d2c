package ports

import (
	"context"

	"ordering/internal/core/domain/model/event"
)

// EventPublisher abstracts the transport used to deliver domain events to
// remote consumers. Publish honors the context deadline; a timeout is a
// failure (the event stays pending and is retried on the next relay tick),
// never a success.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event) error
}
