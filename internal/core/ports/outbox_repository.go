package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/event"
)

// OutboxEvent is a persisted domain event awaiting relay. The payload is the
// serialized wire form of the event; keeping it opaque here lets the relay
// isolate a row whose payload no longer decodes without failing the batch.
type OutboxEvent struct {
	EventID     string
	Type        event.Type
	OrderNumber string
	CreatedAt   time.Time
	Payload     []byte
}

// OutboxRepository defines the persistence contract for the transactional
// outbox. Add runs inside the same transaction as the status change that
// produced the event; GetPending and MarkPublished are used by the relay.
type OutboxRepository interface {
	// Add persists a domain event as a pending outbox row.
	Add(ctx context.Context, e event.Event) error

	// GetPending retrieves all not-yet-published events ordered by creation
	// time ascending, preserving causal publish order.
	GetPending(ctx context.Context) ([]OutboxEvent, error)

	// MarkPublished records a successful publish. The row is retained as an
	// audit trail; it just stops being selected as pending.
	MarkPublished(ctx context.Context, eventID string) error
}
