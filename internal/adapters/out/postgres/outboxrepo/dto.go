// Package outboxrepo persists domain events in the transactional outbox
// table. Rows are written in the same transaction as the state change that
// produced them and drained by the relay afterwards.
package outboxrepo

import (
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/ports"
)

// OutboxEventDTO represents one persisted domain event. PublishedAt is null
// while the event is pending; published rows are retained as an audit trail.
type OutboxEventDTO struct {
	EventID     string `gorm:"primaryKey"`
	EventType   string
	OrderNumber string    `gorm:"index"`
	Payload     []byte    `gorm:"type:jsonb"`
	CreatedAt   time.Time `gorm:"index"`
	PublishedAt *time.Time
}

// TableName specifies the database table name for outbox events.
func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

// fromDomain converts a domain event to its outbox row form.
func fromDomain(e event.Event) (OutboxEventDTO, error) {
	payload, err := event.Marshal(e)
	if err != nil {
		return OutboxEventDTO{}, err
	}

	return OutboxEventDTO{
		EventID:     e.Payload().EventID,
		EventType:   string(e.Type()),
		OrderNumber: e.Payload().OrderNumber,
		Payload:     payload,
		CreatedAt:   e.Payload().CreatedAt,
	}, nil
}

// toPending converts an outbox row to the transport form handed to the relay.
// The payload stays opaque so a row that no longer decodes cannot fail the
// whole batch here.
func toPending(dto OutboxEventDTO) ports.OutboxEvent {
	return ports.OutboxEvent{
		EventID:     dto.EventID,
		Type:        event.Type(dto.EventType),
		OrderNumber: dto.OrderNumber,
		CreatedAt:   dto.CreatedAt,
		Payload:     dto.Payload,
	}
}
