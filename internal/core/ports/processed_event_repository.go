package ports

import (
	"context"
	"errors"
)

// ErrEventAlreadyProcessed is returned by ProcessedEventRepository.Add when
// the event id has already been recorded, typically because a concurrent
// delivery of the same event won the race. Callers treat it as a harmless
// duplicate, not a failure.
var ErrEventAlreadyProcessed = errors.New("event already processed")

// ProcessedEventRepository is the consumer-side dedup set. The existence of a
// record means "this event id was already handled"; rows are never updated
// or deleted. A uniqueness constraint on the event id makes the
// check-then-record sequence safe under concurrent duplicate deliveries.
type ProcessedEventRepository interface {
	// Add records an event id as processed.
	// Returns ErrEventAlreadyProcessed if the id is already recorded.
	Add(ctx context.Context, eventID string) error

	// Exists reports whether an event id has already been processed.
	Exists(ctx context.Context, eventID string) (bool, error)
}
