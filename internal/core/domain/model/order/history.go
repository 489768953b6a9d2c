package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// HistoryEntry is one row of the append-only status audit trail.
// Exactly one entry is recorded per executed transition; no-op repeats and
// rejected transitions leave no trace.
type HistoryEntry struct {
	OrderNumber kernel.OrderNumber
	From        Status
	To          Status
	Comment     string
	Actor       string
	OccurredAt  time.Time
}
