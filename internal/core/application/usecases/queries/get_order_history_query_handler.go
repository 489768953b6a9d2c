package queries

import (
	"context"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's status history from the
// database. An existing order with no executed transitions yields an empty
// slice; an unknown order number yields errs.ObjectNotFoundError.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query. Entries come back oldest first so the response
// reads as a timeline.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	number := query.OrderNumber().String()

	var exists int64
	err := h.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM orders WHERE number = ?`, number).Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("order", number)
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			comment,
			actor,
			occurred_at
		FROM order_status_history
		WHERE order_number = ?
		ORDER BY occurred_at, id
	`, number).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse
		err = rows.Scan(&entry.FromStatus, &entry.ToStatus, &entry.Comment, &entry.Actor, &entry.OccurredAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
