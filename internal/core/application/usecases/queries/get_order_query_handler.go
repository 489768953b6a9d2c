package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads the current state of an order straight from the
// database, skipping aggregate reconstruction.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(number)
//
//	order, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no order
// with the requested number exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	number := query.OrderNumber().String()

	var resp GetOrderQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			user_id,
			status,
			comments,
			created_at
		FROM orders
		WHERE number = ?
	`, number).Row()

	err := row.Scan(&resp.Number, &resp.UserID, &resp.Status, &resp.Comments, &resp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", number)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			name,
			price,
			quantity
		FROM order_items
		WHERE order_number = ?
		ORDER BY id
	`, number).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderItemResponse
		if err = rows.Scan(&item.Code, &item.Name, &item.Price, &item.Quantity); err != nil {
			return GetOrderQueryResponse{}, err
		}
		resp.Total += item.Price * float64(item.Quantity)
		resp.Items = append(resp.Items, item)
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}
