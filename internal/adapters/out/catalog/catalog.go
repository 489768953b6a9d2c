// Package catalog provides the product price catalog used to verify
// submitted prices at order creation.
package catalog

import (
	"context"

	"ordering/internal/pkg/errs"
)

// StaticCatalog serves prices from an in-memory table loaded at startup.
// The table is read-only after construction, so lookups are safe for
// concurrent use.
type StaticCatalog struct {
	prices map[string]float64
}

// NewStaticCatalog creates a catalog over the given code-to-price table.
func NewStaticCatalog(prices map[string]float64) *StaticCatalog {
	table := make(map[string]float64, len(prices))
	for code, price := range prices {
		table[code] = price
	}
	return &StaticCatalog{prices: table}
}

// PriceOf returns the current unit price for a product code. Returns
// errs.ObjectNotFoundError for an unknown code.
func (c *StaticCatalog) PriceOf(_ context.Context, code string) (float64, error) {
	price, ok := c.prices[code]
	if !ok {
		return 0, errs.NewObjectNotFoundError("product", code)
	}
	return price, nil
}
