package ports

import "context"

// PriceCatalog is the live product catalog consulted at order creation.
// PriceOf returns the current unit price for a product code, or
// errs.ObjectNotFoundError for an unknown code.
type PriceCatalog interface {
	PriceOf(ctx context.Context, code string) (float64, error)
}
