// Package kernel provides shared value objects used across the ordering domain.
//
// The package currently contains OrderNumber, the immutable external identifier
// of an order. It wraps identifier generation (github.com/google/uuid) behind a
// validated value object so aggregates and events never carry raw, possibly
// empty strings.
package kernel
