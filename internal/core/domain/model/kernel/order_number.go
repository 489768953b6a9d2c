package kernel

import (
	"strings"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrOrderNumberIsNotConstructed indicates that an OrderNumber was not initialized
// through one of the constructor functions. This error is returned when validating
// a zero-value OrderNumber.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderNumber must be created via NewOrderNumber or OrderNumberFromString",
)

// OrderNumber is a value object holding the unique external identifier of an order.
// It is immutable: once assigned at checkout it never changes for the lifetime of
// the order, and it is the key every downstream event and history entry refers to.
//
// The zero value is invalid and must be constructed using one of the provided
// factory functions: NewOrderNumber or OrderNumberFromString.
//
// Example usage:
//
//	// Generate a number for a new order
//	number := kernel.NewOrderNumber()
//
//	// Reconstruct from persistence or a wire message
//	number, err := kernel.OrderNumberFromString("ORD-550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type OrderNumber struct {
	value string
}

// prefix distinguishes generated order numbers from arbitrary strings in logs.
const prefix = "ORD-"

// NewOrderNumber generates a new globally unique order number.
// This is the primary way to assign identifiers to orders created at checkout.
//
// Example:
//
//	number := kernel.NewOrderNumber()
//	fmt.Println(number.String()) // e.g., "ORD-550e8400-e29b-41d4-a716-446655440000"
func NewOrderNumber() OrderNumber {
	return OrderNumber{
		value: prefix + uuid.NewString(),
	}
}

// OrderNumberFromString reconstructs an OrderNumber from its string form.
// It is used when loading orders from persistence or when parsing order
// references from inbound messages and HTTP requests.
//
// Returns an error if the string is empty or consists only of whitespace.
// The ORD- prefix is not enforced here: externally sourced order references
// may predate the generated format.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if strings.TrimSpace(s) == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number")
	}
	return OrderNumber{value: s}, nil
}

// String returns the order number as stored and transmitted.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers for equality.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate checks that the OrderNumber was properly constructed.
// Returns ErrOrderNumberIsNotConstructed for the zero value.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
