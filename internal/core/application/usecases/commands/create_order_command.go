package commands

import (
	"errors"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemRequest is one requested order line as submitted at checkout. The price
// is the client-claimed unit price; the handler verifies it against the live
// catalog before the order is accepted.
type ItemRequest struct {
	Code     string
	Name     string
	Price    float64
	Quantity int
}

// CustomerRequest carries the customer contact details submitted at checkout.
type CustomerRequest struct {
	Name  string
	Email string
	Phone string
}

// AddressRequest carries the delivery address submitted at checkout.
type AddressRequest struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Zip     string
	Country string
}

// CreateOrderCommand represents a request to create a new order at checkout.
// Deep validation (catalog prices, value-object invariants) happens in the
// handler; the command only guards the request shape.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("user-1", items, customer, address, "", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("order %s created", result.OrderNumber)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID   string
	items    []ItemRequest
	customer CustomerRequest
	address  AddressRequest
	comments string
	payment  *ports.PaymentInstrument

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the user id is present, the item set is non-empty, and every
// line carries a product code and a positive quantity. The payment instrument
// is optional; nil means no authorization step at creation.
func NewCreateOrderCommand(
	userID string,
	items []ItemRequest,
	customer CustomerRequest,
	address AddressRequest,
	comments string,
	payment *ports.PaymentInstrument,
) (CreateOrderCommand, error) {
	if userID == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("user id")
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if item.Code == "" {
			return CreateOrderCommand{}, errs.NewValueIsRequiredError("item code")
		}
		if item.Quantity <= 0 {
			return CreateOrderCommand{}, errs.NewValueIsInvalidError("item quantity")
		}
	}

	return CreateOrderCommand{
		userID:   userID,
		items:    append([]ItemRequest(nil), items...),
		customer: customer,
		address:  address,
		comments: comments,
		payment:  payment,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the identifier of the ordering user.
func (c CreateOrderCommand) UserID() string {
	return c.userID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []ItemRequest {
	return append([]ItemRequest(nil), c.items...)
}

// Customer returns the submitted customer details.
func (c CreateOrderCommand) Customer() CustomerRequest {
	return c.customer
}

// Address returns the submitted delivery address.
func (c CreateOrderCommand) Address() AddressRequest {
	return c.address
}

// Comments returns the free-text order comments.
func (c CreateOrderCommand) Comments() string {
	return c.comments
}

// Payment returns the optional payment instrument, or nil when none was supplied.
func (c CreateOrderCommand) Payment() *ports.PaymentInstrument {
	return c.payment
}
