package event

import (
	"fmt"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// Type identifies the kind of domain event carried by an outbox row or a
// transport message.
type Type string

const (
	TypeCreated   Type = "CREATED"
	TypeDelivered Type = "DELIVERED"
	TypeCancelled Type = "CANCELLED"
	TypeError     Type = "ERROR"
)

// Validate checks that the type is one of the known event kinds.
func (t Type) Validate() error {
	switch t {
	case TypeCreated, TypeDelivered, TypeCancelled, TypeError:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%q is not a known event type", string(t)))
	}
}

// Item is the wire representation of one ordered line.
type Item struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Customer is the wire representation of the ordering customer.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Address is the wire representation of the delivery address.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Payload is the envelope body shared by every event variant. The event id is
// the globally unique idempotency key consumers dedup on; the reason field is
// set only for cancellation and error events.
type Payload struct {
	EventID     string    `json:"event_id"`
	OrderNumber string    `json:"order_number"`
	Items       []Item    `json:"items,omitempty"`
	Customer    Customer  `json:"customer"`
	Address     Address   `json:"address"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPayload builds a payload with a freshly generated event id and timestamp.
// Aggregates call this when recording a new domain event.
func NewPayload(orderNumber string, items []Item, customer Customer, address Address, reason string) Payload {
	return Payload{
		EventID:     uuid.NewString(),
		OrderNumber: orderNumber,
		Items:       items,
		Customer:    customer,
		Address:     address,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}
}

// Event is the closed union of domain events that cross the outbox.
// The concrete variants are Created, Delivered, Cancelled and Error; both the
// publish and the consume boundary switch over them exhaustively.
type Event interface {
	Type() Type
	Payload() Payload

	// sealed keeps the union closed to this package.
	sealed()
}

// Created announces that a new order was accepted with status NEW.
type Created struct{ payload Payload }

// Delivered announces that an order reached its destination.
type Delivered struct{ payload Payload }

// Cancelled announces that an order was cancelled; the payload reason says why.
type Cancelled struct{ payload Payload }

// Error announces a processing failure for an order; the payload reason
// carries the failure message.
type Error struct{ payload Payload }

func NewCreated(p Payload) Created     { return Created{payload: p} }
func NewDelivered(p Payload) Delivered { return Delivered{payload: p} }
func NewCancelled(p Payload) Cancelled { return Cancelled{payload: p} }
func NewError(p Payload) Error         { return Error{payload: p} }

func (e Created) Type() Type   { return TypeCreated }
func (e Delivered) Type() Type { return TypeDelivered }
func (e Cancelled) Type() Type { return TypeCancelled }
func (e Error) Type() Type     { return TypeError }

func (e Created) Payload() Payload   { return e.payload }
func (e Delivered) Payload() Payload { return e.payload }
func (e Cancelled) Payload() Payload { return e.payload }
func (e Error) Payload() Payload     { return e.payload }

func (Created) sealed()   {}
func (Delivered) sealed() {}
func (Cancelled) sealed() {}
func (Error) sealed()     {}

// New constructs the event variant for the given type. It is used when
// reconstructing events from persisted outbox rows or decoded messages.
func New(t Type, p Payload) (Event, error) {
	switch t {
	case TypeCreated:
		return NewCreated(p), nil
	case TypeDelivered:
		return NewDelivered(p), nil
	case TypeCancelled:
		return NewCancelled(p), nil
	case TypeError:
		return NewError(p), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("event type",
			fmt.Errorf("%q is not a known event type", string(t)))
	}
}
