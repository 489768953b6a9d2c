package order

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through one of the factory functions. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder, NewPaymentRejectedOrder or RestoreOrder")

// Order is the aggregate root of the ordering domain. It owns the status
// state machine, the append-only status history, and the domain events that
// accompany customer-visible status changes.
//
// Order maintains these invariants:
//   - the item snapshot is non-empty and immutable after creation
//   - status only changes through ChangeStatus, never directly
//   - one history entry is appended per executed transition
//   - a Delivered, Cancelled or Error transition records exactly one
//     matching domain event; InProcess records none
//
// Domain events and new history entries accumulate on the aggregate until a
// repository persists them; both are reset on restore so a loaded order
// carries no uncommitted state.
type Order struct {
	orderNumber kernel.OrderNumber
	userID      string
	items       []Item
	customer    Customer
	address     Address
	status      Status
	comments    string
	createdAt   time.Time

	history            []HistoryEntry
	uncommittedHistory []HistoryEntry
	uncommittedEvents  []event.Event

	isConstructed bool
}

// NewOrder creates an order in status New and records the Created domain
// event that announces it. All value objects must have been built through
// their constructors; the item set must be non-empty.
func NewOrder(
	orderNumber kernel.OrderNumber,
	userID string,
	items []Item,
	customer Customer,
	address Address,
	comments string,
) (*Order, error) {
	o, err := newOrder(orderNumber, userID, items, customer, address, comments, New)
	if err != nil {
		return nil, err
	}

	o.recordEvent(event.NewCreated(o.eventPayload("")))
	return o, nil
}

// NewPaymentRejectedOrder creates an order whose payment authorization failed
// at checkout. The order is persisted for later follow-up but no domain event
// is recorded: rejected payments are not broadcast, only re-notified by the
// processing job.
func NewPaymentRejectedOrder(
	orderNumber kernel.OrderNumber,
	userID string,
	items []Item,
	customer Customer,
	address Address,
	comments string,
) (*Order, error) {
	return newOrder(orderNumber, userID, items, customer, address, comments, PaymentRejected)
}

func newOrder(
	orderNumber kernel.OrderNumber,
	userID string,
	items []Item,
	customer Customer,
	address Address,
	comments string,
	status Status,
) (*Order, error) {
	if err := orderNumber.Validate(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("user id")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		orderNumber:   orderNumber,
		userID:        userID,
		items:         append([]Item(nil), items...),
		customer:      customer,
		address:       address,
		status:        status,
		comments:      comments,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. The given history is
// treated as committed; the restored aggregate carries no uncommitted events.
func RestoreOrder(
	orderNumber kernel.OrderNumber,
	userID string,
	items []Item,
	customer Customer,
	address Address,
	status Status,
	comments string,
	createdAt time.Time,
	history []HistoryEntry,
) (*Order, error) {
	o, err := newOrder(orderNumber, userID, items, customer, address, comments, status)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o.createdAt = createdAt
	o.history = append([]HistoryEntry(nil), history...)
	return o, nil
}

// Validate ensures the Order instance was properly constructed through one of
// the factory functions, preventing direct struct instantiation from
// bypassing validation.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their order numbers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.orderNumber.IsEqual(other.orderNumber)
}

// OrderNumber returns the immutable external identifier of the order.
func (o *Order) OrderNumber() kernel.OrderNumber {
	return o.orderNumber
}

// UserID returns the identifier of the user who placed the order.
func (o *Order) UserID() string {
	return o.userID
}

// Items returns a copy of the immutable item snapshot.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Customer returns the customer contact details.
func (o *Order) Customer() Customer {
	return o.customer
}

// Address returns the delivery address.
func (o *Order) Address() Address {
	return o.address
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Comments returns the free-text comments captured with the order.
func (o *Order) Comments() string {
	return o.comments
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Total returns the sum of all line subtotals.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.items {
		total += item.Subtotal()
	}
	return total
}

// History returns a copy of the full status history, committed entries first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// UncommittedHistory returns the history entries recorded since the aggregate
// was loaded. Repositories persist these alongside the order row.
func (o *Order) UncommittedHistory() []HistoryEntry {
	return append([]HistoryEntry(nil), o.uncommittedHistory...)
}

// UncommittedEvents returns the domain events recorded since the aggregate
// was loaded. The orchestration layer writes them to the outbox in the same
// transaction that persists the order.
func (o *Order) UncommittedEvents() []event.Event {
	return append([]event.Event(nil), o.uncommittedEvents...)
}

// ChangeStatus executes a status transition.
//
// It returns (false, nil) when newStatus equals the current status: repeating
// the current status is a no-op, not an error, and leaves no trace. It fails
// with an IllegalTransitionError when the current status is terminal.
//
// On success it updates the status, appends one history entry, and for the
// customer-visible terminal outcomes (Delivered, Cancelled, Error) records
// one matching domain event. The transition into InProcess is intentionally
// silent: it is an internal milestone, not a customer-visible one.
func (o *Order) ChangeStatus(newStatus Status, comment, actor string) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if newStatus == o.status {
		return false, nil
	}

	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return false, err
	}

	entry := HistoryEntry{
		OrderNumber: o.orderNumber,
		From:        o.status,
		To:          next,
		Comment:     comment,
		Actor:       actor,
		OccurredAt:  time.Now().UTC(),
	}
	o.status = next
	o.history = append(o.history, entry)
	o.uncommittedHistory = append(o.uncommittedHistory, entry)

	switch next {
	case Delivered:
		o.recordEvent(event.NewDelivered(o.eventPayload("")))
	case Cancelled:
		o.recordEvent(event.NewCancelled(o.eventPayload(comment)))
	case Error:
		o.recordEvent(event.NewError(o.eventPayload(comment)))
	case Unknown, New, InProcess, PaymentRejected:
		// internal milestones, nothing to broadcast
	}

	return true, nil
}

// NotificationEvent builds a fresh Error event for this order without
// changing its state. The processing job uses it to re-notify downstream
// consumers about payment-rejected orders on every tick; each call carries a
// new event id so consumers treat each nudge as its own logical event.
func (o *Order) NotificationEvent(reason string) event.Event {
	return event.NewError(o.eventPayload(reason))
}

func (o *Order) recordEvent(e event.Event) {
	o.uncommittedEvents = append(o.uncommittedEvents, e)
}

func (o *Order) eventPayload(reason string) event.Payload {
	items := make([]event.Item, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, event.Item{
			Code:     item.Code(),
			Name:     item.Name(),
			Price:    item.Price(),
			Quantity: item.Quantity(),
		})
	}

	return event.NewPayload(
		o.orderNumber.String(),
		items,
		event.Customer{
			Name:  o.customer.Name(),
			Email: o.customer.Email(),
			Phone: o.customer.Phone(),
		},
		event.Address{
			Line1:   o.address.Line1(),
			Line2:   o.address.Line2(),
			City:    o.address.City(),
			State:   o.address.State(),
			Zip:     o.address.Zip(),
			Country: o.address.Country(),
		},
		reason,
	)
}
