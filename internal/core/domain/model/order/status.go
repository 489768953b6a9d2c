package order

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
)

// ErrIllegalTransition is the sentinel wrapped by IllegalTransitionError.
// Use errors.Is against it to detect a transition attempted out of a
// terminal state.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError reports an attempt to leave a terminal status.
type IllegalTransitionError struct {
	From Status
	To   Status
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given transition.
func NewIllegalTransitionError(from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is terminal, cannot move to %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	New ──> InProcess ──> { Delivered | Cancelled | Error }
//	 │
//	 └────────────> { Delivered | Cancelled | Error }
//
// PaymentRejected is only ever assigned at creation time, when payment
// authorization fails. Delivered, Cancelled, PaymentRejected and Error are
// terminal: no transition may leave them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of an order whose payment (if any) was accepted.
	New

	// InProcess marks an order picked up for fulfilment. The transition into
	// it is an internal milestone and produces no domain event.
	InProcess

	// PaymentRejected is assigned at creation when payment authorization
	// fails. Terminal; such orders are only re-notified, never advanced.
	PaymentRejected

	// Delivered indicates the order reached its destination. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled

	// Error indicates order processing failed unexpectedly. Terminal.
	Error
)

// getStatusStrings returns a map of Status values to their persisted string form.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		New:             "NEW",
		InProcess:       "IN_PROCESS",
		PaymentRejected: "PAYMENT_REJECTED",
		Delivered:       "DELIVERED",
		Cancelled:       "CANCELLED",
		Error:           "ERROR",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:             "NEW",
		InProcess:       "IN_PROCESS",
		PaymentRejected: "PAYMENT_REJECTED",
		Delivered:       "DELIVERED",
		Cancelled:       "CANCELLED",
		Error:           "ERROR",
	}
}

// StatusFromString parses the persisted string form of a status.
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case PaymentRejected, Delivered, Cancelled, Error:
		return true
	case Unknown, New, InProcess:
		return false
	default:
		return false
	}
}

// TransitionTo validates the transition from s to target and returns the new
// status on success.
//
// Rules:
//   - target must be a valid status
//   - a terminal status permits no transition at all
//
// The caller handles the target-equals-current case before calling; a repeat
// of the current status is a no-op at the aggregate level, not a transition.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if s.IsTerminal() {
		return Unknown, NewIllegalTransitionError(s, target)
	}

	return target, nil
}
