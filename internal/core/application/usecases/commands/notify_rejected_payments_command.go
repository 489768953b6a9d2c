package commands

import (
	"errors"

	"ordering/internal/pkg/guard"
)

// NotifyRejectedPaymentsCommand triggers one notification pass over all
// orders in status PaymentRejected. Each pass writes a fresh outbox event
// per order so downstream consumers are re-nudged until the order leaves
// the rejected state.
type NotifyRejectedPaymentsCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrNotifyRejectedPaymentsCommandIsNotConstructed = errors.New(
		"NotifyRejectedPaymentsCommand must be created via NewNotifyRejectedPaymentsCommand constructor",
	)
)

// NewNotifyRejectedPaymentsCommand creates a command to trigger a
// notification pass. This is a parameterless command.
func NewNotifyRejectedPaymentsCommand() NotifyRejectedPaymentsCommand {
	command := NotifyRejectedPaymentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrNotifyRejectedPaymentsCommandIsNotConstructed if validation fails.
func (c *NotifyRejectedPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrNotifyRejectedPaymentsCommandIsNotConstructed)
}
