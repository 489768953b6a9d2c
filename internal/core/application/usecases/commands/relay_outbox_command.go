package commands

import (
	"errors"

	"ordering/internal/pkg/guard"
)

// RelayOutboxCommand triggers one relay pass: every pending outbox event is
// published to the broker and marked as published.
type RelayOutboxCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrRelayOutboxCommandIsNotConstructed = errors.New(
		"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
	)
)

// NewRelayOutboxCommand creates a command to trigger an outbox relay pass.
// This is a parameterless command.
func NewRelayOutboxCommand() RelayOutboxCommand {
	command := RelayOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrRelayOutboxCommandIsNotConstructed if validation fails.
func (c *RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}
