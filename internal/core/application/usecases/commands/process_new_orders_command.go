package commands

import (
	"errors"

	"ordering/internal/pkg/guard"
)

// ProcessNewOrdersCommand triggers one processing pass over all orders in
// status New. Each order is either delivered or cancelled depending on the
// deliverability of its address.
//
// Example:
//
//	cmd := NewProcessNewOrdersCommand()
//	handler, _ := NewProcessNewOrdersCommandHandler(uowFactory, statusHandler, countries, logger)
//
//	// Run periodically from the scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("order processing pass failed: %v", err)
//	}
type ProcessNewOrdersCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrProcessNewOrdersCommandIsNotConstructed = errors.New(
		"ProcessNewOrdersCommand must be created via NewProcessNewOrdersCommand constructor",
	)
)

// NewProcessNewOrdersCommand creates a command to trigger a processing pass.
// This is a parameterless command that sweeps all orders in status New.
func NewProcessNewOrdersCommand() ProcessNewOrdersCommand {
	command := ProcessNewOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessNewOrdersCommandIsNotConstructed if validation fails.
func (c *ProcessNewOrdersCommand) Validate() error {
	return c.guard.Validate(ErrProcessNewOrdersCommandIsNotConstructed)
}
