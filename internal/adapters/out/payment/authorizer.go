// Package payment provides the payment authorization adapter. The current
// implementation is a stand-in for a real gateway integration with
// deterministic outcomes, which keeps the rejected-payment path exercisable
// end to end.
package payment

import (
	"context"
	"log/slog"
	"strings"

	"ordering/internal/core/ports"
)

// declineSuffix marks test card numbers that are always declined.
const declineSuffix = "0000"

// StubAuthorizer approves every authorization except cards whose number
// ends in the decline suffix.
type StubAuthorizer struct {
	logger *slog.Logger
}

// NewStubAuthorizer creates the stub gateway adapter.
func NewStubAuthorizer(logger *slog.Logger) *StubAuthorizer {
	return &StubAuthorizer{logger: logger}
}

// Authorize reports whether the payment is approved. A decline is a business
// outcome, not an error.
func (a *StubAuthorizer) Authorize(
	_ context.Context,
	instrument ports.PaymentInstrument,
	amount float64,
) (bool, error) {
	authorized := !strings.HasSuffix(instrument.CardNumber, declineSuffix)

	a.logger.Info("payment authorization",
		"holder", instrument.Holder,
		"amount", amount,
		"authorized", authorized)

	return authorized, nil
}
