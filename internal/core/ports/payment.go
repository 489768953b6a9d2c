package ports

import "context"

// PaymentInstrument carries the payment details optionally supplied at
// checkout. The core never interprets these fields; they are passed through
// to the authorizer.
type PaymentInstrument struct {
	CardNumber string
	Expiry     string
	Holder     string
}

// PaymentAuthorizer performs the optional payment authorization step at
// order creation. A rejection is an expected business outcome reported via
// the authorized flag; the error return is reserved for infrastructure
// failures reaching the authorizer.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, instrument PaymentInstrument, amount float64) (authorized bool, err error)
}
