package event

import (
	"encoding/json"

	"ordering/internal/pkg/errs"
)

// envelope is the wire shape of an event: the payload fields plus the type
// discriminator.
type envelope struct {
	EventType Type `json:"event_type"`
	Payload
}

// Marshal encodes an event into its JSON wire form. The switch is exhaustive
// over the closed union so a new variant cannot silently reach the transport
// without a wire mapping.
func Marshal(e Event) ([]byte, error) {
	var t Type
	switch e.(type) {
	case Created:
		t = TypeCreated
	case Delivered:
		t = TypeDelivered
	case Cancelled:
		t = TypeCancelled
	case Error:
		t = TypeError
	default:
		return nil, errs.NewValueIsInvalidError("event")
	}

	return json.Marshal(envelope{EventType: t, Payload: e.Payload()})
}

// Decode parses a wire message into an event. Decoding is tolerant: optional
// fields (customer name, email, phone, address lines) may be absent and are
// replaced with safe sentinel values; each substitution is reported in the
// returned warnings so the caller can log it. The event id, order number and
// event type are mandatory; a message missing any of them is malformed and
// yields an error.
func Decode(data []byte) (Event, []string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, errs.NewValueIsInvalidErrorWithCause("event message", err)
	}

	if env.EventID == "" {
		return nil, nil, errs.NewValueIsRequiredError("event_id")
	}
	if env.OrderNumber == "" {
		return nil, nil, errs.NewValueIsRequiredError("order_number")
	}
	if err := env.EventType.Validate(); err != nil {
		return nil, nil, err
	}

	var warnings []string
	if env.Customer.Name == "" {
		env.Customer.Name = "unknown"
		warnings = append(warnings, "customer name missing, defaulted to \"unknown\"")
	}
	if env.Customer.Email == "" {
		warnings = append(warnings, "customer email missing")
	}
	if env.Customer.Phone == "" {
		warnings = append(warnings, "customer phone missing")
	}
	if env.Address.Line1 == "" {
		warnings = append(warnings, "address line1 missing")
	}
	if env.Address.City == "" {
		warnings = append(warnings, "address city missing")
	}
	if env.Address.Country == "" {
		warnings = append(warnings, "address country missing")
	}

	e, err := New(env.EventType, env.Payload)
	if err != nil {
		return nil, nil, err
	}

	return e, warnings, nil
}
