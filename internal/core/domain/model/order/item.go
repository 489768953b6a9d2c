package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrItemIsNotConstructed     = errs.NewValueIsRequiredError("Item must be created via NewItem")
	ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError("Customer must be created via NewCustomer")
	ErrAddressIsNotConstructed  = errs.NewValueIsRequiredError("Address must be created via NewAddress")
)

// Item is one line of the immutable item snapshot taken at checkout.
// The price is the catalog price validated at creation time; it never changes
// afterwards even if the catalog does.
type Item struct {
	code     string
	name     string
	price    float64
	quantity int

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line.
// The code and name must be non-empty, the price non-negative and the
// quantity positive.
func NewItem(code, name string, price float64, quantity int) (Item, error) {
	if strings.TrimSpace(code) == "" {
		return Item{}, errs.NewValueIsRequiredError("item code")
	}
	if strings.TrimSpace(name) == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if price < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item price",
			fmt.Errorf("%v is not a valid price", price))
	}
	if quantity <= 0 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("item quantity", quantity, 1, maxItemQuantity)
	}

	return Item{
		code:     code,
		name:     name,
		price:    price,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// maxItemQuantity bounds a single order line.
const maxItemQuantity = 10000

// Validate ensures the item was created via NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Code returns the catalog code of the ordered product.
func (i Item) Code() string { return i.code }

// Name returns the product name captured at checkout.
func (i Item) Name() string { return i.name }

// Price returns the unit price captured at checkout.
func (i Item) Price() float64 { return i.price }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// Subtotal returns price times quantity for this line.
func (i Item) Subtotal() float64 {
	return i.price * float64(i.quantity)
}

// Customer holds the contact details captured with the order.
type Customer struct {
	name  string
	email string
	phone string

	guard guard.ConstructorGuard
}

// NewCustomer creates validated customer details.
// Name and email are required; phone is optional.
func NewCustomer(name, email, phone string) (Customer, error) {
	if strings.TrimSpace(name) == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if strings.TrimSpace(email) == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer email")
	}

	return Customer{
		name:  name,
		email: email,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the customer was created via NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }

// Address is the delivery destination captured with the order.
// The country drives the deliverability predicate evaluated by the
// order processing job.
type Address struct {
	line1   string
	line2   string
	city    string
	state   string
	zip     string
	country string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated delivery address.
// Line1, city and country are required; line2, state and zip are optional.
func NewAddress(line1, line2, city, state, zip, country string) (Address, error) {
	if strings.TrimSpace(line1) == "" {
		return Address{}, errs.NewValueIsRequiredError("address line1")
	}
	if strings.TrimSpace(city) == "" {
		return Address{}, errs.NewValueIsRequiredError("address city")
	}
	if strings.TrimSpace(country) == "" {
		return Address{}, errs.NewValueIsRequiredError("address country")
	}

	return Address{
		line1:   line1,
		line2:   line2,
		city:    city,
		state:   state,
		zip:     zip,
		country: country,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line1() string   { return a.line1 }
func (a Address) Line2() string   { return a.line2 }
func (a Address) City() string    { return a.city }
func (a Address) State() string   { return a.state }
func (a Address) Zip() string     { return a.zip }
func (a Address) Country() string { return a.country }
