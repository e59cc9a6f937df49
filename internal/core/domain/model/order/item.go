package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
)

// MaxItemQuantity caps a single line.
const MaxItemQuantity = 99

// Item is a purchased line, priced at checkout time.
type Item struct {
	productID kernel.UUID
	sku       string
	name      string
	unitPrice kernel.Money
	quantity  int
}

func NewItem(productID kernel.UUID, sku, name string, unitPrice kernel.Money, quantity int) (Item, error) {
	var qtyErr error
	if quantity < 1 || quantity > MaxItemQuantity {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	var skuErr, nameErr, priceErr error
	if strings.TrimSpace(sku) == "" {
		skuErr = errs.NewValueIsRequiredError("sku")
	}
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if unitPrice.IsZero() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("unit price", errors.New("must be greater than 0"))
	}
	if err := errors.Join(productID.Validate(), qtyErr, skuErr, nameErr, priceErr); err != nil {
		return Item{}, err
	}
	return Item{productID: productID, sku: sku, name: name, unitPrice: unitPrice, quantity: quantity}, nil
}

func (i Item) ProductID() kernel.UUID { return i.productID }
func (i Item) SKU() string { return i.sku }
func (i Item) Name() string { return i.name }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i Item) Quantity() int { return i.quantity }
func (i Item) LineTotal() kernel.Money { return i.unitPrice.Times(i.quantity) }

// Amounts is the priced breakdown of an order.
type Amounts struct {
	Subtotal kernel.Money
	Discount kernel.Money
	Shipping kernel.Money
	Tax      kernel.Money
	Total    kernel.Money
}

// Validate checks that the breakdown adds up for the given items.
func (a Amounts) Validate(items []Item) error {
	var subtotal kernel.Money
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	if subtotal != a.Subtotal {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%s does not match item total %s", a.Subtotal, subtotal))
	}
	if a.Subtotal.Less(a.Discount) {
		return errs.NewValueIsInvalidErrorWithCause("discount", fmt.Errorf("%s exceeds subtotal", a.Discount))
	}
	want := a.Subtotal.Sub(a.Discount).Add(a.Shipping).Add(a.Tax)
	if want != a.Total {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%s, expected %s", a.Total, want))
	}
	return nil
}

// ShippingAddress is the address snapshot taken at checkout.
type ShippingAddress struct {
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
}

// SnapshotAddress copies a saved user address into an order.
func SnapshotAddress(a user.Address) ShippingAddress {
	f := a.Fields()
	return ShippingAddress{
		Recipient:  f.Recipient,
		Phone:      f.Phone,
		Line1:      f.Line1,
		Line2:      f.Line2,
		City:       f.City,
		PostalCode: f.PostalCode,
		Country:    f.Country,
	}
}

func (a ShippingAddress) Validate() error {
	if a.Recipient == "" || a.Line1 == "" || a.City == "" {
		return errs.NewValueIsRequiredError("shipping address")
	}
	return nil
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	CashOnDelivery PaymentMethod = "cod"
	Card           PaymentMethod = "card"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case CashOnDelivery, Card:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", s))
	}
}

// PaymentStatus tracks the money side of the order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// HistoryEntry is one audit line in the order's embedded history.
type HistoryEntry struct {
	Status    Status
	Action    Action
	ActorID   *kernel.UUID
	ActorRole user.Role
	Note      string
	At        time.Time
}

// StatusChanged describes an applied transition, published after commit.
type StatusChanged struct {
	OrderID   kernel.UUID
	Number    string
	From      Status
	To        Status
	Action    Action
	ActorID   *kernel.UUID
	ActorRole user.Role
	RiderID   *kernel.UUID
	At        time.Time
}
