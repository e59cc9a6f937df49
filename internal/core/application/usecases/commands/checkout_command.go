package commands

import (
	"errors"
	"sort"

	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CartLine is a requested product quantity.
type CartLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CheckoutCommand places an order. Without explicit lines the caller's cart is used.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(actor, addressID, order.CashOnDelivery, "ROBO10", nil)
//	placed, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct {
	actor         user.Actor
	addressID     kernel.UUID
	paymentMethod order.PaymentMethod
	couponCode    string
	lines         []CartLine

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(
	actor user.Actor,
	addressID kernel.UUID,
	paymentMethod order.PaymentMethod,
	couponCode string,
	lines []CartLine,
) (CheckoutCommand, error) {
	method, paymentErr := order.ParsePaymentMethod(string(paymentMethod))
	cmd := CheckoutCommand{
		actor:         actor,
		addressID:     addressID,
		paymentMethod: method,
		couponCode:    coupon.NormalizeCode(couponCode),
		guard:         guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		actor.RequireRole(user.Customer),
		addressID.Validate(),
		paymentErr,
		cmd.setLines(lines),
	); err != nil {
		return CheckoutCommand{}, err
	}
	return cmd, nil
}

func (c *CheckoutCommand) setLines(lines []CartLine) error {
	merged, err := MergeCartLines(lines)
	if err != nil {
		return err
	}
	c.lines = merged
	return nil
}

// MergeCartLines sums duplicate products and orders lines by product id so row
// locks are always taken in the same order.
func MergeCartLines(lines []CartLine) ([]CartLine, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	byID := make(map[kernel.UUID]int, len(lines))
	for _, l := range lines {
		if err := l.ProductID.Validate(); err != nil {
			return nil, err
		}
		if l.Quantity < 1 {
			return nil, errs.NewValueIsOutOfRangeError("quantity", l.Quantity, 1, order.MaxItemQuantity)
		}
		byID[l.ProductID] += l.Quantity
	}
	if len(byID) > order.MaxItems {
		return nil, errs.NewValueIsOutOfRangeError("items", len(byID), 1, order.MaxItems)
	}

	merged := make([]CartLine, 0, len(byID))
	for id, qty := range byID {
		merged = append(merged, CartLine{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ProductID.String() < merged[j].ProductID.String()
	})
	return merged, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) Actor() user.Actor { return c.actor }
func (c CheckoutCommand) AddressID() kernel.UUID { return c.addressID }
func (c CheckoutCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c CheckoutCommand) CouponCode() string { return c.couponCode }

// Lines returns the merged explicit lines; empty means "use the cart".
func (c CheckoutCommand) Lines() []CartLine { return append([]CartLine(nil), c.lines...) }
