package services

import (
	"time"

	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/settings"
	"roboshop/internal/pkg/errs"
)

// Pricer computes the amounts of a new order.
//
//	subtotal = sum(unit price * quantity)
//	discount = coupon discount on subtotal (capped at subtotal)
//	shipping = 0 when subtotal >= free shipping threshold, flat fee otherwise
//	tax      = (subtotal - discount) * tax bps / 10000, rounded half up
//	total    = subtotal - discount + shipping + tax
type Pricer struct{}

func NewPricer() Pricer {
	return Pricer{}
}

// Price redeems c (when non-nil) and returns the amounts. The coupon's usage
// counter is incremented, so the caller must persist it with the order.
func (Pricer) Price(
	items []order.Item,
	c *coupon.Coupon,
	commerce settings.Commerce,
	now time.Time,
) (order.Amounts, error) {
	if len(items) == 0 {
		return order.Amounts{}, errs.NewValueIsRequiredError("items")
	}

	var subtotal kernel.Money
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	var discount kernel.Money
	if c != nil {
		var err error
		if discount, err = c.Redeem(subtotal, now); err != nil {
			return order.Amounts{}, err
		}
	}

	shipping := commerce.ShippingFor(subtotal)
	tax := commerce.TaxOn(subtotal.Sub(discount))
	return order.Amounts{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Sub(discount).Add(shipping).Add(tax),
	}, nil
}
