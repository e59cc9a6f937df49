package order_test

import (
	"testing"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

func actor(role user.Role) user.Actor {
	return user.Actor{ID: kernel.NewUUID(), Role: role}
}

func newItem(t *testing.T, price int64, qty int) order.Item {
	t.Helper()
	it, err := order.NewItem(kernel.NewUUID(), "SRV-MG996R", "MG996R servo", kernel.MustMoney(price), qty)
	require.NoError(t, err)
	return it
}

func params(t *testing.T, customer user.Actor, method order.PaymentMethod) order.NewOrderParams {
	t.Helper()
	items := []order.Item{newItem(t, 45000, 2), newItem(t, 12000, 1)}
	subtotal := kernel.MustMoney(102000)
	discount := kernel.MustMoney(2000)
	shipping := kernel.MustMoney(6000)
	tax := kernel.MustMoney(5000)
	return order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Customer:      customer,
		CustomerEmail: "Ada@Example.com",
		Shipping: order.ShippingAddress{
			Recipient: "Ada", Phone: "017", Line1: "House 4", City: "Dhaka", Country: "BD",
		},
		Items: items,
		Amounts: order.Amounts{
			Subtotal: subtotal,
			Discount: discount,
			Shipping: shipping,
			Tax:      tax,
			Total:    subtotal.Sub(discount).Add(shipping).Add(tax),
		},
		CouponCode:    " robo10 ",
		PaymentMethod: method,
	}
}

func newOrder(t *testing.T, customer user.Actor) *order.Order {
	t.Helper()
	o, err := order.NewOrder(params(t, customer, order.CashOnDelivery), placedAt)
	require.NoError(t, err)
	return o
}

// advance applies actions as admin, assigning rider where needed.
func advance(t *testing.T, o *order.Order, rider kernel.UUID, actions ...order.Action) {
	t.Helper()
	admin := actor(user.Admin)
	for _, a := range actions {
		tr := order.Transition{Action: a}
		if a == order.Assign {
			tr.RiderID = &rider
		}
		require.NoError(t, o.Apply(admin, tr, placedAt.Add(time.Hour)))
	}
}
