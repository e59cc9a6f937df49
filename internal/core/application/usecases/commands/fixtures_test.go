package commands_test

import (
	"testing"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func actor(role user.Role) user.Actor {
	return user.Actor{ID: kernel.NewUUID(), Role: role}
}

func newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), role.String()+"@roboshop.test", "Test "+role.String(),
		"+8801700000000", "$2a$10$hash", role, now)
	require.NoError(t, err)
	return u
}

func withAddress(t *testing.T, u *user.User) user.Address {
	t.Helper()
	a, err := user.NewAddress(kernel.NewUUID(), user.AddressFields{
		Recipient: u.Name(), Phone: "017", Line1: "House 4, Road 2", City: "Dhaka", Country: "BD",
	})
	require.NoError(t, err)
	require.NoError(t, u.AddAddress(a))
	return a
}

func newProduct(t *testing.T, sellerID kernel.UUID, sku string, price int64, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), sellerID, product.Fields{
		SKU:      sku,
		Name:     "Part " + sku,
		Category: "motors",
		Price:    kernel.MustMoney(price),
		Stock:    stock,
		Active:   true,
	}, now)
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, customer user.Actor, items ...order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		it, err := order.NewItem(kernel.NewUUID(), "SRV-1", "Servo", kernel.MustMoney(10000), 2)
		require.NoError(t, err)
		items = []order.Item{it}
	}
	var subtotal kernel.Money
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	o, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Customer:      customer,
		CustomerEmail: "customer@roboshop.test",
		Shipping: order.ShippingAddress{
			Recipient: "Ada", Phone: "017", Line1: "House 4", City: "Dhaka", Country: "BD",
		},
		Items:         items,
		Amounts:       order.Amounts{Subtotal: subtotal, Total: subtotal},
		PaymentMethod: order.CashOnDelivery,
	}, now)
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
		require.NoError(t, o.Apply(admin, tr, now))
	}
}
