package user_test

import (
	"testing"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newCustomer(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "  Ada@Example.COM ", "Ada", "+8801700000000", "hash", user.Customer, now)
	require.NoError(t, err)
	return u
}

func newAddress(t *testing.T, label string) user.Address {
	t.Helper()
	a, err := user.NewAddress(kernel.NewUUID(), user.AddressFields{
		Label: label, Recipient: "Ada", Phone: "017", Line1: "House 4, Road 2", City: "Dhaka", Country: "BD",
	})
	require.NoError(t, err)
	return a
}

func TestNewUser(t *testing.T) {
	t.Run("normalises email and starts active", func(t *testing.T) {
		u := newCustomer(t)

		require.NoError(t, u.Validate())
		assert.Equal(t, "ada@example.com", u.Email())
		assert.True(t, u.IsActive())
		assert.Equal(t, user.Customer, u.Role())
		assert.Empty(t, u.Addresses())
	})

	t.Run("collects every validation error", func(t *testing.T) {
		_, err := user.NewUser(kernel.UUID{}, "not-an-email", " ", "", "", user.Role("owner"), now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "value is required: name")
		assert.Contains(t, err.Error(), "value is required: password")
		assert.Contains(t, err.Error(), `"owner" is not a valid role`)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var u user.User
		require.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	})
}

func TestUser_Addresses(t *testing.T) {
	t.Run("first address becomes default", func(t *testing.T) {
		u := newCustomer(t)
		home := newAddress(t, "Home")
		office := newAddress(t, "Office")

		require.NoError(t, u.AddAddress(home))
		require.NoError(t, u.AddAddress(office))

		addrs := u.Addresses()
		require.Len(t, addrs, 2)
		assert.True(t, addrs[0].IsDefault())
		assert.False(t, addrs[1].IsDefault())
	})

	t.Run("removing the default promotes the next one", func(t *testing.T) {
		u := newCustomer(t)
		home := newAddress(t, "Home")
		office := newAddress(t, "Office")
		require.NoError(t, u.AddAddress(home))
		require.NoError(t, u.AddAddress(office))

		require.NoError(t, u.RemoveAddress(home.ID()))

		addrs := u.Addresses()
		require.Len(t, addrs, 1)
		assert.True(t, addrs[0].ID().IsEqual(office.ID()))
		assert.True(t, addrs[0].IsDefault())
	})

	t.Run("unknown address is not found", func(t *testing.T) {
		u := newCustomer(t)
		require.ErrorIs(t, u.RemoveAddress(kernel.NewUUID()), errs.ErrObjectNotFound)

		_, err := u.Address(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("limit is enforced", func(t *testing.T) {
		u := newCustomer(t)
		for range user.MaxAddresses {
			require.NoError(t, u.AddAddress(newAddress(t, "x")))
		}
		require.ErrorIs(t, u.AddAddress(newAddress(t, "one too many")), errs.ErrValueIsOutOfRange)
	})

	t.Run("missing fields are reported", func(t *testing.T) {
		_, err := user.NewAddress(kernel.NewUUID(), user.AddressFields{Recipient: "Ada"})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "line1")
		assert.Contains(t, err.Error(), "city")
	})
}

func TestActor(t *testing.T) {
	rider, err := user.NewActor(kernel.NewUUID(), user.Rider)
	require.NoError(t, err)

	require.NoError(t, rider.RequireRole(user.Rider, user.Admin))
	require.ErrorIs(t, rider.RequireRole(user.Admin), errs.ErrForbidden)
	assert.False(t, rider.IsSystem())
	assert.True(t, user.System.IsSystem())
}

func TestParseRole(t *testing.T) {
	r, err := user.ParseRole(" Seller ")
	require.NoError(t, err)
	assert.Equal(t, user.Seller, r)
	assert.True(t, r.IsStaff())

	_, err = user.ParseRole("guest")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
