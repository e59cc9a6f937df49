package services_test

import (
	"testing"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/domain/services"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := placedOrder(t, order.CashOnDelivery)
	require.NoError(t, o.Apply(user.System, order.Transition{Action: order.Pack}, time.Now()))
	return o
}

func TestRiderDispatcher_Dispatch(t *testing.T) {
	t.Run("should pick the rider with the fewest active orders", func(t *testing.T) {
		busy, idle, medium := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		o := packedOrder(t)

		riderID, err := services.NewRiderDispatcher().Dispatch(o, []services.RiderLoad{
			{RiderID: busy, ActiveOrders: 4},
			{RiderID: idle, ActiveOrders: 0},
			{RiderID: medium, ActiveOrders: 2},
		}, user.System, time.Now())

		require.NoError(t, err)
		assert.True(t, riderID.IsEqual(idle))
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.IsAssignedTo(idle))

		last := o.History()[len(o.History())-1]
		assert.Equal(t, "auto-assigned", last.Note)
		assert.Nil(t, last.ActorID)
	})

	t.Run("should keep listing order on ties", func(t *testing.T) {
		first, second := kernel.NewUUID(), kernel.NewUUID()
		o := packedOrder(t)

		riderID, err := services.NewRiderDispatcher().Dispatch(o, []services.RiderLoad{
			{RiderID: first, ActiveOrders: 1},
			{RiderID: second, ActiveOrders: 1},
		}, user.System, time.Now())

		require.NoError(t, err)
		assert.True(t, riderID.IsEqual(first))
	})

	t.Run("should return ErrRiderNotFound without riders", func(t *testing.T) {
		o := packedOrder(t)

		_, err := services.NewRiderDispatcher().Dispatch(o, nil, user.System, time.Now())

		require.ErrorIs(t, err, services.ErrRiderNotFound)
		assert.Equal(t, order.Packed, o.Status())
	})

	t.Run("should refuse orders that are not packed", func(t *testing.T) {
		o := placedOrder(t, order.Card)

		_, err := services.NewRiderDispatcher().Dispatch(o,
			[]services.RiderLoad{{RiderID: kernel.NewUUID()}}, user.System, time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should refuse an invalid order", func(t *testing.T) {
		_, err := services.NewRiderDispatcher().Dispatch(&order.Order{},
			[]services.RiderLoad{{RiderID: kernel.NewUUID()}}, user.System, time.Now())

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
