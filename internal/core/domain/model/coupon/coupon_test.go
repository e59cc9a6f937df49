package coupon_test

import (
	"testing"
	"time"

	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestNewCoupon(t *testing.T) {
	c, err := coupon.NewCoupon(coupon.Params{Code: " robo10 ", Kind: "Percent", Value: 10, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "ROBO10", c.Code())
	assert.Equal(t, coupon.Percent, c.Kind())
	require.NoError(t, c.Validate())
}

func TestNewCoupon_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params coupon.Params
		target error
	}{
		{"short code", coupon.Params{Code: "AB", Kind: coupon.Fixed, Value: 5}, errs.ErrValueIsInvalid},
		{"code with space", coupon.Params{Code: "A B C", Kind: coupon.Fixed, Value: 5}, errs.ErrValueIsInvalid},
		{"unknown kind", coupon.Params{Code: "ROBO", Kind: "bogo", Value: 5}, errs.ErrValueIsInvalid},
		{"percent above 100", coupon.Params{Code: "ROBO", Kind: coupon.Percent, Value: 150}, errs.ErrValueIsOutOfRange},
		{"zero fixed", coupon.Params{Code: "ROBO", Kind: coupon.Fixed}, errs.ErrValueIsInvalid},
		{"negative uses", coupon.Params{Code: "ROBO", Kind: coupon.Fixed, Value: 1, MaxUses: -1}, errs.ErrValueIsInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coupon.NewCoupon(tt.params)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestCoupon_Discount(t *testing.T) {
	percent, err := coupon.NewCoupon(coupon.Params{Code: "TEN", Kind: coupon.Percent, Value: 10, Active: true})
	require.NoError(t, err)
	fixed, err := coupon.NewCoupon(coupon.Params{Code: "FIVEK", Kind: coupon.Fixed, Value: 5000, Active: true})
	require.NoError(t, err)

	d, err := percent.Discount(kernel.MustMoney(12345), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1235), d.Amount())

	d, err = fixed.Discount(kernel.MustMoney(3000), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), d.Amount(), "never more than the subtotal")
}

func TestCoupon_Rejections(t *testing.T) {
	expired := now.Add(-time.Minute)
	tests := []struct {
		name     string
		params   coupon.Params
		used     int
		subtotal int64
		reason   string
	}{
		{"inactive", coupon.Params{Code: "OFF", Kind: coupon.Fixed, Value: 1}, 0, 100, "not active"},
		{"expired", coupon.Params{Code: "OLD", Kind: coupon.Fixed, Value: 1, Active: true, ExpiresAt: &expired}, 0, 100, "expired"},
		{"used up", coupon.Params{Code: "ONCE", Kind: coupon.Fixed, Value: 1, Active: true, MaxUses: 1}, 1, 100, "usage limit"},
		{"min subtotal", coupon.Params{Code: "BIG", Kind: coupon.Fixed, Value: 1, Active: true,
			MinSubtotal: kernel.MustMoney(50000)}, 0, 100, "at least 500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := coupon.RestoreCoupon(tt.params, tt.used)
			require.NoError(t, err)

			_, err = c.Discount(kernel.MustMoney(tt.subtotal), now)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestCoupon_Redeem(t *testing.T) {
	c, err := coupon.NewCoupon(coupon.Params{Code: "TWICE", Kind: coupon.Fixed, Value: 100, Active: true, MaxUses: 2})
	require.NoError(t, err)

	for range 2 {
		_, err = c.Redeem(kernel.MustMoney(1000), now)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.UsedCount())

	_, err = c.Redeem(kernel.MustMoney(1000), now)
	require.Error(t, err)
	assert.Equal(t, 2, c.UsedCount())
}
