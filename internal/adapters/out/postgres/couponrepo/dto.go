// Package couponrepo persists discount coupons keyed by their code.
package couponrepo

import (
	"time"

	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/kernel"
)

type CouponDTO struct {
	Code        string `gorm:"primaryKey"`
	Kind        string `gorm:"not null"`
	Value       int64  `gorm:"not null"`
	MinSubtotal int64  `gorm:"not null"`
	MaxUses     int    `gorm:"not null"`
	UsedCount   int    `gorm:"not null"`
	ExpiresAt   *time.Time
	Active      bool `gorm:"not null"`
	CreatedAt   time.Time
}

func (CouponDTO) TableName() string {
	return "coupons"
}

func fromDomain(c *coupon.Coupon) CouponDTO {
	return CouponDTO{
		Code:        c.Code(),
		Kind:        string(c.Kind()),
		Value:       c.Value(),
		MinSubtotal: c.MinSubtotal().Amount(),
		MaxUses:     c.MaxUses(),
		UsedCount:   c.UsedCount(),
		ExpiresAt:   c.ExpiresAt(),
		Active:      c.IsActive(),
	}
}

func ToDomain(dto CouponDTO) (*coupon.Coupon, error) {
	minSubtotal, err := kernel.NewMoney(dto.MinSubtotal)
	if err != nil {
		return nil, err
	}
	return coupon.RestoreCoupon(coupon.Params{
		Code:        dto.Code,
		Kind:        coupon.Kind(dto.Kind),
		Value:       dto.Value,
		MinSubtotal: minSubtotal,
		MaxUses:     dto.MaxUses,
		ExpiresAt:   dto.ExpiresAt,
		Active:      dto.Active,
	}, dto.UsedCount)
}
