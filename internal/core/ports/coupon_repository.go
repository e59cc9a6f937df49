package ports

import (
	"context"

	"roboshop/internal/core/domain/model/coupon"
)

type CouponRepository interface {
	// Add persists a new coupon. A taken code returns errs.ErrAlreadyExists.
	Add(ctx context.Context, aggregate *coupon.Coupon) error

	// Update persists the usage counter and flags.
	Update(ctx context.Context, aggregate *coupon.Coupon) error

	// Get retrieves a coupon by its normalised code.
	Get(ctx context.Context, code string) (*coupon.Coupon, error)
}
