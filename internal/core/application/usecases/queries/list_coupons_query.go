package queries

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListCouponsQueryIsNotConstructed = errors.New(
	"ListCouponsQuery must be created via NewListCouponsQuery constructor",
)

type ListCouponsQuery struct {
	guard guard.ConstructorGuard
}

func NewListCouponsQuery(actor user.Actor) (ListCouponsQuery, error) {
	if err := actor.RequireRole(user.Admin); err != nil {
		return ListCouponsQuery{}, err
	}
	return ListCouponsQuery{guard: guard.NewConstructorGuard()}, nil
}

func (q ListCouponsQuery) Validate() error {
	return q.guard.Validate(ErrListCouponsQueryIsNotConstructed)
}

type ListCouponsQueryHandler struct {
	db *gorm.DB
}

func NewListCouponsQueryHandler(db *gorm.DB) ListCouponsQueryHandler {
	return ListCouponsQueryHandler{db: db}
}

// Handle lists every coupon, newest first.
func (h ListCouponsQueryHandler) Handle(ctx context.Context, query ListCouponsQuery) ([]*coupon.Coupon, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT code, kind, value, min_subtotal, max_uses, used_count, expires_at, active
		FROM coupons
		ORDER BY created_at DESC, code
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := make([]*coupon.Coupon, 0)
	for rows.Next() {
		var (
			code, kind         string
			value, minSubtotal int64
			maxUses, usedCount int
			expiresAt          *time.Time
			active             bool
		)
		if err = rows.Scan(&code, &kind, &value, &minSubtotal, &maxUses, &usedCount, &expiresAt, &active); err != nil {
			return nil, err
		}

		minimum, err := kernel.NewMoney(minSubtotal)
		if err != nil {
			return nil, err
		}
		c, err := coupon.RestoreCoupon(coupon.Params{
			Code:        code,
			Kind:        coupon.Kind(kind),
			Value:       value,
			MinSubtotal: minimum,
			MaxUses:     maxUses,
			ExpiresAt:   expiresAt,
			Active:      active,
		}, usedCount)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return coupons, nil
}
