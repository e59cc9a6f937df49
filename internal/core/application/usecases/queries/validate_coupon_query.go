package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

var ErrValidateCouponQueryIsNotConstructed = errors.New(
	"ValidateCouponQuery must be created via NewValidateCouponQuery constructor",
)

type ValidateCouponQuery struct {
	code     string
	subtotal kernel.Money

	guard guard.ConstructorGuard
}

func NewValidateCouponQuery(code string, subtotal kernel.Money) (ValidateCouponQuery, error) {
	code = coupon.NormalizeCode(code)
	if strings.TrimSpace(code) == "" {
		return ValidateCouponQuery{}, errs.NewValueIsRequiredError("code")
	}
	return ValidateCouponQuery{code: code, subtotal: subtotal, guard: guard.NewConstructorGuard()}, nil
}

func (q ValidateCouponQuery) Validate() error {
	return q.guard.Validate(ErrValidateCouponQueryIsNotConstructed)
}

// CouponCheck answers whether a code applies to a subtotal. Reason is empty when Valid.
type CouponCheck struct {
	Code     string
	Valid    bool
	Discount kernel.Money
	Reason   string
}

type ValidateCouponQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewValidateCouponQueryHandler(uowFactory ports.UnitOfWorkFactory) ValidateCouponQueryHandler {
	return ValidateCouponQueryHandler{uowFactory: uowFactory}
}

// Handle reports unknown codes as invalid rather than as an error, so the
// storefront can show the reason inline.
func (h ValidateCouponQueryHandler) Handle(ctx context.Context, query ValidateCouponQuery) (CouponCheck, error) {
	if err := query.Validate(); err != nil {
		return CouponCheck{}, err
	}

	check := CouponCheck{Code: query.code}
	c, err := h.uowFactory.Create().CouponRepository().Get(ctx, query.code)
	if errors.Is(err, errs.ErrObjectNotFound) {
		check.Reason = "coupon does not exist"
		return check, nil
	}
	if err != nil {
		return CouponCheck{}, err
	}

	now := time.Now()
	if reason := c.Rejection(query.subtotal, now); reason != "" {
		check.Reason = reason
		return check, nil
	}
	discount, err := c.Discount(query.subtotal, now)
	if err != nil {
		return CouponCheck{}, err
	}
	check.Valid = true
	check.Discount = discount
	return check, nil
}
