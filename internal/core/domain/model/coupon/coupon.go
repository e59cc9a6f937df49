// Package coupon implements discount codes redeemed at checkout.
package coupon

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

type Kind string

const (
	// Percent values are whole percentages, 1..100.
	Percent Kind = "percent"
	// Fixed values are minor currency units.
	Fixed Kind = "fixed"
)

var (
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon constructor")

	codePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Percent, Fixed:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a coupon kind", s))
	}
}

type Coupon struct {
	code        string
	kind        Kind
	value       int64
	minSubtotal kernel.Money
	maxUses     int
	usedCount   int
	expiresAt   *time.Time
	active      bool

	guard guard.ConstructorGuard
}

// Params describes a coupon. MaxUses 0 means unlimited, a nil ExpiresAt never expires.
type Params struct {
	Code        string
	Kind        Kind
	Value       int64
	MinSubtotal kernel.Money
	MaxUses     int
	ExpiresAt   *time.Time
	Active      bool
}

func NewCoupon(p Params) (*Coupon, error) {
	code := NormalizeCode(p.Code)
	var codeErr, valueErr, usesErr error
	if !codePattern.MatchString(code) {
		codeErr = errs.NewValueIsInvalidErrorWithCause("code",
			fmt.Errorf("%q must be 3-32 letters, digits, dashes or underscores", p.Code))
	}
	kind, kindErr := ParseKind(string(p.Kind))
	switch {
	case kind == Percent && (p.Value < 1 || p.Value > 100):
		valueErr = errs.NewValueIsOutOfRangeError("value", p.Value, 1, 100)
	case kind == Fixed && p.Value < 1:
		valueErr = errs.NewValueIsInvalidErrorWithCause("value", errors.New("must be greater than 0"))
	}
	if p.MaxUses < 0 {
		usesErr = errs.NewValueIsInvalidErrorWithCause("max uses", errors.New("must not be negative"))
	}
	if err := errors.Join(codeErr, kindErr, valueErr, usesErr); err != nil {
		return nil, err
	}

	c := &Coupon{
		code:        code,
		kind:        kind,
		value:       p.Value,
		minSubtotal: p.MinSubtotal,
		maxUses:     p.MaxUses,
		active:      p.Active,
		guard:       guard.NewConstructorGuard(),
	}
	if p.ExpiresAt != nil {
		at := p.ExpiresAt.UTC()
		c.expiresAt = &at
	}
	return c, nil
}

// RestoreCoupon rebuilds a coupon loaded from storage.
func RestoreCoupon(p Params, usedCount int) (*Coupon, error) {
	c, err := NewCoupon(p)
	if err != nil {
		return nil, err
	}
	c.usedCount = usedCount
	return c, nil
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c *Coupon) Validate() error {
	if c == nil {
		return ErrCouponIsNotConstructed
	}
	return c.guard.Validate(ErrCouponIsNotConstructed)
}

func (c *Coupon) Code() string { return c.code }
func (c *Coupon) Kind() Kind { return c.kind }
func (c *Coupon) Value() int64 { return c.value }
func (c *Coupon) MinSubtotal() kernel.Money { return c.minSubtotal }
func (c *Coupon) MaxUses() int { return c.maxUses }
func (c *Coupon) UsedCount() int { return c.usedCount }
func (c *Coupon) ExpiresAt() *time.Time { return c.expiresAt }
func (c *Coupon) IsActive() bool { return c.active }

// Discount computes what the coupon takes off subtotal at now. It returns a
// ValueIsInvalid error whose cause is the customer-facing reason when the
// coupon does not apply.
func (c *Coupon) Discount(subtotal kernel.Money, now time.Time) (kernel.Money, error) {
	reason := c.rejection(subtotal, now)
	if reason != "" {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("coupon", errors.New(reason))
	}
	var discount kernel.Money
	switch c.kind {
	case Percent:
		discount = subtotal.BasisPoints(int(c.value * 100))
	case Fixed:
		discount = kernel.MustMoney(c.value)
	}
	return discount.Min(subtotal), nil
}

// Redeem computes the discount and counts one use.
func (c *Coupon) Redeem(subtotal kernel.Money, now time.Time) (kernel.Money, error) {
	discount, err := c.Discount(subtotal, now)
	if err != nil {
		return kernel.Money{}, err
	}
	c.usedCount++
	return discount, nil
}

// Rejection explains why the coupon cannot apply to subtotal, or returns "" when it can.
func (c *Coupon) Rejection(subtotal kernel.Money, now time.Time) string {
	return c.rejection(subtotal, now)
}

func (c *Coupon) rejection(subtotal kernel.Money, now time.Time) string {
	switch {
	case !c.active:
		return "coupon is not active"
	case c.expiresAt != nil && !now.Before(*c.expiresAt):
		return "coupon has expired"
	case c.maxUses > 0 && c.usedCount >= c.maxUses:
		return "coupon usage limit reached"
	case subtotal.Less(c.minSubtotal):
		return fmt.Sprintf("subtotal must be at least %s", c.minSubtotal)
	default:
		return ""
	}
}
