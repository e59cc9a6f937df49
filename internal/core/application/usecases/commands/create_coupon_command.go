package commands

import (
	"context"
	"errors"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrCreateCouponCommandIsNotConstructed = errors.New(
	"CreateCouponCommand must be created via NewCreateCouponCommand constructor",
)

// CreateCouponCommand defines a new discount code.
type CreateCouponCommand struct {
	actor  user.Actor
	params coupon.Params

	guard guard.ConstructorGuard
}

func NewCreateCouponCommand(actor user.Actor, params coupon.Params) (CreateCouponCommand, error) {
	if err := actor.RequireRole(user.Admin); err != nil {
		return CreateCouponCommand{}, err
	}
	return CreateCouponCommand{actor: actor, params: params, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCouponCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouponCommandIsNotConstructed)
}

func (c CreateCouponCommand) Actor() user.Actor { return c.actor }
func (c CreateCouponCommand) Params() coupon.Params { return c.params }

type CreateCouponCommandHandler struct {
	uowFactory CouponUoWFactory
	audit      AuditTrail
}

func NewCreateCouponCommandHandler(uowFactory CouponUoWFactory, audit AuditTrail) CreateCouponCommandHandler {
	return CreateCouponCommandHandler{uowFactory: uowFactory, audit: audit}
}

// Handle stores the coupon. A taken code is reported as errs.ErrAlreadyExists by the repository.
func (h CreateCouponCommandHandler) Handle(ctx context.Context, command CreateCouponCommand) (*coupon.Coupon, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	c, err := coupon.NewCoupon(command.Params())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CouponRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.Record(ctx, command.Actor(), "coupon.create", audit.EntityCoupon, c.Code(),
		map[string]string{"kind": string(c.Kind())})
	return c, nil
}
