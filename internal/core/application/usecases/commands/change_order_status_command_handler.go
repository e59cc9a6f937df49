package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies a lifecycle action inside a unit of
// work. The order update is version-guarded, so a concurrent change fails with
// errs.ErrVersionIsInvalid instead of being overwritten. Cancellation returns
// the items to stock in the same transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderChangeNotifier
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier OrderChangeNotifier,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	actor := command.Actor()
	if !o.VisibleTo(actor) {
		return nil, errs.NewObjectNotFoundError("order", command.OrderID().String())
	}

	if command.Action() == order.Assign && command.RiderID() != nil {
		if err = h.checkRider(ctx, uow.UserRepository(), *command.RiderID()); err != nil {
			return nil, err
		}
	}

	if err = o.Apply(actor, order.Transition{
		Action:  command.Action(),
		RiderID: command.RiderID(),
		Note:    command.Note(),
	}, time.Now()); err != nil {
		return nil, err
	}

	changes := o.Changes()
	for _, c := range changes {
		if c.Restocks() {
			if err = restock(ctx, uow.ProductRepository(), o.Items()); err != nil {
				return nil, err
			}
		}
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, actor, changes)
	return o, nil
}

func (h ChangeOrderStatusCommandHandler) checkRider(ctx context.Context, users ports.UserRepository, riderID kernel.UUID) error {
	rider, err := users.Get(ctx, riderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("riderId", errors.New("rider does not exist"))
	}
	if err != nil {
		return err
	}
	if rider.Role() != user.Rider || !rider.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("riderId",
			fmt.Errorf("user %s is not an active rider", riderID))
	}
	return nil
}

// restock returns item quantities to products that still exist.
func restock(ctx context.Context, products ports.ProductRepository, items []order.Item) error {
	ids := make([]kernel.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ProductID()
	}
	locked, err := products.GetManyForUpdate(ctx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		p, ok := locked[it.ProductID()]
		if !ok {
			continue
		}
		if err = p.IncreaseStock(it.Quantity()); err != nil {
			return err
		}
		if err = products.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
