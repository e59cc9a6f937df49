package commands

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/domain/services"
	"roboshop/internal/pkg/errs"
)

var (
	ErrAutoAssignDisabled = errors.New("automatic rider assignment is disabled")
	ErrNoOrderFound       = errors.New("no packed order found")
	ErrNoFreeRidersFound  = errors.New("no active riders found")
)

// AutoAssignRiderCommandHandler assigns one packed order per call.
//
// Workflow:
//  1. Check the commerce settings enable auto assignment
//  2. Load the packed order waiting longest
//  3. Load active riders with their current load
//  4. Dispatch through the order state machine as the system actor
//  5. Persist and notify
type AutoAssignRiderCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher services.RiderDispatcher
	notifier   OrderChangeNotifier
}

func NewAutoAssignRiderCommandHandler(
	uowFactory DispatchUoWFactory,
	dispatcher services.RiderDispatcher,
	notifier OrderChangeNotifier,
) AutoAssignRiderCommandHandler {
	return AutoAssignRiderCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, notifier: notifier}
}

func (h AutoAssignRiderCommandHandler) Handle(ctx context.Context, command AutoAssignRiderCommand) (*order.Order, error) {
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

	current, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if !current.Commerce.AutoAssignRiders {
		return nil, ErrAutoAssignDisabled
	}

	orders := uow.OrderRepository()
	o, err := orders.GetOldestPacked(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoOrderFound
	}
	if err != nil {
		return nil, err
	}

	riders, err := orders.GetRiderLoads(ctx)
	if err != nil {
		return nil, err
	}

	if _, err = h.dispatcher.Dispatch(o, riders, user.System, time.Now()); err != nil {
		if errors.Is(err, services.ErrRiderNotFound) {
			return nil, ErrNoFreeRidersFound
		}
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, user.System, o.Changes())
	return o, nil
}
