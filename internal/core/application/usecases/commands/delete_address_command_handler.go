package commands

import (
	"context"
)

type DeleteAddressCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewDeleteAddressCommandHandler(uowFactory UserUoWFactory) DeleteAddressCommandHandler {
	return DeleteAddressCommandHandler{uowFactory: uowFactory}
}

func (h DeleteAddressCommandHandler) Handle(ctx context.Context, command DeleteAddressCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	u, err := users.Get(ctx, command.Actor().ID)
	if err != nil {
		return err
	}

	if err = u.RemoveAddress(command.AddressID()); err != nil {
		return err
	}

	if err = users.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
