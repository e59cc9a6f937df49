package commands

import (
	"context"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
)

type AddAddressCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewAddAddressCommandHandler(uowFactory UserUoWFactory) AddAddressCommandHandler {
	return AddAddressCommandHandler{uowFactory: uowFactory}
}

// Handle stores the address and returns it with its default flag resolved.
func (h AddAddressCommandHandler) Handle(ctx context.Context, command AddAddressCommand) (user.Address, error) {
	if err := command.Validate(); err != nil {
		return user.Address{}, err
	}

	address, err := user.NewAddress(kernel.NewUUID(), command.Fields())
	if err != nil {
		return user.Address{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return user.Address{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	u, err := users.Get(ctx, command.Actor().ID)
	if err != nil {
		return user.Address{}, err
	}

	if err = u.AddAddress(address); err != nil {
		return user.Address{}, err
	}

	if err = users.Update(ctx, u); err != nil {
		return user.Address{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return user.Address{}, err
	}

	return u.Address(address.ID())
}
