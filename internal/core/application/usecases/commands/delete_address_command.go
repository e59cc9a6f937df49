package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrDeleteAddressCommandIsNotConstructed = errors.New(
	"DeleteAddressCommand must be created via NewDeleteAddressCommand constructor",
)

type DeleteAddressCommand struct {
	actor     user.Actor
	addressID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteAddressCommand(actor user.Actor, addressID kernel.UUID) (DeleteAddressCommand, error) {
	if err := errors.Join(actor.ID.Validate(), addressID.Validate()); err != nil {
		return DeleteAddressCommand{}, err
	}
	return DeleteAddressCommand{actor: actor, addressID: addressID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAddressCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAddressCommandIsNotConstructed)
}

func (c DeleteAddressCommand) Actor() user.Actor { return c.actor }
func (c DeleteAddressCommand) AddressID() kernel.UUID { return c.addressID }
