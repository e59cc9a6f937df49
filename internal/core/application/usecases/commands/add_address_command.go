package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrAddAddressCommandIsNotConstructed = errors.New(
	"AddAddressCommand must be created via NewAddAddressCommand constructor",
)

// AddAddressCommand saves a shipping address to the caller's account.
type AddAddressCommand struct {
	actor  user.Actor
	fields user.AddressFields

	guard guard.ConstructorGuard
}

func NewAddAddressCommand(actor user.Actor, fields user.AddressFields) (AddAddressCommand, error) {
	if err := actor.ID.Validate(); err != nil {
		return AddAddressCommand{}, err
	}
	return AddAddressCommand{actor: actor, fields: fields, guard: guard.NewConstructorGuard()}, nil
}

func (c AddAddressCommand) Validate() error {
	return c.guard.Validate(ErrAddAddressCommandIsNotConstructed)
}

func (c AddAddressCommand) Actor() user.Actor { return c.actor }
func (c AddAddressCommand) Fields() user.AddressFields { return c.fields }
