package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrDeleteProductCommandIsNotConstructed = errors.New(
	"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
)

type DeleteProductCommand struct {
	actor     user.Actor
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteProductCommand(actor user.Actor, productID kernel.UUID) (DeleteProductCommand, error) {
	if err := errors.Join(actor.RequireRole(user.Seller, user.Admin), productID.Validate()); err != nil {
		return DeleteProductCommand{}, err
	}
	return DeleteProductCommand{actor: actor, productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductCommandIsNotConstructed)
}

func (c DeleteProductCommand) Actor() user.Actor { return c.actor }
func (c DeleteProductCommand) ProductID() kernel.UUID { return c.productID }
