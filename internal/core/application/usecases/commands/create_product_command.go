package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand lists a new product. The caller becomes its seller.
type CreateProductCommand struct {
	actor  user.Actor
	fields product.Fields

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(actor user.Actor, fields product.Fields) (CreateProductCommand, error) {
	if err := actor.RequireRole(user.Seller, user.Admin); err != nil {
		return CreateProductCommand{}, err
	}
	return CreateProductCommand{actor: actor, fields: fields, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Actor() user.Actor { return c.actor }
func (c CreateProductCommand) Fields() product.Fields { return c.fields }
