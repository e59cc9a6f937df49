package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// UpdateProductCommand replaces a product's editable fields.
type UpdateProductCommand struct {
	actor     user.Actor
	productID kernel.UUID
	fields    product.Fields

	guard guard.ConstructorGuard
}

func NewUpdateProductCommand(actor user.Actor, productID kernel.UUID, fields product.Fields) (UpdateProductCommand, error) {
	if err := errors.Join(actor.RequireRole(user.Seller, user.Admin), productID.Validate()); err != nil {
		return UpdateProductCommand{}, err
	}
	return UpdateProductCommand{
		actor:     actor,
		productID: productID,
		fields:    fields,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

func (c UpdateProductCommand) Actor() user.Actor { return c.actor }
func (c UpdateProductCommand) ProductID() kernel.UUID { return c.productID }
func (c UpdateProductCommand) Fields() product.Fields { return c.fields }
