package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

var ErrSetCartItemCommandIsNotConstructed = errors.New(
	"SetCartItemCommand must be created via NewSetCartItemCommand constructor",
)

// SetCartItemCommand sets the quantity of one cart line. Quantity 0 removes the line.
type SetCartItemCommand struct {
	actor     user.Actor
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewSetCartItemCommand(actor user.Actor, productID kernel.UUID, quantity int) (SetCartItemCommand, error) {
	var qtyErr error
	if quantity < 0 || quantity > order.MaxItemQuantity {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 0, order.MaxItemQuantity)
	}
	if err := errors.Join(actor.ID.Validate(), productID.Validate(), qtyErr); err != nil {
		return SetCartItemCommand{}, err
	}
	return SetCartItemCommand{
		actor:     actor,
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetCartItemCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemCommandIsNotConstructed)
}

func (c SetCartItemCommand) Actor() user.Actor { return c.actor }
func (c SetCartItemCommand) ProductID() kernel.UUID { return c.productID }
func (c SetCartItemCommand) Quantity() int { return c.quantity }
