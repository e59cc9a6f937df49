package commands

import (
	"context"
	"fmt"

	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"
)

// SetCartItemCommandHandler checks the product can be bought in the requested
// quantity and stores the line. Stock is reserved only at checkout.
type SetCartItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	cart       ports.CartStore
}

func NewSetCartItemCommandHandler(uowFactory CatalogUoWFactory, cart ports.CartStore) SetCartItemCommandHandler {
	return SetCartItemCommandHandler{uowFactory: uowFactory, cart: cart}
}

func (h SetCartItemCommandHandler) Handle(ctx context.Context, command SetCartItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	userID := command.Actor().ID
	if command.Quantity() == 0 {
		return h.cart.SetItem(ctx, userID, command.ProductID(), 0)
	}

	p, err := h.uowFactory.Create().ProductRepository().Get(ctx, command.ProductID())
	if err != nil {
		return err
	}
	if !p.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("product", fmt.Errorf("%s is not available", p.SKU()))
	}
	if command.Quantity() > p.Stock() {
		return errs.NewValueIsOutOfRangeErrorWithCause("quantity", command.Quantity(), 1, p.Stock(),
			fmt.Errorf("only %d of %s in stock", p.Stock(), p.SKU()))
	}

	return h.cart.SetItem(ctx, userID, p.ID(), command.Quantity())
}
