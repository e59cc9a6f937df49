package commands

import (
	"context"
	"errors"

	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

type ClearCartCommand struct {
	actor user.Actor

	guard guard.ConstructorGuard
}

func NewClearCartCommand(actor user.Actor) (ClearCartCommand, error) {
	if err := actor.ID.Validate(); err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) Actor() user.Actor { return c.actor }

type ClearCartCommandHandler struct {
	cart ports.CartStore
}

func NewClearCartCommandHandler(cart ports.CartStore) ClearCartCommandHandler {
	return ClearCartCommandHandler{cart: cart}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, command ClearCartCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	return h.cart.Clear(ctx, command.Actor().ID)
}
