package commands

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/savedview"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var (
	ErrCreateSavedViewCommandIsNotConstructed = errors.New(
		"CreateSavedViewCommand must be created via NewCreateSavedViewCommand constructor",
	)
	ErrDeleteSavedViewCommandIsNotConstructed = errors.New(
		"DeleteSavedViewCommand must be created via NewDeleteSavedViewCommand constructor",
	)
)

// CreateSavedViewCommand stores a named dashboard filter for its owner.
type CreateSavedViewCommand struct {
	actor   user.Actor
	scope   savedview.Scope
	name    string
	filters map[string]string

	guard guard.ConstructorGuard
}

func NewCreateSavedViewCommand(
	actor user.Actor,
	scope, name string,
	filters map[string]string,
) (CreateSavedViewCommand, error) {
	parsed, scopeErr := savedview.ParseScope(scope)
	if err := errors.Join(actor.ID.Validate(), scopeErr); err != nil {
		return CreateSavedViewCommand{}, err
	}
	return CreateSavedViewCommand{
		actor:   actor,
		scope:   parsed,
		name:    name,
		filters: filters,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateSavedViewCommand) Validate() error {
	return c.guard.Validate(ErrCreateSavedViewCommandIsNotConstructed)
}

type CreateSavedViewCommandHandler struct {
	uowFactory SavedViewUoWFactory
}

func NewCreateSavedViewCommandHandler(uowFactory SavedViewUoWFactory) CreateSavedViewCommandHandler {
	return CreateSavedViewCommandHandler{uowFactory: uowFactory}
}

func (h CreateSavedViewCommandHandler) Handle(ctx context.Context, command CreateSavedViewCommand) (*savedview.SavedView, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	view, err := savedview.NewSavedView(kernel.NewUUID(), command.actor.ID, command.scope, command.name,
		command.filters, time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SavedViewRepository().Add(ctx, view); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return view, nil
}

type DeleteSavedViewCommand struct {
	actor  user.Actor
	viewID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteSavedViewCommand(actor user.Actor, viewID kernel.UUID) (DeleteSavedViewCommand, error) {
	if err := errors.Join(actor.ID.Validate(), viewID.Validate()); err != nil {
		return DeleteSavedViewCommand{}, err
	}
	return DeleteSavedViewCommand{actor: actor, viewID: viewID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteSavedViewCommand) Validate() error {
	return c.guard.Validate(ErrDeleteSavedViewCommandIsNotConstructed)
}

type DeleteSavedViewCommandHandler struct {
	uowFactory SavedViewUoWFactory
}

func NewDeleteSavedViewCommandHandler(uowFactory SavedViewUoWFactory) DeleteSavedViewCommandHandler {
	return DeleteSavedViewCommandHandler{uowFactory: uowFactory}
}

// Handle removes one of the caller's views; views of other users are not found.
func (h DeleteSavedViewCommandHandler) Handle(ctx context.Context, command DeleteSavedViewCommand) error {
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

	if err := uow.SavedViewRepository().Delete(ctx, command.actor.ID, command.viewID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
