package commands

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"
)

// CreateUserCommandHandler hashes the password and stores a new account.
// A taken email is reported as errs.ErrAlreadyExists.
type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewCreateUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) CreateUserCommandHandler {
	return CreateUserCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

func (h CreateUserCommandHandler) Handle(ctx context.Context, command CreateUserCommand) (*user.User, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	_, err := users.GetByEmail(ctx, command.Email())
	switch {
	case err == nil:
		return nil, errs.NewAlreadyExistsError("email", command.Email())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	hash, err := h.hasher.Hash(command.Password())
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(kernel.NewUUID(), command.Email(), command.Name(), command.Phone(),
		hash, command.Role(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = users.Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
