package commands_test

import (
	"errors"
	"testing"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUserCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateUserCommand("ada@example.com", "Ada", "017", "s3cret-pass", user.Customer)
	require.NoError(t, err)

	users := new(MockUserRepository)
	hasher := new(MockPasswordHasher)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.UserUoW])

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, errs.NewObjectNotFoundError("user", "ada@example.com")).Once(),
		hasher.On("Hash", "s3cret-pass").Return("$2a$10$hash", nil).Once(),
		users.On("Add", ctx, mock.AnythingOfType("*user.User")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateUserCommandHandler(factory, hasher)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", created.Email())
	assert.Equal(t, "$2a$10$hash", created.PasswordHash())
	assert.Equal(t, user.Customer, created.Role())
	assert.True(t, created.IsActive())
	users.AssertExpectations(t)
	hasher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateUserCommandHandler_Handle_EmailTaken(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateUserCommand("ada@example.com", "Ada", "", "s3cret-pass", user.Customer)
	require.NoError(t, err)

	users := new(MockUserRepository)
	hasher := new(MockPasswordHasher)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.UserUoW])

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("GetByEmail", ctx, "ada@example.com").Return(newUser(t, user.Customer), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateUserCommandHandler(factory, hasher)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAlreadyExists)
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
	users.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateUserCommandHandler_Handle_LookupError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateUserCommand("ada@example.com", "Ada", "", "s3cret-pass", user.Customer)
	require.NoError(t, err)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.UserUoW])

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, errors.New("db down")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateUserCommandHandler(factory, new(MockPasswordHasher))
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "db down")
}

func TestCreateUserCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory[commands.UserUoW])
	handler := commands.NewCreateUserCommandHandler(factory, new(MockPasswordHasher))

	_, err := handler.Handle(t.Context(), commands.CreateUserCommand{})

	require.ErrorIs(t, err, commands.ErrCreateUserCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
