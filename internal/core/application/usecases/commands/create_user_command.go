package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand registers an account. Storefront registration always uses
// the customer role; the create-admin CLI uses the admin role.
//
// Example:
//
//	cmd, err := NewCreateUserCommand("ada@example.com", "Ada", "+8801700000000", "s3cret-pass", user.Customer)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateUserCommand struct {
	email    string
	name     string
	phone    string
	password string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(email, name, phone, password string, role user.Role) (CreateUserCommand, error) {
	cmd := CreateUserCommand{
		email: user.NormalizeEmail(email),
		name:  strings.TrimSpace(name),
		phone: strings.TrimSpace(phone),
		role:  role,
		guard: guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		requireText("email", cmd.email),
		requireText("name", cmd.name),
		cmd.setPassword(password),
		role.Validate(),
	); err != nil {
		return CreateUserCommand{}, err
	}
	return cmd, nil
}

func (c *CreateUserCommand) setPassword(password string) error {
	if n := utf8.RuneCountInString(password); n < MinPasswordLength || len(password) > MaxPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", n, MinPasswordLength, MaxPasswordLength)
	}
	c.password = password
	return nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) Email() string { return c.email }
func (c CreateUserCommand) Name() string { return c.name }
func (c CreateUserCommand) Phone() string { return c.phone }
func (c CreateUserCommand) Password() string { return c.password }
func (c CreateUserCommand) Role() user.Role { return c.role }

func requireText(param, v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
