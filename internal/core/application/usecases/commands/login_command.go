package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New("LoginCommand must be created via NewLoginCommand constructor")

// LoginCommand exchanges credentials for a session token.
type LoginCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCommand(email, password string) (LoginCommand, error) {
	cmd := LoginCommand{
		email:    user.NormalizeEmail(email),
		password: password,
		guard:    guard.NewConstructorGuard(),
	}
	if err := errors.Join(requireText("email", cmd.email), requireText("password", password)); err != nil {
		return LoginCommand{}, err
	}
	return cmd, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() string { return c.email }
func (c LoginCommand) Password() string { return c.password }
