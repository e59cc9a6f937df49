package commands

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"
)

// LoginResult carries the authenticated user and the issued session token.
type LoginResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

// LoginCommandHandler verifies credentials and issues a session token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
}

func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
) LoginCommandHandler {
	return LoginCommandHandler{uowFactory: uowFactory, hasher: hasher, tokens: tokens}
}

func (h LoginCommandHandler) Handle(ctx context.Context, command LoginCommand) (LoginResult, error) {
	if err := command.Validate(); err != nil {
		return LoginResult{}, err
	}

	u, err := h.uowFactory.Create().UserRepository().GetByEmail(ctx, command.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, errs.NewUnauthorizedError("invalid email or password")
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err = h.hasher.Compare(u.PasswordHash(), command.Password()); err != nil {
		return LoginResult{}, errs.NewUnauthorizedError("invalid email or password")
	}

	if !u.IsActive() {
		return LoginResult{}, errs.NewForbiddenError("account is disabled")
	}

	token, expiresAt, err := h.tokens.Issue(u.Actor())
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
