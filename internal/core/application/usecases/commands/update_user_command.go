package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

var ErrUpdateUserCommandIsNotConstructed = errors.New(
	"UpdateUserCommand must be created via NewUpdateUserCommand constructor",
)

// UpdateUserCommand lets an admin change another account's role or active flag.
// Nil fields are left unchanged.
type UpdateUserCommand struct {
	actor  user.Actor
	userID kernel.UUID
	role   *user.Role
	active *bool

	guard guard.ConstructorGuard
}

func NewUpdateUserCommand(actor user.Actor, userID kernel.UUID, role *user.Role, active *bool) (UpdateUserCommand, error) {
	var roleErr, emptyErr error
	if role != nil {
		roleErr = role.Validate()
	}
	if role == nil && active == nil {
		emptyErr = errs.NewValueIsRequiredError("role or active")
	}
	if err := errors.Join(actor.RequireRole(user.Admin), userID.Validate(), roleErr, emptyErr); err != nil {
		return UpdateUserCommand{}, err
	}
	if actor.ID.IsEqual(userID) {
		return UpdateUserCommand{}, errs.NewValueIsInvalidErrorWithCause("userId",
			errors.New("admins cannot change their own role or status"))
	}
	return UpdateUserCommand{
		actor:  actor,
		userID: userID,
		role:   role,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateUserCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserCommandIsNotConstructed)
}

func (c UpdateUserCommand) Actor() user.Actor { return c.actor }
func (c UpdateUserCommand) UserID() kernel.UUID { return c.userID }
func (c UpdateUserCommand) Role() *user.Role { return c.role }
func (c UpdateUserCommand) Active() *bool { return c.active }
