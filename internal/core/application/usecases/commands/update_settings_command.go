package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/settings"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrUpdateSettingsCommandIsNotConstructed = errors.New(
	"UpdateSettingsCommand must be created via NewUpdateSettingsCommand constructor",
)

// UpdateSettingsCommand replaces the platform settings document.
type UpdateSettingsCommand struct {
	actor    user.Actor
	settings settings.Settings

	guard guard.ConstructorGuard
}

func NewUpdateSettingsCommand(actor user.Actor, s settings.Settings) (UpdateSettingsCommand, error) {
	if err := actor.RequireRole(user.Admin); err != nil {
		return UpdateSettingsCommand{}, err
	}
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return UpdateSettingsCommand{}, err
	}
	return UpdateSettingsCommand{actor: actor, settings: s, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSettingsCommandIsNotConstructed)
}

func (c UpdateSettingsCommand) Actor() user.Actor { return c.actor }
func (c UpdateSettingsCommand) Settings() settings.Settings { return c.settings }
