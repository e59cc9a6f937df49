package commands

import (
	"errors"

	"roboshop/internal/pkg/guard"
)

var ErrAutoAssignRiderCommandIsNotConstructed = errors.New(
	"AutoAssignRiderCommand must be created via NewAutoAssignRiderCommand constructor",
)

// AutoAssignRiderCommand hands the oldest packed order to the least busy rider.
// It runs as the system actor.
type AutoAssignRiderCommand struct {
	guard guard.ConstructorGuard
}

func NewAutoAssignRiderCommand() AutoAssignRiderCommand {
	return AutoAssignRiderCommand{guard: guard.NewConstructorGuard()}
}

func (c AutoAssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignRiderCommandIsNotConstructed)
}
