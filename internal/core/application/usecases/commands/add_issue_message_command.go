package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrAddIssueMessageCommandIsNotConstructed = errors.New(
	"AddIssueMessageCommand must be created via NewAddIssueMessageCommand constructor",
)

type AddIssueMessageCommand struct {
	actor   user.Actor
	issueID kernel.UUID
	body    string

	guard guard.ConstructorGuard
}

func NewAddIssueMessageCommand(actor user.Actor, issueID kernel.UUID, body string) (AddIssueMessageCommand, error) {
	if err := errors.Join(actor.Role.Validate(), issueID.Validate()); err != nil {
		return AddIssueMessageCommand{}, err
	}
	return AddIssueMessageCommand{actor: actor, issueID: issueID, body: body, guard: guard.NewConstructorGuard()}, nil
}

func (c AddIssueMessageCommand) Validate() error {
	return c.guard.Validate(ErrAddIssueMessageCommandIsNotConstructed)
}

func (c AddIssueMessageCommand) Actor() user.Actor { return c.actor }
func (c AddIssueMessageCommand) IssueID() kernel.UUID { return c.issueID }
func (c AddIssueMessageCommand) Body() string { return c.body }
