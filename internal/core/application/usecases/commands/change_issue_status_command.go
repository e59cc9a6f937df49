package commands

import (
	"errors"

	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
)

var ErrChangeIssueStatusCommandIsNotConstructed = errors.New(
	"ChangeIssueStatusCommand must be created via NewChangeIssueStatusCommand constructor",
)

type ChangeIssueStatusCommand struct {
	actor   user.Actor
	issueID kernel.UUID
	status  issue.Status

	guard guard.ConstructorGuard
}

func NewChangeIssueStatusCommand(actor user.Actor, issueID kernel.UUID, status string) (ChangeIssueStatusCommand, error) {
	parsed, statusErr := issue.ParseStatus(status)
	if err := errors.Join(actor.RequireRole(user.Seller, user.Admin), issueID.Validate(), statusErr); err != nil {
		return ChangeIssueStatusCommand{}, err
	}
	return ChangeIssueStatusCommand{actor: actor, issueID: issueID, status: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeIssueStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeIssueStatusCommandIsNotConstructed)
}

func (c ChangeIssueStatusCommand) Actor() user.Actor { return c.actor }
func (c ChangeIssueStatusCommand) IssueID() kernel.UUID { return c.issueID }
func (c ChangeIssueStatusCommand) Status() issue.Status { return c.status }
