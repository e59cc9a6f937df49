package commands

import (
	"context"
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/pkg/errs"
)

// AddIssueMessageCommandHandler posts to a thread. Staff replies are audited.
type AddIssueMessageCommandHandler struct {
	uowFactory IssueUoWFactory
	audit      AuditTrail
}

func NewAddIssueMessageCommandHandler(uowFactory IssueUoWFactory, audit AuditTrail) AddIssueMessageCommandHandler {
	return AddIssueMessageCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h AddIssueMessageCommandHandler) Handle(ctx context.Context, command AddIssueMessageCommand) (*issue.Issue, error) {
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

	issues := uow.IssueRepository()
	i, err := issues.GetForUpdate(ctx, command.IssueID())
	if err != nil {
		return nil, err
	}
	actor := command.Actor()
	if !i.VisibleTo(actor) {
		return nil, errs.NewObjectNotFoundError("issue", command.IssueID().String())
	}

	before := i.Status()
	if err = i.AddMessage(actor, command.Body(), time.Now()); err != nil {
		return nil, err
	}

	if err = issues.Update(ctx, i); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if actor.Role.IsStaff() {
		h.audit.Record(ctx, actor, "issue.reply", audit.EntityIssue, i.ID().String(),
			map[string]string{"from": before.String(), "to": i.Status().String()})
	}
	return i, nil
}
