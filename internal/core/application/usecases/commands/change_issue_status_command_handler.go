package commands

import (
	"context"
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/issue"
)

type ChangeIssueStatusCommandHandler struct {
	uowFactory IssueUoWFactory
	audit      AuditTrail
}

func NewChangeIssueStatusCommandHandler(uowFactory IssueUoWFactory, audit AuditTrail) ChangeIssueStatusCommandHandler {
	return ChangeIssueStatusCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h ChangeIssueStatusCommandHandler) Handle(ctx context.Context, command ChangeIssueStatusCommand) (*issue.Issue, error) {
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

	before := i.Status()
	if err = i.ChangeStatus(command.Actor(), command.Status(), time.Now()); err != nil {
		return nil, err
	}

	if err = issues.Update(ctx, i); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.Record(ctx, command.Actor(), "issue.status", audit.EntityIssue, i.ID().String(),
		map[string]string{"from": before.String(), "to": i.Status().String()})
	return i, nil
}
