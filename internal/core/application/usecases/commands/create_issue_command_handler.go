package commands

import (
	"context"
	"time"

	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"
)

type CreateIssueCommandHandler struct {
	uowFactory IssueUoWFactory
}

func NewCreateIssueCommandHandler(uowFactory IssueUoWFactory) CreateIssueCommandHandler {
	return CreateIssueCommandHandler{uowFactory: uowFactory}
}

// Handle files the issue. Orders of other customers are reported as not found.
func (h CreateIssueCommandHandler) Handle(ctx context.Context, command CreateIssueCommand) (*issue.Issue, error) {
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

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(command.Actor().ID) {
		return nil, errs.NewObjectNotFoundError("order", command.OrderID().String())
	}

	created, err := issue.NewIssue(kernel.NewUUID(), o.ID(), command.Actor(), command.Subject(),
		command.Category(), command.Body(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.IssueRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
