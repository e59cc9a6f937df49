package commands

import (
	"context"
	"strconv"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/user"
)

type UpdateUserCommandHandler struct {
	uowFactory UserUoWFactory
	audit      AuditTrail
}

func NewUpdateUserCommandHandler(uowFactory UserUoWFactory, audit AuditTrail) UpdateUserCommandHandler {
	return UpdateUserCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h UpdateUserCommandHandler) Handle(ctx context.Context, command UpdateUserCommand) (*user.User, error) {
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

	users := uow.UserRepository()
	u, err := users.Get(ctx, command.UserID())
	if err != nil {
		return nil, err
	}

	details := make(map[string]string, 2)
	if role := command.Role(); role != nil {
		if err = u.ChangeRole(*role); err != nil {
			return nil, err
		}
		details["role"] = role.String()
	}
	if active := command.Active(); active != nil {
		u.SetActive(*active)
		details["active"] = strconv.FormatBool(*active)
	}

	if err = users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.Record(ctx, command.Actor(), "user.update", audit.EntityUser, u.ID().String(), details)
	return u, nil
}
