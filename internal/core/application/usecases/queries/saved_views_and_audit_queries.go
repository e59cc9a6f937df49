package queries

import (
	"context"
	"errors"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/savedview"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/guard"
)

var (
	ErrListSavedViewsQueryIsNotConstructed = errors.New(
		"ListSavedViewsQuery must be created via NewListSavedViewsQuery constructor",
	)
	ErrListAuditLogsQueryIsNotConstructed = errors.New(
		"ListAuditLogsQuery must be created via NewListAuditLogsQuery constructor",
	)
)

type ListSavedViewsQuery struct {
	actor user.Actor
	scope savedview.Scope

	guard guard.ConstructorGuard
}

// NewListSavedViewsQuery lists the caller's views. An empty scope lists all of them.
func NewListSavedViewsQuery(actor user.Actor, scope string) (ListSavedViewsQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return ListSavedViewsQuery{}, err
	}
	var parsed savedview.Scope
	if scope != "" {
		var err error
		if parsed, err = savedview.ParseScope(scope); err != nil {
			return ListSavedViewsQuery{}, err
		}
	}
	return ListSavedViewsQuery{actor: actor, scope: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q ListSavedViewsQuery) Validate() error {
	return q.guard.Validate(ErrListSavedViewsQueryIsNotConstructed)
}

type ListSavedViewsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListSavedViewsQueryHandler(uowFactory ports.UnitOfWorkFactory) ListSavedViewsQueryHandler {
	return ListSavedViewsQueryHandler{uowFactory: uowFactory}
}

func (h ListSavedViewsQueryHandler) Handle(ctx context.Context, query ListSavedViewsQuery) ([]*savedview.SavedView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().SavedViewRepository().ListByOwner(ctx, query.actor.ID, query.scope)
}

type ListAuditLogsQuery struct {
	filter audit.Filter

	guard guard.ConstructorGuard
}

func NewListAuditLogsQuery(actor user.Actor, filter audit.Filter) (ListAuditLogsQuery, error) {
	if err := actor.RequireRole(user.Admin); err != nil {
		return ListAuditLogsQuery{}, err
	}
	page := NewPage(filter.Page, filter.PageSize)
	filter.Page, filter.PageSize = page.Number, page.Size
	return ListAuditLogsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAuditLogsQuery) Validate() error {
	return q.guard.Validate(ErrListAuditLogsQueryIsNotConstructed)
}

type AuditLogPage struct {
	Items []audit.Entry
	Total int64
	Page  Page
}

type ListAuditLogsQueryHandler struct {
	log ports.AuditLog
}

func NewListAuditLogsQueryHandler(log ports.AuditLog) ListAuditLogsQueryHandler {
	return ListAuditLogsQueryHandler{log: log}
}

func (h ListAuditLogsQueryHandler) Handle(ctx context.Context, query ListAuditLogsQuery) (AuditLogPage, error) {
	if err := query.Validate(); err != nil {
		return AuditLogPage{}, err
	}
	entries, total, err := h.log.List(ctx, query.filter)
	if err != nil {
		return AuditLogPage{}, err
	}
	return AuditLogPage{
		Items: entries,
		Total: total,
		Page:  Page{Number: query.filter.Page, Size: query.filter.PageSize},
	}, nil
}
