package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListUsersQueryIsNotConstructed = errors.New(
		"ListUsersQuery must be created via NewListUsersQuery constructor",
	)
	ErrGetMeQueryIsNotConstructed = errors.New(
		"GetMeQuery must be created via NewGetMeQuery constructor",
	)
)

type UserFilter struct {
	Role   user.Role
	Search string
	Active *bool
}

type ListUsersQuery struct {
	filter UserFilter
	page   Page

	guard guard.ConstructorGuard
}

func NewListUsersQuery(actor user.Actor, filter UserFilter, page Page) (ListUsersQuery, error) {
	if err := actor.RequireRole(user.Admin); err != nil {
		return ListUsersQuery{}, err
	}
	if filter.Role != "" {
		if err := filter.Role.Validate(); err != nil {
			return ListUsersQuery{}, err
		}
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return ListUsersQuery{filter: filter, page: NewPage(page.Number, page.Size), guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

// UserSummary is an account without its password hash or addresses.
type UserSummary struct {
	ID        kernel.UUID
	Email     string
	Name      string
	Phone     string
	Role      user.Role
	Active    bool
	CreatedAt time.Time
}

type UserPage struct {
	Items []UserSummary
	Total int64
	Page  Page
}

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) (UserPage, error) {
	if err := query.Validate(); err != nil {
		return UserPage{}, err
	}

	base := h.db.WithContext(ctx).Table("users")
	if query.filter.Role != "" {
		base = base.Where("role = ?", string(query.filter.Role))
	}
	if query.filter.Active != nil {
		base = base.Where("active = ?", *query.filter.Active)
	}
	if query.filter.Search != "" {
		p := likePattern(query.filter.Search)
		base = base.Where("(email ILIKE ? OR name ILIKE ?)", p, p)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return UserPage{}, err
	}

	var rows []struct {
		ID        uuid.UUID
		Email     string
		Name      string
		Phone     string
		Role      string
		Active    bool
		CreatedAt time.Time
	}
	err := base.Session(&gorm.Session{}).
		Select("id, email, name, phone, role, active, created_at").
		Order("created_at DESC, id").
		Offset(query.page.Offset()).
		Limit(query.page.Limit()).
		Scan(&rows).Error
	if err != nil {
		return UserPage{}, err
	}

	items := make([]UserSummary, 0, len(rows))
	for _, r := range rows {
		id, err := kernel.UUIDFromBytes(r.ID[:])
		if err != nil {
			return UserPage{}, err
		}
		items = append(items, UserSummary{
			ID:        id,
			Email:     r.Email,
			Name:      r.Name,
			Phone:     r.Phone,
			Role:      user.Role(r.Role),
			Active:    r.Active,
			CreatedAt: r.CreatedAt,
		})
	}
	return UserPage{Items: items, Total: total, Page: query.page}, nil
}

// GetMeQuery loads the caller's own account with addresses. It backs both the
// me endpoint and the address list.
type GetMeQuery struct {
	actor user.Actor

	guard guard.ConstructorGuard
}

func NewGetMeQuery(actor user.Actor) (GetMeQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return GetMeQuery{}, err
	}
	return GetMeQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMeQuery) Validate() error {
	return q.guard.Validate(ErrGetMeQueryIsNotConstructed)
}

type GetMeQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetMeQueryHandler(uowFactory ports.UnitOfWorkFactory) GetMeQueryHandler {
	return GetMeQueryHandler{uowFactory: uowFactory}
}

func (h GetMeQueryHandler) Handle(ctx context.Context, query GetMeQuery) (*user.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().UserRepository().Get(ctx, query.actor.ID)
}
