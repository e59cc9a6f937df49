package queries

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListIssuesQueryIsNotConstructed = errors.New(
		"ListIssuesQuery must be created via NewListIssuesQuery constructor",
	)
	ErrGetIssueQueryIsNotConstructed = errors.New(
		"GetIssueQuery must be created via NewGetIssueQuery constructor",
	)
)

type IssueFilter struct {
	Status  issue.Status
	OrderID *kernel.UUID
}

// ListIssuesQuery lists support issues: customers see their own, staff see all.
type ListIssuesQuery struct {
	actor  user.Actor
	filter IssueFilter
	page   Page

	guard guard.ConstructorGuard
}

func NewListIssuesQuery(actor user.Actor, filter IssueFilter, page Page) (ListIssuesQuery, error) {
	if err := actor.RequireRole(user.Customer, user.Seller, user.Admin); err != nil {
		return ListIssuesQuery{}, err
	}
	if filter.Status != issue.Unknown {
		if err := filter.Status.Validate(); err != nil {
			return ListIssuesQuery{}, err
		}
	}
	return ListIssuesQuery{
		actor:  actor,
		filter: filter,
		page:   NewPage(page.Number, page.Size),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListIssuesQuery) Validate() error {
	return q.guard.Validate(ErrListIssuesQueryIsNotConstructed)
}

type IssueSummary struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	OrderNumber  string
	CustomerID   kernel.UUID
	Subject      string
	Category     issue.Category
	Status       issue.Status
	MessageCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type IssuePage struct {
	Items []IssueSummary
	Total int64
	Page  Page
}

type ListIssuesQueryHandler struct {
	db *gorm.DB
}

func NewListIssuesQueryHandler(db *gorm.DB) ListIssuesQueryHandler {
	return ListIssuesQueryHandler{db: db}
}

// Handle lists the most recently active issues first.
func (h ListIssuesQueryHandler) Handle(ctx context.Context, query ListIssuesQuery) (IssuePage, error) {
	if err := query.Validate(); err != nil {
		return IssuePage{}, err
	}

	base := h.db.WithContext(ctx).Table("issues AS s")
	if query.actor.Role == user.Customer {
		base = base.Where("s.customer_id = ?", query.actor.ID.Bytes())
	}
	if query.filter.Status != issue.Unknown {
		base = base.Where("s.status = ?", int(query.filter.Status))
	}
	if query.filter.OrderID != nil {
		base = base.Where("s.order_id = ?", query.filter.OrderID.Bytes())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return IssuePage{}, err
	}

	var rows []struct {
		ID           uuid.UUID
		OrderID      uuid.UUID
		OrderNumber  string
		CustomerID   uuid.UUID
		Subject      string
		Category     string
		Status       int
		MessageCount int
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}
	err := base.Session(&gorm.Session{}).
		Joins("LEFT JOIN orders o ON o.id = s.order_id").
		Select(`s.id, s.order_id, COALESCE(o.number, '') AS order_number, s.customer_id, s.subject,
			s.category, s.status, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM issue_messages m WHERE m.issue_id = s.id) AS message_count`).
		Order("s.updated_at DESC, s.id").
		Offset(query.page.Offset()).
		Limit(query.page.Limit()).
		Scan(&rows).Error
	if err != nil {
		return IssuePage{}, err
	}

	items := make([]IssueSummary, 0, len(rows))
	for _, r := range rows {
		id, err := kernel.UUIDFromBytes(r.ID[:])
		if err != nil {
			return IssuePage{}, err
		}
		orderID, err := kernel.UUIDFromBytes(r.OrderID[:])
		if err != nil {
			return IssuePage{}, err
		}
		customerID, err := kernel.UUIDFromBytes(r.CustomerID[:])
		if err != nil {
			return IssuePage{}, err
		}
		items = append(items, IssueSummary{
			ID:           id,
			OrderID:      orderID,
			OrderNumber:  r.OrderNumber,
			CustomerID:   customerID,
			Subject:      r.Subject,
			Category:     issue.Category(r.Category),
			Status:       issue.Status(r.Status),
			MessageCount: r.MessageCount,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return IssuePage{Items: items, Total: total, Page: query.page}, nil
}

type GetIssueQuery struct {
	actor   user.Actor
	issueID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetIssueQuery(actor user.Actor, issueID kernel.UUID) (GetIssueQuery, error) {
	if err := issueID.Validate(); err != nil {
		return GetIssueQuery{}, errs.NewValueIsRequiredError("issueID")
	}
	return GetIssueQuery{actor: actor, issueID: issueID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetIssueQuery) Validate() error {
	return q.guard.Validate(ErrGetIssueQueryIsNotConstructed)
}

type GetIssueQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetIssueQueryHandler(uowFactory ports.UnitOfWorkFactory) GetIssueQueryHandler {
	return GetIssueQueryHandler{uowFactory: uowFactory}
}

func (h GetIssueQueryHandler) Handle(ctx context.Context, query GetIssueQuery) (*issue.Issue, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	i, err := h.uowFactory.Create().IssueRepository().Get(ctx, query.issueID)
	if err != nil {
		return nil, err
	}
	if !i.VisibleTo(query.actor) {
		return nil, errs.NewObjectNotFoundError("issue", query.issueID)
	}
	return i, nil
}
