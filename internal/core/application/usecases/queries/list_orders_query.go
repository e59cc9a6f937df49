package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows order listings. To is exclusive.
type OrderFilter struct {
	Status order.Status
	Search string
	From   *time.Time
	To     *time.Time
}

// ListOrdersQuery lists the orders the actor may see: customers their own,
// riders the ones assigned to them, staff all of them.
type ListOrdersQuery struct {
	actor  user.Actor
	filter OrderFilter
	page   Page

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor user.Actor, filter OrderFilter, page Page) (ListOrdersQuery, error) {
	if err := actor.Role.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if filter.Status != order.Unknown {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("date range",
			errors.New("from must be before to"))
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return ListOrdersQuery{
		actor:  actor,
		filter: filter,
		page:   NewPage(page.Number, page.Size),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// OrderSummary is one line of an order listing.
type OrderSummary struct {
	ID            kernel.UUID
	Number        string
	CustomerID    kernel.UUID
	CustomerEmail string
	Status        order.Status
	PaymentMethod order.PaymentMethod
	PaymentStatus order.PaymentStatus
	Total         kernel.Money
	ItemCount     int
	RiderID       *kernel.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderPage struct {
	Items []OrderSummary
	Total int64
	Page  Page
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type orderSummaryRow struct {
	ID            uuid.UUID
	Number        string
	CustomerID    uuid.UUID
	CustomerEmail string
	Status        int
	PaymentMethod string
	PaymentStatus string
	Total         int64
	ItemCount     int
	RiderID       *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	base := scopeOrders(h.db.WithContext(ctx).Table("orders AS o"), query.actor, query.filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return OrderPage{}, err
	}

	var rows []orderSummaryRow
	err := base.Session(&gorm.Session{}).
		Select(`o.id, o.number, o.customer_id, o.customer_email, o.status, o.payment_method,
			o.payment_status, o.total, o.rider_id, o.created_at, o.updated_at,
			(SELECT COALESCE(SUM(i.quantity), 0) FROM order_items i WHERE i.order_id = o.id) AS item_count`).
		Order("o.created_at DESC, o.id").
		Offset(query.page.Offset()).
		Limit(query.page.Limit()).
		Scan(&rows).Error
	if err != nil {
		return OrderPage{}, err
	}

	items := make([]OrderSummary, 0, len(rows))
	for _, r := range rows {
		s, err := r.toSummary()
		if err != nil {
			return OrderPage{}, err
		}
		items = append(items, s)
	}
	return OrderPage{Items: items, Total: total, Page: query.page}, nil
}

// scopeOrders applies role visibility and the filter to a query over "orders AS o".
func scopeOrders(db *gorm.DB, actor user.Actor, f OrderFilter) *gorm.DB {
	switch actor.Role {
	case user.Customer:
		db = db.Where("o.customer_id = ?", actor.ID.Bytes())
	case user.Rider:
		db = db.Where("o.rider_id = ?", actor.ID.Bytes())
	case user.Seller, user.Admin:
	default:
		db = db.Where("FALSE")
	}
	if f.Status != order.Unknown {
		db = db.Where("o.status = ?", int(f.Status))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		db = db.Where("(o.number ILIKE ? OR o.customer_email ILIKE ?)", p, p)
	}
	if f.From != nil {
		db = db.Where("o.created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		db = db.Where("o.created_at < ?", f.To.UTC())
	}
	return db
}

func (r orderSummaryRow) toSummary() (OrderSummary, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderSummary{}, err
	}
	customerID, err := kernel.UUIDFromBytes(r.CustomerID[:])
	if err != nil {
		return OrderSummary{}, err
	}
	riderID, err := kernel.OptionalUUIDFromBytes(r.RiderID)
	if err != nil {
		return OrderSummary{}, err
	}
	total, err := kernel.NewMoney(r.Total)
	if err != nil {
		return OrderSummary{}, err
	}
	return OrderSummary{
		ID:            id,
		Number:        r.Number,
		CustomerID:    customerID,
		CustomerEmail: r.CustomerEmail,
		Status:        order.Status(r.Status),
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
		PaymentStatus: order.PaymentStatus(r.PaymentStatus),
		Total:         total,
		ItemCount:     r.ItemCount,
		RiderID:       riderID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}
