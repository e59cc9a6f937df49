package queries

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/guard"
	"roboshop/internal/pkg/spreadsheet"

	"gorm.io/gorm"
)

var ErrExportOrdersQueryIsNotConstructed = errors.New(
	"ExportOrdersQuery must be created via NewExportOrdersQuery constructor",
)

// OrderSheetHeader is the column layout of order exports.
var OrderSheetHeader = []string{
	"number", "created_at", "customer_email", "status", "payment_method", "payment_status",
	"items", "subtotal", "discount", "shipping", "tax", "total", "coupon", "city", "country",
}

type ExportOrdersQuery struct {
	actor  user.Actor
	filter OrderFilter
	format spreadsheet.Format

	guard guard.ConstructorGuard
}

func NewExportOrdersQuery(actor user.Actor, filter OrderFilter, format string) (ExportOrdersQuery, error) {
	if err := actor.RequireRole(user.Admin); err != nil {
		return ExportOrdersQuery{}, err
	}
	f, err := spreadsheet.ParseFormat(format)
	if err != nil {
		return ExportOrdersQuery{}, err
	}
	// Reuse the list constructor for filter validation.
	if _, err = NewListOrdersQuery(actor, filter, Page{}); err != nil {
		return ExportOrdersQuery{}, err
	}
	return ExportOrdersQuery{actor: actor, filter: filter, format: f, guard: guard.NewConstructorGuard()}, nil
}

func (q ExportOrdersQuery) Validate() error {
	return q.guard.Validate(ErrExportOrdersQueryIsNotConstructed)
}

type ExportOrdersQueryHandler struct {
	db      *gorm.DB
	maxRows int
}

func NewExportOrdersQueryHandler(db *gorm.DB) ExportOrdersQueryHandler {
	return ExportOrdersQueryHandler{db: db, maxRows: MaxExportRows}
}

// WithMaxRows replaces MaxExportRows.
func (h ExportOrdersQueryHandler) WithMaxRows(n int) ExportOrdersQueryHandler {
	h.maxRows = n
	return h
}

type orderExportRow struct {
	Number        string
	CreatedAt     time.Time
	CustomerEmail string
	Status        int
	PaymentMethod string
	PaymentStatus string
	ItemCount     int
	Subtotal      int64
	Discount      int64
	ShippingFee   int64
	Tax           int64
	Total         int64
	CouponCode    string
	ShipCity      string
	ShipCountry   string
}

func (h ExportOrdersQueryHandler) Handle(ctx context.Context, query ExportOrdersQuery) (ExportFile, error) {
	if err := query.Validate(); err != nil {
		return ExportFile{}, err
	}

	var rows []orderExportRow
	err := scopeOrders(h.db.WithContext(ctx).Table("orders AS o"), query.actor, query.filter).
		Select(`o.number, o.created_at, o.customer_email, o.status, o.payment_method, o.payment_status,
			(SELECT COALESCE(SUM(i.quantity), 0) FROM order_items i WHERE i.order_id = o.id) AS item_count,
			o.subtotal, o.discount, o.shipping_fee, o.tax, o.total, o.coupon_code, o.ship_city, o.ship_country`).
		Order("o.created_at, o.id").
		Limit(h.maxRows + 1).
		Scan(&rows).Error
	if err != nil {
		return ExportFile{}, err
	}
	if len(rows) > h.maxRows {
		return ExportFile{}, tooManyRows(h.maxRows)
	}

	sheet := make([][]string, 0, len(rows))
	for _, r := range rows {
		sheet = append(sheet, []string{
			r.Number,
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.CustomerEmail,
			statusName(r.Status),
			r.PaymentMethod,
			r.PaymentStatus,
			strconv.Itoa(r.ItemCount),
			formatMinor(r.Subtotal),
			formatMinor(r.Discount),
			formatMinor(r.ShippingFee),
			formatMinor(r.Tax),
			formatMinor(r.Total),
			r.CouponCode,
			r.ShipCity,
			r.ShipCountry,
		})
	}

	data, err := spreadsheet.Encode(query.format, OrderSheetHeader, sheet)
	if err != nil {
		return ExportFile{}, err
	}
	return ExportFile{
		Name:        fmt.Sprintf("orders-%s.%s", time.Now().UTC().Format("20060102"), query.format.Extension()),
		ContentType: query.format.ContentType(),
		Data:        data,
		Rows:        len(sheet),
	}, nil
}
