package queries

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	TopProductsLimit = 5

	// DefaultMetricsWindow is used when the caller gives no range.
	DefaultMetricsWindow = 30 * 24 * time.Hour
)

var ErrGetDashboardMetricsQueryIsNotConstructed = errors.New(
	"GetDashboardMetricsQuery must be created via NewGetDashboardMetricsQuery constructor",
)

// GetDashboardMetricsQuery aggregates orders created in [from, to).
type GetDashboardMetricsQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetDashboardMetricsQuery defaults to to = now and from = to - DefaultMetricsWindow.
func NewGetDashboardMetricsQuery(actor user.Actor, from, to *time.Time, now time.Time) (GetDashboardMetricsQuery, error) {
	if err := actor.RequireRole(user.Admin, user.Seller); err != nil {
		return GetDashboardMetricsQuery{}, err
	}
	end := now.UTC()
	if to != nil {
		end = to.UTC()
	}
	start := end.Add(-DefaultMetricsWindow)
	if from != nil {
		start = from.UTC()
	}
	if !start.Before(end) {
		return GetDashboardMetricsQuery{}, errs.NewValueIsInvalidErrorWithCause("date range",
			errors.New("from must be before to"))
	}
	return GetDashboardMetricsQuery{from: start, to: end, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDashboardMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardMetricsQueryIsNotConstructed)
}

type TopProduct struct {
	ProductID kernel.UUID
	SKU       string
	Name      string
	Quantity  int64
	Revenue   kernel.Money
}

type DailyRevenue struct {
	Day     time.Time
	Orders  int64
	Revenue kernel.Money
}

type DashboardMetrics struct {
	From              time.Time
	To                time.Time
	OrderCount        int64
	Revenue           kernel.Money
	AverageOrderValue kernel.Money
	ByStatus          map[order.Status]int64
	TopProducts       []TopProduct
	RevenueByDay      []DailyRevenue
}

type GetDashboardMetricsQueryHandler struct {
	db *gorm.DB
}

func NewGetDashboardMetricsQueryHandler(db *gorm.DB) GetDashboardMetricsQueryHandler {
	return GetDashboardMetricsQueryHandler{db: db}
}

// Handle runs the independent aggregates concurrently. Revenue figures leave out
// cancelled and refunded orders; the order count and status breakdown do not.
func (h GetDashboardMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardMetricsQuery,
) (DashboardMetrics, error) {
	if err := query.Validate(); err != nil {
		return DashboardMetrics{}, err
	}

	m := DashboardMetrics{From: query.from, To: query.to}
	g, ctx := errgroup.WithContext(ctx)

	inRange := func() *gorm.DB {
		return h.db.WithContext(ctx).Table("orders AS o").
			Where("o.created_at >= ? AND o.created_at < ?", query.from, query.to)
	}
	excluded := []int{int(order.Cancelled), int(order.Refunded)}

	g.Go(func() error {
		counts, err := countByStatus(inRange())
		if err != nil {
			return err
		}
		m.ByStatus = counts
		for _, n := range counts {
			m.OrderCount += n
		}
		return nil
	})

	var revenue, revenueOrders int64
	g.Go(func() error {
		return inRange().
			Where("o.status NOT IN ?", excluded).
			Select("COALESCE(SUM(o.total), 0), COUNT(*)").
			Row().Scan(&revenue, &revenueOrders)
	})

	g.Go(func() error {
		var rows []struct {
			ProductID uuid.UUID
			SKU       string
			Name      string
			Quantity  int64
			Revenue   int64
		}
		err := inRange().
			Joins("JOIN order_items i ON i.order_id = o.id").
			Where("o.status NOT IN ?", excluded).
			Select("i.product_id, MAX(i.sku) AS sku, MAX(i.name) AS name, " +
				"SUM(i.quantity) AS quantity, SUM(i.unit_price * i.quantity) AS revenue").
			Group("i.product_id").
			Order("quantity DESC, sku").
			Limit(TopProductsLimit).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		m.TopProducts = make([]TopProduct, 0, len(rows))
		for _, r := range rows {
			id, err := kernel.UUIDFromBytes(r.ProductID[:])
			if err != nil {
				return err
			}
			rev, err := kernel.NewMoney(r.Revenue)
			if err != nil {
				return err
			}
			m.TopProducts = append(m.TopProducts, TopProduct{
				ProductID: id, SKU: r.SKU, Name: r.Name, Quantity: r.Quantity, Revenue: rev,
			})
		}
		return nil
	})

	g.Go(func() error {
		var rows []struct {
			Day     time.Time
			Orders  int64
			Revenue int64
		}
		err := inRange().
			Where("o.status NOT IN ?", excluded).
			Select("date_trunc('day', o.created_at AT TIME ZONE 'UTC') AS day, " +
				"COUNT(*) AS orders, SUM(o.total) AS revenue").
			Group("day").
			Order("day").
			Scan(&rows).Error
		if err != nil {
			return err
		}
		m.RevenueByDay = make([]DailyRevenue, 0, len(rows))
		for _, r := range rows {
			rev, err := kernel.NewMoney(r.Revenue)
			if err != nil {
				return err
			}
			day := r.Day
			m.RevenueByDay = append(m.RevenueByDay, DailyRevenue{
				Day:     time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
				Orders:  r.Orders,
				Revenue: rev,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardMetrics{}, err
	}

	var err error
	if m.Revenue, err = kernel.NewMoney(revenue); err != nil {
		return DashboardMetrics{}, err
	}
	if revenueOrders > 0 {
		m.AverageOrderValue = kernel.MustMoney((revenue + revenueOrders/2) / revenueOrders)
	}
	return m, nil
}
