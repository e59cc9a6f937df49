package queries_test

import (
	"context"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/settings"
	"roboshop/internal/core/domain/services"
	"roboshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOldestPacked(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetRiderLoads(ctx context.Context) ([]services.RiderLoad, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.RiderLoad), args.Error(1)
}

type MockIssueRepository struct{ mock.Mock }

func (m *MockIssueRepository) Add(ctx context.Context, i *issue.Issue) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockIssueRepository) Update(ctx context.Context, i *issue.Issue) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockIssueRepository) Get(ctx context.Context, id kernel.UUID) (*issue.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issue.Issue), args.Error(1)
}

func (m *MockIssueRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*issue.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issue.Issue), args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepository) Get(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	return m.Called(ctx, s).Error(0)
}

type MockSettingsCache struct{ mock.Mock }

func (m *MockSettingsCache) Get(ctx context.Context) (settings.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsCache) Set(ctx context.Context, s settings.Settings) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSettingsCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Write(ctx context.Context, entry audit.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditLog) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}

// stubUoW hands out the repositories a query reads through. Calling any other
// unit of work method panics on the nil embedded interface.
type stubUoW struct {
	ports.UnitOfWork
	orders   ports.OrderRepository
	issues   ports.IssueRepository
	coupons  ports.CouponRepository
	settings ports.SettingsRepository
}

func (s stubUoW) OrderRepository() ports.OrderRepository { return s.orders }
func (s stubUoW) IssueRepository() ports.IssueRepository { return s.issues }
func (s stubUoW) CouponRepository() ports.CouponRepository { return s.coupons }
func (s stubUoW) SettingsRepository() ports.SettingsRepository { return s.settings }

type stubUoWFactory struct{ uow stubUoW }

func (f stubUoWFactory) Create() ports.UnitOfWork { return f.uow }
