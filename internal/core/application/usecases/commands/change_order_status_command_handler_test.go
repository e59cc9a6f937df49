package commands_test

import (
	"testing"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statusFixture struct {
	uow       *MockUoW
	factory   *MockUoWFactory[commands.OrderUoW]
	orders    *MockOrderRepository
	products  *MockProductRepository
	users     *MockUserRepository
	publisher *MockPublisher
	metrics   *MockMetrics
	auditLog  *MockAuditLog
}

func newStatusFixture() *statusFixture {
	return &statusFixture{
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory[commands.OrderUoW]),
		orders:    new(MockOrderRepository),
		products:  new(MockProductRepository),
		users:     new(MockUserRepository),
		publisher: new(MockPublisher),
		metrics:   new(MockMetrics),
		auditLog:  new(MockAuditLog),
	}
}

func (f *statusFixture) handler() commands.ChangeOrderStatusCommandHandler {
	logger := discardLogger()
	notifier := commands.NewOrderChangeNotifier(f.publisher, f.metrics, commands.NewAuditTrail(f.auditLog, logger), logger)
	return commands.NewChangeOrderStatusCommandHandler(f.factory, notifier)
}

func TestChangeOrderStatusCommandHandler_Handle_SellerPacks(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture()
	seller := actor(user.Seller)
	o := newOrder(t, actor(user.Customer))
	cmd, err := commands.NewChangeOrderStatusCommand(seller, o.ID(), "pack", nil, " boxed ")
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.orders.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(c []order.StatusChanged) bool {
			return len(c) == 1 && c[0].From == order.Processing && c[0].To == order.Packed
		})).Return(nil).Once(),
		f.metrics.On("TransitionApplied", mock.Anything).Return().Once(),
		f.auditLog.On("Write", ctx, mock.MatchedBy(func(e audit.Entry) bool {
			return e.Action == "order.pack" && e.Entity == audit.EntityOrder &&
				e.Details["from"] == "processing" && e.Details["to"] == "packed"
		})).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	updated, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Packed, updated.Status())
	history := updated.History()
	assert.Equal(t, "boxed", history[len(history)-1].Note)
	f.uow.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
	f.auditLog.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CustomerCancelRestocks(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture()
	customer := actor(user.Customer)
	p := newProduct(t, kernel.NewUUID(), "SRV-1", 10000, 3)
	item, err := order.NewItem(p.ID(), p.SKU(), p.Name(), p.Price(), 2)
	require.NoError(t, err)
	o := newOrder(t, customer, item)
	cmd, err := commands.NewChangeOrderStatusCommand(customer, o.ID(), "cancel", nil, "")
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("ProductRepository").Return(f.products).Once(),
		f.products.On("GetManyForUpdate", ctx, []kernel.UUID{p.ID()}).
			Return(map[kernel.UUID]*product.Product{p.ID(): p}, nil).Once(),
		f.products.On("Update", ctx, p).Return(nil).Once(),
		f.orders.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once(),
		f.metrics.On("TransitionApplied", mock.Anything).Return().Once(),
		f.auditLog.On("Write", ctx, mock.Anything).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	updated, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	assert.Equal(t, 5, p.Stock())
}

func TestChangeOrderStatusCommandHandler_Handle_OtherCustomersOrderIsNotFound(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture()
	o := newOrder(t, actor(user.Customer))
	cmd, err := commands.NewChangeOrderStatusCommand(actor(user.Customer), o.ID(), "cancel", nil, "")
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, order.Processing, o.Status())
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture()
	o := newOrder(t, actor(user.Customer))
	cmd, err := commands.NewChangeOrderStatusCommand(actor(user.Admin), o.ID(), "deliver", nil, "")
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "processing")
	assert.Contains(t, err.Error(), "deliver")
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_AssignChecksRider(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture()
	o := newOrder(t, actor(user.Customer))
	advance(t, o, kernel.NewUUID(), order.Pack)
	notARider := newUser(t, user.Customer)
	riderID := notARider.ID()
	cmd, err := commands.NewChangeOrderStatusCommand(actor(user.Seller), o.ID(), "assign", &riderID, "")
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("UserRepository").Return(f.users).Once(),
		f.users.On("Get", ctx, riderID).Return(notARider, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "not an active rider")
	assert.Equal(t, order.Packed, o.Status())
}

func TestChangeOrderStatusCommandHandler_Handle_AssignsRider(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture()
	o := newOrder(t, actor(user.Customer))
	advance(t, o, kernel.NewUUID(), order.Pack)
	rider := newUser(t, user.Rider)
	riderID := rider.ID()
	cmd, err := commands.NewChangeOrderStatusCommand(actor(user.Seller), o.ID(), "assign", &riderID, "")
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("UserRepository").Return(f.users).Once(),
		f.users.On("Get", ctx, riderID).Return(rider, nil).Once(),
		f.orders.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once(),
		f.metrics.On("TransitionApplied", mock.Anything).Return().Once(),
		f.auditLog.On("Write", ctx, mock.MatchedBy(func(e audit.Entry) bool {
			return e.Details["rider_id"] == riderID.String()
		})).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	updated, err := f.handler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Assigned, updated.Status())
	assert.True(t, updated.IsAssignedTo(riderID))
}

func TestChangeOrderStatusCommandHandler_Handle_ConcurrentChangeConflicts(t *testing.T) {
	ctx := t.Context()
	f := newStatusFixture()
	o := newOrder(t, actor(user.Customer))
	cmd, err := commands.NewChangeOrderStatusCommand(actor(user.Admin), o.ID(), "pack", nil, "")
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orders).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.orders.On("Update", ctx, o).Return(errs.NewVersionIsInvalidError("order")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.auditLog.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestNewChangeOrderStatusCommand_RejectsPlaceAndUnknownActions(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(actor(user.Admin), kernel.NewUUID(), "place", nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewChangeOrderStatusCommand(actor(user.Admin), kernel.NewUUID(), "teleport", nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
