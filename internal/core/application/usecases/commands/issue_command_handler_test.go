package commands_test

import (
	"testing"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIssue(t *testing.T, customer user.Actor) *issue.Issue {
	t.Helper()
	i, err := issue.NewIssue(kernel.NewUUID(), kernel.NewUUID(), customer, "Servo arrived broken",
		issue.Category("damaged"), "The horn is snapped.", now)
	require.NoError(t, err)
	return i
}

func TestCreateIssueCommandHandler_Handle_OwnOrder(t *testing.T) {
	ctx := t.Context()
	customer := actor(user.Customer)
	o := newOrder(t, customer)
	cmd, err := commands.NewCreateIssueCommand(customer, o.ID(), "Wrong servo", "wrong_item", "I got an SG90.")
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	issues := new(MockIssueRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.IssueUoW])

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("IssueRepository").Return(issues).Once(),
		issues.On("Add", ctx, mock.AnythingOfType("*issue.Issue")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	created, err := commands.NewCreateIssueCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, issue.Open, created.Status())
	assert.True(t, created.OrderID().IsEqual(o.ID()))
	require.Len(t, created.Messages(), 1)
	uow.AssertExpectations(t)
}

func TestCreateIssueCommandHandler_Handle_ForeignOrder(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, actor(user.Customer))
	cmd, err := commands.NewCreateIssueCommand(actor(user.Customer), o.ID(), "Mine?", "other", "Hello")
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.IssueUoW])

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = commands.NewCreateIssueCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewCreateIssueCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateIssueCommand(actor(user.Seller), kernel.NewUUID(), "s", "other", "b")
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = commands.NewCreateIssueCommand(actor(user.Customer), kernel.NewUUID(), "s", "late", "b")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAddIssueMessageCommandHandler_Handle_StaffReplyMovesToInProgress(t *testing.T) {
	ctx := t.Context()
	i := newIssue(t, actor(user.Customer))
	seller := actor(user.Seller)
	cmd, err := commands.NewAddIssueMessageCommand(seller, i.ID(), "Replacement on its way.")
	require.NoError(t, err)

	issues := new(MockIssueRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.IssueUoW])
	auditLog := new(MockAuditLog)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("IssueRepository").Return(issues).Once(),
		issues.On("GetForUpdate", ctx, i.ID()).Return(i, nil).Once(),
		issues.On("Update", ctx, i).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		auditLog.On("Write", ctx, mock.MatchedBy(func(e audit.Entry) bool {
			return e.Action == "issue.reply" && e.Details["to"] == "in_progress"
		})).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAddIssueMessageCommandHandler(factory, commands.NewAuditTrail(auditLog, discardLogger()))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, issue.InProgress, updated.Status())
	assert.Len(t, updated.Messages(), 2)
	auditLog.AssertExpectations(t)
}

func TestAddIssueMessageCommandHandler_Handle_OtherCustomerSeesNotFound(t *testing.T) {
	ctx := t.Context()
	i := newIssue(t, actor(user.Customer))
	cmd, err := commands.NewAddIssueMessageCommand(actor(user.Customer), i.ID(), "me too")
	require.NoError(t, err)

	issues := new(MockIssueRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.IssueUoW])

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("IssueRepository").Return(issues).Once(),
		issues.On("GetForUpdate", ctx, i.ID()).Return(i, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = commands.NewAddIssueMessageCommandHandler(factory, commands.AuditTrail{}).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	issues.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangeIssueStatusCommandHandler_Handle_SameStatusRejected(t *testing.T) {
	ctx := t.Context()
	i := newIssue(t, actor(user.Customer))
	cmd, err := commands.NewChangeIssueStatusCommand(actor(user.Admin), i.ID(), "open")
	require.NoError(t, err)

	issues := new(MockIssueRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.IssueUoW])

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("IssueRepository").Return(issues).Once(),
		issues.On("GetForUpdate", ctx, i.ID()).Return(i, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = commands.NewChangeIssueStatusCommandHandler(factory, commands.AuditTrail{}).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestChangeIssueStatusCommandHandler_Handle_Resolves(t *testing.T) {
	ctx := t.Context()
	i := newIssue(t, actor(user.Customer))
	cmd, err := commands.NewChangeIssueStatusCommand(actor(user.Seller), i.ID(), "resolved")
	require.NoError(t, err)

	issues := new(MockIssueRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.IssueUoW])

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("IssueRepository").Return(issues).Once(),
		issues.On("GetForUpdate", ctx, i.ID()).Return(i, nil).Once(),
		issues.On("Update", ctx, i).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	updated, err := commands.NewChangeIssueStatusCommandHandler(factory, commands.AuditTrail{}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, issue.Resolved, updated.Status())
}

func TestNewChangeIssueStatusCommand_CustomersCannotChangeStatus(t *testing.T) {
	_, err := commands.NewChangeIssueStatusCommand(actor(user.Customer), kernel.NewUUID(), "resolved")

	require.ErrorIs(t, err, errs.ErrForbidden)
}
