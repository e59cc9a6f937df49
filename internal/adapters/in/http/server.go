package http

import (
	"log/slog"
	"time"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/ports"
)

// Commands groups the write side handlers the HTTP API dispatches to.
type Commands struct {
	Register          commands.CreateUserCommandHandler
	Login             commands.LoginCommandHandler
	AddAddress        commands.AddAddressCommandHandler
	DeleteAddress     commands.DeleteAddressCommandHandler
	CreateProduct     commands.CreateProductCommandHandler
	UpdateProduct     commands.UpdateProductCommandHandler
	DeleteProduct     commands.DeleteProductCommandHandler
	ImportProducts    commands.ImportProductsCommandHandler
	SetCartItem       commands.SetCartItemCommandHandler
	ClearCart         commands.ClearCartCommandHandler
	Checkout          commands.CheckoutCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	CreateIssue       commands.CreateIssueCommandHandler
	AddIssueMessage   commands.AddIssueMessageCommandHandler
	ChangeIssueStatus commands.ChangeIssueStatusCommandHandler
	UpdateUser        commands.UpdateUserCommandHandler
	UpdateSettings    commands.UpdateSettingsCommandHandler
	CreateCoupon      commands.CreateCouponCommandHandler
	CreateSavedView   commands.CreateSavedViewCommandHandler
	DeleteSavedView   commands.DeleteSavedViewCommandHandler
}

// Queries groups the read side handlers.
type Queries struct {
	GetMe            queries.GetMeQueryHandler
	ListProducts     queries.ListProductsQueryHandler
	GetProduct       queries.GetProductQueryHandler
	ExportProducts   queries.ExportProductsQueryHandler
	GetCart          queries.GetCartQueryHandler
	ValidateCoupon   queries.ValidateCouponQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	ExportOrders     queries.ExportOrdersQueryHandler
	ListIssues       queries.ListIssuesQueryHandler
	GetIssue         queries.GetIssueQueryHandler
	DashboardMetrics queries.GetDashboardMetricsQueryHandler
	ListUsers        queries.ListUsersQueryHandler
	ListAuditLogs    queries.ListAuditLogsQueryHandler
	GetSettings      queries.GetSettingsQueryHandler
	ListCoupons      queries.ListCouponsQueryHandler
	ListSavedViews   queries.ListSavedViewsQueryHandler
}

// Server holds the use case handlers behind the /api/v1 routes and translates
// between HTTP and the application layer.
type Server struct {
	commands Commands
	queries  Queries
	tokens   ports.TokenIssuer
	logger   *slog.Logger
	now      func() time.Time
}

func NewServer(cmds Commands, qrs Queries, tokens ports.TokenIssuer, logger *slog.Logger) *Server {
	return &Server{
		commands: cmds,
		queries:  qrs,
		tokens:   tokens,
		logger:   logger.With("component", "http"),
		now:      time.Now,
	}
}
