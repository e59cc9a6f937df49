package cmd

import (
	"context"
	"log/slog"

	httpin "roboshop/internal/adapters/in/http"
	"roboshop/internal/adapters/out/metrics"
	"roboshop/internal/adapters/out/postgres"
	"roboshop/internal/adapters/out/redisstore"
	"roboshop/internal/adapters/out/security"
	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/services"
	"roboshop/internal/core/ports"
	"roboshop/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Infrastructure carries the connections opened by the binary. Only DB is
// required; handlers built from a root without the others must not use them.
type Infrastructure struct {
	DB        *gorm.DB
	Redis     *redis.Client
	AuditLog  ports.AuditLog
	Publisher ports.OrderEventPublisher
	Registry  *prometheus.Registry
}

type CompositionRoot struct {
	cfg        Config
	infra      Infrastructure
	uowFactory *postgres.GormUnitOfWorkFactory
	hasher     ports.PasswordHasher
	tokens     *security.JWTIssuer
	orders     *metrics.OrderMetrics
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, infra Infrastructure, logger *slog.Logger) (*CompositionRoot, error) {
	tokens, err := security.NewJWTIssuer(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	if infra.Registry == nil {
		infra.Registry = metrics.NewRegistry()
	}
	return &CompositionRoot{
		cfg:        cfg,
		infra:      infra,
		uowFactory: postgres.NewGormUnitOfWorkFactory(infra.DB),
		hasher:     security.NewBcryptHasher(bcrypt.DefaultCost),
		tokens:     tokens,
		orders:     metrics.NewOrderMetrics(infra.Registry),
		logger:     logger,
	}, nil
}

// NewEcho builds the HTTP API with request metrics on every route.
func (c *CompositionRoot) NewEcho(ctx context.Context) (*echo.Echo, error) {
	httpMetrics := metrics.NewHTTPMetrics(c.infra.Registry)
	return httpin.NewEcho(ctx, c.CreateServer(), httpin.Options{
		AllowOrigins:   c.cfg.CORSOrigins,
		Middleware:     []echo.MiddlewareFunc{httpMetrics.Middleware()},
		MetricsHandler: metrics.Handler(c.infra.Registry),
	})
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		httpin.Commands{
			Register:          c.CreateCreateUserCommandHandler(),
			Login:             c.CreateLoginCommandHandler(),
			AddAddress:        commands.NewAddAddressCommandHandler(c.userUoWFactory()),
			DeleteAddress:     commands.NewDeleteAddressCommandHandler(c.userUoWFactory()),
			CreateProduct:     commands.NewCreateProductCommandHandler(c.catalogUoWFactory(), c.auditTrail()),
			UpdateProduct:     commands.NewUpdateProductCommandHandler(c.catalogUoWFactory(), c.auditTrail()),
			DeleteProduct:     commands.NewDeleteProductCommandHandler(c.catalogUoWFactory(), c.auditTrail()),
			ImportProducts:    commands.NewImportProductsCommandHandler(c.catalogUoWFactory(), c.auditTrail()),
			SetCartItem:       commands.NewSetCartItemCommandHandler(c.catalogUoWFactory(), c.cartStore()),
			ClearCart:         commands.NewClearCartCommandHandler(c.cartStore()),
			Checkout:          c.CreateCheckoutCommandHandler(),
			ChangeOrderStatus: commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.orderChangeNotifier()),
			CreateIssue:       commands.NewCreateIssueCommandHandler(c.issueUoWFactory()),
			AddIssueMessage:   commands.NewAddIssueMessageCommandHandler(c.issueUoWFactory(), c.auditTrail()),
			ChangeIssueStatus: commands.NewChangeIssueStatusCommandHandler(c.issueUoWFactory(), c.auditTrail()),
			UpdateUser:        commands.NewUpdateUserCommandHandler(c.userUoWFactory(), c.auditTrail()),
			UpdateSettings: commands.NewUpdateSettingsCommandHandler(
				c.settingsUoWFactory(), c.settingsCache(), c.auditTrail(), c.logger),
			CreateCoupon:    commands.NewCreateCouponCommandHandler(c.couponUoWFactory(), c.auditTrail()),
			CreateSavedView: commands.NewCreateSavedViewCommandHandler(c.savedViewUoWFactory()),
			DeleteSavedView: commands.NewDeleteSavedViewCommandHandler(c.savedViewUoWFactory()),
		},
		httpin.Queries{
			GetMe:            queries.NewGetMeQueryHandler(c.uowFactory),
			ListProducts:     queries.NewListProductsQueryHandler(c.infra.DB),
			GetProduct:       queries.NewGetProductQueryHandler(c.infra.DB),
			ExportProducts:   queries.NewExportProductsQueryHandler(c.infra.DB),
			GetCart:          queries.NewGetCartQueryHandler(c.infra.DB, c.cartStore()),
			ValidateCoupon:   queries.NewValidateCouponQueryHandler(c.uowFactory),
			ListOrders:       queries.NewListOrdersQueryHandler(c.infra.DB),
			GetOrder:         queries.NewGetOrderQueryHandler(c.uowFactory),
			ExportOrders:     queries.NewExportOrdersQueryHandler(c.infra.DB),
			ListIssues:       queries.NewListIssuesQueryHandler(c.infra.DB),
			GetIssue:         queries.NewGetIssueQueryHandler(c.uowFactory),
			DashboardMetrics: queries.NewGetDashboardMetricsQueryHandler(c.infra.DB),
			ListUsers:        queries.NewListUsersQueryHandler(c.infra.DB),
			ListAuditLogs:    queries.NewListAuditLogsQueryHandler(c.infra.AuditLog),
			GetSettings:      queries.NewGetSettingsQueryHandler(c.uowFactory, c.settingsCache(), c.logger),
			ListCoupons:      queries.NewListCouponsQueryHandler(c.infra.DB),
			ListSavedViews:   queries.NewListSavedViewsQueryHandler(c.uowFactory),
		},
		c.tokens,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAutoAssignRiderCommandHandler(),
		c.cfg.AutoAssignSchedule,
		queries.NewCountOrdersByStatusQueryHandler(c.infra.DB),
		c.orders,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	return commands.NewCreateUserCommandHandler(c.userUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.userUoWFactory(), c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.cartStore(), services.NewPricer(), c.logger)
}

func (c *CompositionRoot) CreateAutoAssignRiderCommandHandler() commands.AutoAssignRiderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoAssignRiderCommandHandler(f, services.NewRiderDispatcher(), c.orderChangeNotifier())
}

func (c *CompositionRoot) auditTrail() commands.AuditTrail {
	return commands.NewAuditTrail(c.infra.AuditLog, c.logger)
}

func (c *CompositionRoot) orderChangeNotifier() commands.OrderChangeNotifier {
	return commands.NewOrderChangeNotifier(c.infra.Publisher, c.orders, c.auditTrail(), c.logger)
}

func (c *CompositionRoot) cartStore() *redisstore.CartStore {
	return redisstore.NewCartStore(c.infra.Redis, c.cfg.CartTTL)
}

func (c *CompositionRoot) settingsCache() *redisstore.SettingsCache {
	return redisstore.NewSettingsCache(c.infra.Redis, redisstore.DefaultSettingsTTL)
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) issueUoWFactory() commands.IssueUoWFactory {
	return FuncIssueUoWFactory(func() commands.IssueUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) couponUoWFactory() commands.CouponUoWFactory {
	return FuncCouponUoWFactory(func() commands.CouponUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) settingsUoWFactory() commands.SettingsUoWFactory {
	return FuncSettingsUoWFactory(func() commands.SettingsUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) savedViewUoWFactory() commands.SavedViewUoWFactory {
	return FuncSavedViewUoWFactory(func() commands.SavedViewUoW { return c.uowFactory.Create() })
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncIssueUoWFactory func() commands.IssueUoW

func (f FuncIssueUoWFactory) Create() commands.IssueUoW {
	return f()
}

type FuncCouponUoWFactory func() commands.CouponUoW

func (f FuncCouponUoWFactory) Create() commands.CouponUoW {
	return f()
}

type FuncSettingsUoWFactory func() commands.SettingsUoW

func (f FuncSettingsUoWFactory) Create() commands.SettingsUoW {
	return f()
}

type FuncSavedViewUoWFactory func() commands.SavedViewUoW

func (f FuncSavedViewUoWFactory) Create() commands.SavedViewUoW {
	return f()
}
