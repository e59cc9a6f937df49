package http

import (
	"context"
	"log/slog"
	"net/http"

	"roboshop/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Options configures the echo instance built by NewEcho.
type Options struct {
	// AllowOrigins lists the CORS origins allowed to send credentials. Empty allows any origin without credentials.
	AllowOrigins []string
	// BodyLimit caps request bodies, e.g. "12M".
	BodyLimit string
	// Middleware runs before every other middleware, e.g. request metrics.
	Middleware []echo.MiddlewareFunc
	// MetricsHandler is mounted at GET /metrics when set.
	MetricsHandler http.Handler
}

// NewEcho wires the middleware chain and every route of the API.
func NewEcho(ctx context.Context, s *Server, opts Options) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validation, err := requestValidation(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(s.logger)

	if opts.BodyLimit == "" {
		opts.BodyLimit = "12M"
	}
	cors := middleware.CORSConfig{AllowOrigins: []string{"*"}}
	if len(opts.AllowOrigins) > 0 {
		cors = middleware.CORSConfig{AllowOrigins: opts.AllowOrigins, AllowCredentials: true}
	}
	e.Use(opts.Middleware...)
	e.Use(
		middleware.RequestID(),
		requestLogger(s.logger),
		middleware.Recover(),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(opts.BodyLimit),
	)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if opts.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(opts.MetricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/robots.txt", s.RobotsTxt)

	s.registerRoutes(e.Group("/api/v1"), validation)
	return e, nil
}

// registerRoutes runs the API document validation after the access checks.
func (s *Server) registerRoutes(api *echo.Group, validation echo.MiddlewareFunc) {
	auth := authenticate(s.tokens, false)
	optionalAuth := authenticate(s.tokens, true)
	staff := requireRole(user.Seller, user.Admin)
	admin := requireRole(user.Admin)
	with := func(mw ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append(mw, validation)
	}

	api.POST("/auth/register", s.Register, with()...)
	api.POST("/auth/login", s.Login, with()...)
	api.POST("/auth/logout", s.Logout, with()...)
	api.GET("/auth/me", s.Me, with(auth)...)

	api.GET("/me/addresses", s.ListAddresses, with(auth)...)
	api.POST("/me/addresses", s.AddAddress, with(auth)...)
	api.DELETE("/me/addresses/:addressId", s.DeleteAddress, with(auth)...)
	api.GET("/me/views", s.ListSavedViews, with(auth)...)
	api.POST("/me/views", s.CreateSavedView, with(auth)...)
	api.DELETE("/me/views/:viewId", s.DeleteSavedView, with(auth)...)

	api.GET("/products", s.ListProducts, with(optionalAuth)...)
	api.GET("/products/export", s.ExportProducts, with(auth, staff)...)
	api.POST("/products/import", s.ImportProducts, with(auth, staff)...)
	api.POST("/products", s.CreateProduct, with(auth, staff)...)
	api.GET("/products/:productId", s.GetProduct, with(optionalAuth)...)
	api.PUT("/products/:productId", s.UpdateProduct, with(auth, staff)...)
	api.DELETE("/products/:productId", s.DeleteProduct, with(auth, staff)...)

	api.GET("/cart", s.GetCart, with(auth)...)
	api.PUT("/cart/items/:productId", s.SetCartItem, with(auth)...)
	api.DELETE("/cart/items/:productId", s.RemoveCartItem, with(auth)...)
	api.DELETE("/cart", s.ClearCart, with(auth)...)
	api.POST("/checkout", s.Checkout, with(auth)...)
	api.GET("/coupons/:code/validate", s.ValidateCoupon, with()...)

	api.GET("/orders", s.ListOrders, with(auth)...)
	api.GET("/orders/export", s.ExportOrders, with(auth, admin)...)
	api.GET("/orders/:orderId", s.GetOrder, with(auth)...)
	api.PATCH("/orders/:orderId/status", s.ChangeOrderStatus, with(auth)...)

	api.GET("/issues", s.ListIssues, with(auth)...)
	api.POST("/issues", s.CreateIssue, with(auth)...)
	api.GET("/issues/:issueId", s.GetIssue, with(auth)...)
	api.POST("/issues/:issueId/messages", s.AddIssueMessage, with(auth)...)
	api.PATCH("/issues/:issueId/status", s.ChangeIssueStatus, with(auth, staff)...)

	api.GET("/settings", s.GetSettings, with()...)
	api.PUT("/settings", s.UpdateSettings, with(auth, admin)...)

	api.GET("/admin/metrics", s.DashboardMetrics, with(auth, staff)...)
	api.GET("/admin/users", s.ListUsers, with(auth, admin)...)
	api.PATCH("/admin/users/:userId", s.UpdateUser, with(auth, admin)...)
	api.GET("/admin/audit-logs", s.ListAuditLogs, with(auth, admin)...)
	api.GET("/admin/coupons", s.ListCoupons, with(auth, admin)...)
	api.POST("/admin/coupons", s.CreateCoupon, with(auth, admin)...)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = slog.LevelError
			case v.Status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "HTTP request", attrs...)
			return nil
		},
	})
}
