package http

import (
	"net/http"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// DashboardMetrics handles GET /api/v1/admin/metrics?from=&to=.
func (s *Server) DashboardMetrics(c echo.Context) error {
	q := newQueryParams(c)
	from, to := q.Time("from"), q.Time("to")
	if err := q.Err(); err != nil {
		return err
	}

	query, err := queries.NewGetDashboardMetricsQuery(actorFrom(c), from, to, s.now())
	if err != nil {
		return err
	}
	metrics, err := s.queries.DashboardMetrics.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(metrics))
}

func (s *Server) ListUsers(c echo.Context) error {
	q := newQueryParams(c)
	filter := queries.UserFilter{Search: q.String("search"), Active: q.Bool("active")}
	rawRole, page := q.String("role"), q.Page()
	if err := q.Err(); err != nil {
		return err
	}
	if rawRole != "" {
		role, err := user.ParseRole(rawRole)
		if err != nil {
			return err
		}
		filter.Role = role
	}

	query, err := queries.NewListUsersQuery(actorFrom(c), filter, page)
	if err != nil {
		return err
	}
	result, err := s.queries.ListUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPage(result.Items, result.Total, result.Page, toUserSummaryResponse))
}

// UpdateUser handles PATCH /api/v1/admin/users/{userId}: role change and (de)activation.
func (s *Server) UpdateUser(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	var role *user.Role
	if req.Role != nil {
		parsed, parseErr := user.ParseRole(*req.Role)
		if parseErr != nil {
			return parseErr
		}
		role = &parsed
	}

	cmd, err := commands.NewUpdateUserCommand(actorFrom(c), userID, role, req.Active)
	if err != nil {
		return err
	}
	updated, err := s.commands.UpdateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

func (s *Server) ListAuditLogs(c echo.Context) error {
	q := newQueryParams(c)
	filter := audit.Filter{
		Entity:   audit.Entity(q.String("entity")),
		EntityID: q.String("entityId"),
		ActorID:  q.UUID("actorId"),
	}
	page := q.Page()
	if err := q.Err(); err != nil {
		return err
	}
	filter.Page, filter.PageSize = page.Number, page.Size

	query, err := queries.NewListAuditLogsQuery(actorFrom(c), filter)
	if err != nil {
		return err
	}
	result, err := s.queries.ListAuditLogs.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPage(result.Items, result.Total, result.Page, toAuditEntryResponse))
}

// GetSettings handles the public GET /api/v1/settings.
func (s *Server) GetSettings(c echo.Context) error {
	current, err := s.queries.GetSettings.Handle(c.Request().Context(), queries.NewGetSettingsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSettingsDTO(current))
}

func (s *Server) UpdateSettings(c echo.Context) error {
	var req SettingsDTO
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	next, err := req.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateSettingsCommand(actorFrom(c), next)
	if err != nil {
		return err
	}
	saved, err := s.commands.UpdateSettings.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSettingsDTO(saved))
}

// RobotsTxt serves /robots.txt from the SEO settings.
func (s *Server) RobotsTxt(c echo.Context) error {
	current, err := s.queries.GetSettings.Handle(c.Request().Context(), queries.NewGetSettingsQuery())
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, current.RobotsTxt())
}

func (s *Server) ListCoupons(c echo.Context) error {
	query, err := queries.NewListCouponsQuery(actorFrom(c))
	if err != nil {
		return err
	}
	coupons, err := s.queries.ListCoupons.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(coupons, toCouponResponse))
}

func (s *Server) CreateCoupon(c echo.Context) error {
	var req CouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := req.params()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateCouponCommand(actorFrom(c), params)
	if err != nil {
		return err
	}
	created, err := s.commands.CreateCoupon.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCouponResponse(created))
}
