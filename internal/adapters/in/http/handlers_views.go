package http

import (
	"net/http"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListSavedViews handles GET /api/v1/me/views?scope=.
func (s *Server) ListSavedViews(c echo.Context) error {
	q := newQueryParams(c)
	scope := q.String("scope")
	if err := q.Err(); err != nil {
		return err
	}

	query, err := queries.NewListSavedViewsQuery(actorFrom(c), scope)
	if err != nil {
		return err
	}
	views, err := s.queries.ListSavedViews.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(views, toSavedViewResponse))
}

func (s *Server) CreateSavedView(c echo.Context) error {
	var req SavedViewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateSavedViewCommand(actorFrom(c), req.Scope, req.Name, req.Filters)
	if err != nil {
		return err
	}
	created, err := s.commands.CreateSavedView.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSavedViewResponse(created))
}

func (s *Server) DeleteSavedView(c echo.Context) error {
	viewID, err := pathUUID(c, "viewId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteSavedViewCommand(actorFrom(c), viewID)
	if err != nil {
		return err
	}
	if err = s.commands.DeleteSavedView.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
