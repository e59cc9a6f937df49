package http

import (
	"net/http"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) ListIssues(c echo.Context) error {
	q := newQueryParams(c)
	filter := queries.IssueFilter{OrderID: q.UUID("orderId")}
	rawStatus, page := q.String("status"), q.Page()
	if err := q.Err(); err != nil {
		return err
	}
	if rawStatus != "" {
		status, err := issue.ParseStatus(rawStatus)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	query, err := queries.NewListIssuesQuery(actorFrom(c), filter, page)
	if err != nil {
		return err
	}
	result, err := s.queries.ListIssues.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPage(result.Items, result.Total, result.Page, toIssueSummaryResponse))
}

// CreateIssue handles POST /api/v1/issues: a customer reports a problem with one of their orders.
func (s *Server) CreateIssue(c echo.Context) error {
	var req CreateIssueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	cmd, err := commands.NewCreateIssueCommand(actorFrom(c), orderID, req.Subject, req.Category, req.Message)
	if err != nil {
		return err
	}
	created, err := s.commands.CreateIssue.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toIssueResponse(created))
}

func (s *Server) GetIssue(c echo.Context) error {
	issueID, err := pathUUID(c, "issueId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetIssueQuery(actorFrom(c), issueID)
	if err != nil {
		return err
	}
	found, err := s.queries.GetIssue.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIssueResponse(found))
}

func (s *Server) AddIssueMessage(c echo.Context) error {
	issueID, err := pathUUID(c, "issueId")
	if err != nil {
		return err
	}
	var req IssueMessageRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAddIssueMessageCommand(actorFrom(c), issueID, req.Body)
	if err != nil {
		return err
	}
	updated, err := s.commands.AddIssueMessage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toIssueResponse(updated))
}

func (s *Server) ChangeIssueStatus(c echo.Context) error {
	issueID, err := pathUUID(c, "issueId")
	if err != nil {
		return err
	}
	var req IssueStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewChangeIssueStatusCommand(actorFrom(c), issueID, req.Status)
	if err != nil {
		return err
	}
	updated, err := s.commands.ChangeIssueStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIssueResponse(updated))
}
