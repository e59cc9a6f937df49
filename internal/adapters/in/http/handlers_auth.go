package http

import (
	"net/http"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Register handles POST /api/v1/auth/register. Storefront sign-ups are always customers.
func (s *Server) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateUserCommand(req.Email, req.Name, req.Phone, req.Password, user.Customer)
	if err != nil {
		return err
	}
	created, err := s.commands.Register.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(created))
}

// Login handles POST /api/v1/auth/login. The token is returned in the body and
// as an http-only session cookie.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return err
	}
	result, err := s.commands.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	setSessionCookie(c, result.Token, result.ExpiresAt)
	return c.JSON(http.StatusOK, SessionResponse{
		User:      toUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout handles POST /api/v1/auth/logout.
func (s *Server) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
func (s *Server) Me(c echo.Context) error {
	u, err := s.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *Server) currentUser(c echo.Context) (*user.User, error) {
	query, err := queries.NewGetMeQuery(actorFrom(c))
	if err != nil {
		return nil, err
	}
	return s.queries.GetMe.Handle(c.Request().Context(), query)
}

func (s *Server) ListAddresses(c echo.Context) error {
	u, err := s.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(u.Addresses(), toAddressResponse))
}

func (s *Server) AddAddress(c echo.Context) error {
	var req AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAddAddressCommand(actorFrom(c), req.fields())
	if err != nil {
		return err
	}
	added, err := s.commands.AddAddress.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAddressResponse(added))
}

func (s *Server) DeleteAddress(c echo.Context) error {
	addressID, err := pathUUID(c, "addressId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteAddressCommand(actorFrom(c), addressID)
	if err != nil {
		return err
	}
	if err = s.commands.DeleteAddress.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
