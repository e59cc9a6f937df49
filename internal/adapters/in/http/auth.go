package http

import (
	"net/http"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "session"
	actorKey      = "actor"
)

// authenticate resolves the caller from the session cookie or a Bearer token.
// With optional set, anonymous requests pass through without an actor.
func authenticate(tokens ports.TokenIssuer, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFrom(c.Request())
			if token == "" {
				if optional {
					return next(c)
				}
				return errs.NewUnauthorizedError("authentication required")
			}

			actor, err := tokens.Parse(token)
			if err != nil {
				if optional {
					return next(c)
				}
				return err
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// requireRole must run after authenticate.
func requireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := actorFrom(c).RequireRole(roles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// actorFrom returns the zero Actor for anonymous callers.
func actorFrom(c echo.Context) user.Actor {
	actor, _ := c.Get(actorKey).(user.Actor)
	return actor
}

func setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
