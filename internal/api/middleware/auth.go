package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

const actorKey = "actor"

// Auth resolves a Bearer access token to the current user and stores it in
// the context. Requests without an Authorization header continue anonymously;
// a malformed or rejected token is a 401.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return fmt.Errorf("%w: invalid authorization header", domain.ErrAuthenticationRequired)
			}

			user, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrAuthenticationRequired, err)
			}

			SetActor(c, user)
			return next(c)
		}
	}
}

// SetActor stores the authenticated user on the request context.
func SetActor(c echo.Context, u *domain.User) { c.Set(actorKey, u) }

// Actor returns the authenticated user, or nil for anonymous requests.
func Actor(c echo.Context) *domain.User {
	u, _ := c.Get(actorKey).(*domain.User)
	return u
}
