package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/yamdb/review-api/internal/core/domain"
)

// RequireAuth rejects anonymous requests.
func RequireAuth() echo.MiddlewareFunc {
	return RequireRole(domain.RoleUser)
}

// RequireRole enforces a minimum effective role. Staff and superuser flags
// count as moderator and admin.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := Actor(c)
			if actor == nil {
				return domain.ErrAuthenticationRequired
			}
			if !actor.EffectiveRole().AtLeast(min) {
				return domain.ErrPermissionDenied
			}
			return next(c)
		}
	}
}
