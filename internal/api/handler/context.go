package handler

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yamdb/review-api/internal/api/middleware"
	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

func actor(c echo.Context) *domain.User { return middleware.Actor(c) }

func reqCtx(c echo.Context) context.Context { return c.Request().Context() }

// pathID parses a numeric path parameter. Anything else cannot name an
// existing row, so it is reported with the caller's not-found error.
func pathID(c echo.Context, name string, notFound error) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

// pageParams reads limit and offset from the query string.
func pageParams(c echo.Context) (ports.Page, error) {
	var p ports.Page
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, domain.NewValidationError("limit", "must be a non-negative integer")
		}
		p.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, domain.NewValidationError("offset", "must be a non-negative integer")
		}
		p.Offset = n
	}
	return p.Normalize(), nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("", "invalid payload")
	}
	return c.Validate(req)
}
