package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/api/metrics"
	"github.com/yamdb/review-api/internal/core/domain"
)

// Error codes carried in the envelope.
const (
	codeValidation        = "validation"
	codeDuplicateReview   = "duplicate_review"
	codeInvalidCredential = "invalid_credential"
	codeNotAuthenticated  = "not_authenticated"
	codePermissionDenied  = "permission_denied"
	codeNotFound          = "not_found"
	codeUpstreamDelivery  = "upstream_delivery"
	codeInternal          = "internal_error"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and envelope code.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := resolveError(err, log, c)
		metrics.ErrorsTotal.WithLabelValues(resp.Code).Inc()

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, 429 from the limiter).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Code: codeForStatus(he.Code)}
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorResponse{Error: ve.Error(), Code: codeValidation, Field: ve.Field}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeValidation}
	case errors.Is(err, domain.ErrDuplicateReview):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrDuplicateReview.Error(), Code: codeDuplicateReview}
	case errors.Is(err, domain.ErrInvalidCredential):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidCredential.Error(), Code: codeInvalidCredential}
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return http.StatusUnauthorized, errorResponse{Error: "authentication credentials were not provided or are invalid", Code: codeNotAuthenticated}
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, errorResponse{Error: domain.ErrPermissionDenied.Error(), Code: codePermissionDenied}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeNotFound}
	case errors.Is(err, domain.ErrUpstreamDelivery):
		log.Warn().Err(err).Str("path", c.Path()).Msg("upstream delivery failed")
		return http.StatusBadGateway, errorResponse{Error: domain.ErrUpstreamDelivery.Error(), Code: codeUpstreamDelivery}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: codeInternal}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return codeValidation
	case http.StatusUnauthorized:
		return codeNotAuthenticated
	case http.StatusForbidden:
		return codePermissionDenied
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusInternalServerError:
		return codeInternal
	}
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}
