package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// ModerationHandler exposes the moderation audit trail to admins.
type ModerationHandler struct {
	audit ports.AuditReader
}

func NewModerationHandler(audit ports.AuditReader) *ModerationHandler {
	return &ModerationHandler{audit: audit}
}

// History godoc
//
// @Summary   Moderation history of a review or comment
// @Tags      moderation
// @Produce   json
// @Security  BearerAuth
// @Param     resource  path      string  true  "review or comment"
// @Param     id        path      int     true  "Resource ID"
// @Success   200       {array}   moderationEventResponse
// @Failure   403       {object}  errorResponse
// @Failure   404       {object}  errorResponse
// @Router    /moderation/{resource}/{id} [get]
func (h *ModerationHandler) History(c echo.Context) error {
	kind := domain.ResourceKind(c.Param("resource"))
	if kind != domain.ResourceReview && kind != domain.ResourceComment {
		return echo.ErrNotFound
	}
	id, err := pathID(c, "id", echo.ErrNotFound)
	if err != nil {
		return err
	}

	events, err := h.audit.ListByResource(reqCtx(c), kind, id)
	if err != nil {
		return err
	}
	out := make([]moderationEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toModerationEventResponse(ev))
	}
	return c.JSON(http.StatusOK, out)
}
