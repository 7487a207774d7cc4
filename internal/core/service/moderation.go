package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// recordModeration appends an audit entry when actor changed content owned by
// someone else. Audit failures are logged and never fail the request.
func recordModeration(
	ctx context.Context,
	audit ports.AuditLog,
	log zerolog.Logger,
	actor *domain.User,
	action domain.Action,
	res domain.Resource,
	resourceID int64,
) {
	if audit == nil || !domain.Overrides(actor, res) {
		return
	}
	ev := domain.ModerationEvent{
		ActorID:    actor.ID,
		ActorRole:  actor.EffectiveRole(),
		Action:     action,
		Resource:   res.Kind,
		ResourceID: resourceID,
		OwnerID:    res.OwnerID,
		At:         time.Now().UTC(),
	}
	if err := audit.Record(ctx, ev); err != nil {
		log.Warn().Err(err).
			Str("resource", string(res.Kind)).
			Int64("resource_id", resourceID).
			Msg("failed to record moderation event")
	}
}

func listResult[T any](items []T, total int64, page ports.Page) *ports.ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ports.ListResult[T]{Items: items, Total: total, Page: page}
}
