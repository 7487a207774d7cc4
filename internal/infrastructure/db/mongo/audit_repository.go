package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yamdb/review-api/internal/core/domain"
)

const auditCollection = "moderation_events"

// AuditRepository persists moderation events to MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type moderationDoc struct {
	ActorID    int64     `bson:"actor_id"`
	ActorRole  string    `bson:"actor_role"`
	Action     string    `bson:"action"`
	Resource   string    `bson:"resource"`
	ResourceID int64     `bson:"resource_id"`
	OwnerID    int64     `bson:"owner_id"`
	At         time.Time `bson:"at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// EnsureIndexes creates lookup indexes by resource and by actor.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}, {Key: "at", Value: -1}},
			Options: options.Index().SetName("resource_at"),
		},
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}},
			Options: options.Index().SetName("actor_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("ensure %s indexes: %w", auditCollection, err)
	}
	return nil
}

func (r *AuditRepository) Record(ctx context.Context, ev domain.ModerationEvent) error {
	doc := moderationDoc{
		ActorID:    ev.ActorID,
		ActorRole:  string(ev.ActorRole),
		Action:     string(ev.Action),
		Resource:   string(ev.Resource),
		ResourceID: ev.ResourceID,
		OwnerID:    ev.OwnerID,
		At:         ev.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert moderation event: %w", err)
	}
	return nil
}

// ListByResource returns the events for one resource, newest first.
func (r *AuditRepository) ListByResource(ctx context.Context, kind domain.ResourceKind, id int64) ([]domain.ModerationEvent, error) {
	filter := bson.M{"resource": string(kind), "resource_id": id}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find moderation events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []moderationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode moderation events: %w", err)
	}
	events := make([]domain.ModerationEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.ModerationEvent{
			ActorID:    d.ActorID,
			ActorRole:  domain.Role(d.ActorRole),
			Action:     domain.Action(d.Action),
			Resource:   domain.ResourceKind(d.Resource),
			ResourceID: d.ResourceID,
			OwnerID:    d.OwnerID,
			At:         d.At,
		})
	}
	return events, nil
}

// NopAuditLog discards events. Used when MongoDB is not configured.
type NopAuditLog struct{}

func (NopAuditLog) Record(context.Context, domain.ModerationEvent) error { return nil }
