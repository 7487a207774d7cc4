//go:build integration

package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yamdb/review-api/internal/core/domain"
)

func TestAuditRepository(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "mongodb")
	require.NoError(t, err)

	client, db, err := Connect(ctx, Config{URI: endpoint, Database: "audit_test"})
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	repo := NewAuditRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, action := range []domain.Action{domain.ActionUpdate, domain.ActionDelete} {
		require.NoError(t, repo.Record(ctx, domain.ModerationEvent{
			ActorID:    9,
			ActorRole:  domain.RoleModerator,
			Action:     action,
			Resource:   domain.ResourceReview,
			ResourceID: 5,
			OwnerID:    2,
			At:         base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Record(ctx, domain.ModerationEvent{Resource: domain.ResourceComment, ResourceID: 5, At: base}))

	events, err := repo.ListByResource(ctx, domain.ResourceReview, 5)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.ActionDelete, events[0].Action)
	assert.Equal(t, domain.RoleModerator, events[1].ActorRole)
	assert.True(t, events[1].At.Equal(base))
}
