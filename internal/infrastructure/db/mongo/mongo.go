package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "review-api"
)

// Config locates the optional moderation audit store. An empty URI keeps the
// audit log disabled.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func (c Config) Enabled() bool { return c.URI != "" }

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// Connect opens the audit store and pings the primary. Audit writes are
// small and infrequent, so the pool is kept narrow.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if !cfg.Enabled() {
		return nil, nil, fmt.Errorf("mongo connect: no URI configured")
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetMaxPoolSize(16).
		SetTimeout(cfg.timeout())
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// Disconnect closes the client within timeout. Pending audit writes must be
// drained before calling it.
func Disconnect(client *mongo.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Disconnect(ctx)
}
