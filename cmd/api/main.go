package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/yamdb/review-api/docs"
	"github.com/yamdb/review-api/internal/api"
	"github.com/yamdb/review-api/internal/core/ports"
	"github.com/yamdb/review-api/internal/core/service"
	"github.com/yamdb/review-api/internal/infrastructure/config"
	"github.com/yamdb/review-api/internal/infrastructure/credential"
	"github.com/yamdb/review-api/internal/infrastructure/db/mongo"
	"github.com/yamdb/review-api/internal/infrastructure/db/postgres"
	"github.com/yamdb/review-api/internal/infrastructure/db/redis"
	"github.com/yamdb/review-api/internal/infrastructure/http/handlers"
	"github.com/yamdb/review-api/internal/infrastructure/notify"
	"github.com/yamdb/review-api/internal/infrastructure/queue"
	"github.com/yamdb/review-api/pkg/logger"
)

// @title        YaMDb Reviews API
// @version      1.0
// @description  Reviews and ratings for works of art: books, films and music.
// @BasePath     /api/v1
// @schemes      http https

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "review-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Postgres ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
	}, log)
	if err != nil {
		return err
	}
	defer postgres.Close(db)
	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	checks := map[string]handlers.Check{
		"postgres": handlers.PostgresCheck(db),
		"redis":    handlers.RedisCheck(rdb),
	}

	// --- Notifications ---
	var notifier ports.Notifier = notify.NewLogSink(log)
	if cfg.Mail.Driver == "ses" {
		notifier, err = notify.NewSESSink(notify.SESConfig{
			Region:   cfg.Mail.AWSRegion,
			Endpoint: cfg.Mail.AWSEndpoint,
			From:     cfg.Mail.From,
		})
		if err != nil {
			return err
		}
	}

	// --- Moderation audit (optional) ---
	var (
		auditLog    ports.AuditLog = mongo.NopAuditLog{}
		auditReader ports.AuditReader
		dispatcher  *queue.AuditDispatcher
	)
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	mongoCfg := mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}
	if mongoCfg.Enabled() {
		client, mdb, err := mongo.Connect(ctx, mongoCfg)
		if err != nil {
			return err
		}
		defer func() { _ = mongo.Disconnect(client, 5*time.Second) }()

		repo := mongo.NewAuditRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		dispatcher = queue.NewAuditDispatcher(cfg.Mongo.AuditWorkers, repo, log)
		dispatcher.Start(workerCtx)

		auditLog, auditReader = dispatcher, repo
		checks["mongo"] = handlers.MongoCheck(mdb)
	}

	// --- Repositories and services ---
	users := postgres.NewUserRepository(db)
	titles := postgres.NewTitleRepository(db)
	reviews := postgres.NewReviewRepository(db)
	comments := postgres.NewCommentRepository(db)

	authService := service.NewAuthService(
		users,
		redis.NewCodeStore(rdb, cfg.Auth.CodeTTL),
		credential.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL),
		notifier,
		log,
	)

	deps := api.Dependencies{
		Auth:         authService,
		Users:        service.NewUserService(users, log),
		Catalog:      service.NewCatalogService(postgres.NewCategoryRepository(db), postgres.NewGenreRepository(db), titles, log),
		Reviews:      service.NewReviewService(titles, reviews, auditLog, log),
		Comments:     service.NewCommentService(reviews, comments, auditLog, log),
		Limiter:      redis.NewRateLimiter(rdb, cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow),
		Audit:        auditReader,
		HealthChecks: checks,
		Log:          log,
	}
	e := api.NewRouter(deps)

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// Drain pending audit writes before the mongo client disconnects.
	cancelWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
