package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/yamdb/review-api/internal/api/handler"
	"github.com/yamdb/review-api/internal/api/middleware"
	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
	"github.com/yamdb/review-api/internal/infrastructure/http/handlers"
)

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Catalog  ports.CatalogService
	Reviews  ports.ReviewService
	Comments ports.CommentService

	// Limiter throttles /auth routes; nil disables throttling.
	Limiter ports.RateLimiter
	// Audit serves moderation history; nil hides the route.
	Audit ports.AuditReader

	HealthChecks map[string]handlers.Check
	Log          zerolog.Logger
	// Registry receives the HTTP metrics; nil uses the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "reviews_api",
		Registerer: registerer,
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(deps.HealthChecks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", middleware.Auth(deps.Auth))
	authed := middleware.RequireAuth()
	admin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := v1.Group("/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, deps.Log))
	}
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/token", authHandler.Token)
	auth.POST("/token/refresh", authHandler.Refresh)

	// --- Users ---
	userHandler := handler.NewUserHandler(deps.Users)
	v1.GET("/users/me", userHandler.Me, authed)
	v1.PATCH("/users/me", userHandler.UpdateMe, authed)
	users := v1.Group("/users", admin)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:username", userHandler.Get)
	users.PATCH("/:username", userHandler.Update)
	users.DELETE("/:username", userHandler.Delete)

	// --- Catalog ---
	catalog := handler.NewCatalogHandler(deps.Catalog)
	v1.GET("/categories", catalog.ListCategories)
	v1.POST("/categories", catalog.CreateCategory, admin)
	v1.DELETE("/categories/:slug", catalog.DeleteCategory, admin)
	v1.GET("/genres", catalog.ListGenres)
	v1.POST("/genres", catalog.CreateGenre, admin)
	v1.DELETE("/genres/:slug", catalog.DeleteGenre, admin)
	v1.GET("/titles", catalog.ListTitles)
	v1.POST("/titles", catalog.CreateTitle, admin)
	v1.GET("/titles/:title_id", catalog.GetTitle)
	v1.PATCH("/titles/:title_id", catalog.UpdateTitle, admin)
	v1.DELETE("/titles/:title_id", catalog.DeleteTitle, admin)

	// --- Reviews and comments ---
	// Ownership checks for edits happen in the services.
	reviews := handler.NewReviewHandler(deps.Reviews, deps.Comments)
	rv := v1.Group("/titles/:title_id/reviews")
	rv.GET("", reviews.ListReviews)
	rv.POST("", reviews.CreateReview, authed)
	rv.GET("/:review_id", reviews.GetReview)
	rv.PATCH("/:review_id", reviews.UpdateReview, authed)
	rv.DELETE("/:review_id", reviews.DeleteReview, authed)
	rv.GET("/:review_id/comments", reviews.ListComments)
	rv.POST("/:review_id/comments", reviews.CreateComment, authed)
	rv.GET("/:review_id/comments/:comment_id", reviews.GetComment)
	rv.PATCH("/:review_id/comments/:comment_id", reviews.UpdateComment, authed)
	rv.DELETE("/:review_id/comments/:comment_id", reviews.DeleteComment, authed)

	// --- Moderation history ---
	if deps.Audit != nil {
		v1.GET("/moderation/:resource/:id", handler.NewModerationHandler(deps.Audit).History, admin)
	}

	return e
}
