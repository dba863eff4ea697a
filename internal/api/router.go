package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/streampass/video-platform/internal/api/handler"
	"github.com/streampass/video-platform/internal/api/middleware"
	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
	httphandlers "github.com/streampass/video-platform/internal/infrastructure/http/handlers"
)

// RouterConfig gathers everything the HTTP layer needs.
type RouterConfig struct {
	JWTSecret string
	Auth      ports.AuthService
	Catalog   ports.CatalogService
	Unlocks   ports.UnlockService
	Telemetry ports.TelemetryService
	Comments  ports.CommentService
	Views     handler.ViewEnqueuer
	Mongo     *mongo.Database
	Redis     *redis.Client
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("videoplatform"))

	requireAuth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)
	creatorOnly := middleware.RBAC(domain.RoleCreator)
	viewerOnly := middleware.RBAC(domain.RoleViewer)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	videoHandler := handler.NewVideoHandler(cfg.Catalog, cfg.Views)
	unlockHandler := handler.NewUnlockHandler(cfg.Unlocks)
	channelHandler := handler.NewChannelHandler(cfg.Catalog)
	commentHandler := handler.NewCommentHandler(cfg.Comments)
	telemetryHandler := handler.NewTelemetryHandler(cfg.Telemetry)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Catalog ---
	v1 := e.Group("/v1")
	v1.GET("/videos", videoHandler.List, optionalAuth)
	v1.GET("/videos/:id", videoHandler.Get, optionalAuth)
	v1.POST("/videos", videoHandler.Create, requireAuth, creatorOnly)
	v1.PATCH("/videos/:id/price", videoHandler.SetPrice, requireAuth, creatorOnly)
	v1.DELETE("/videos/:id", videoHandler.Delete, requireAuth, creatorOnly)
	v1.GET("/videos/:id/watch", videoHandler.Watch, optionalAuth)

	// --- Unlocks ---
	v1.POST("/videos/:id/unlock", unlockHandler.Unlock, requireAuth, viewerOnly)

	// --- Channels ---
	v1.GET("/channels/:name", channelHandler.Get, optionalAuth)
	v1.POST("/channel/setup", channelHandler.Setup, requireAuth, creatorOnly)

	// --- Comments ---
	v1.GET("/videos/:id/comments", commentHandler.List)
	v1.POST("/videos/:id/comments", commentHandler.Add, requireAuth)

	// --- Telemetry ---
	v1.POST("/videos/:id/progress", telemetryHandler.Progress, requireAuth, viewerOnly)

	// --- Caller's own resources ---
	v1.GET("/me/videos", videoHandler.ListOwn, requireAuth, creatorOnly)
	v1.GET("/me/unlocks", unlockHandler.ListUnlocks, requireAuth, viewerOnly)
	v1.GET("/me/history", telemetryHandler.History, requireAuth, viewerOnly)
	v1.DELETE("/me", authHandler.DeleteMe, requireAuth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
