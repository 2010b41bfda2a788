package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/anonto42/heritage-feed/backend/internal/cache"
	"github.com/anonto42/heritage-feed/backend/internal/handlers"
	"github.com/anonto42/heritage-feed/backend/internal/middleware"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/internal/services"
	"github.com/anonto42/heritage-feed/backend/internal/validators"
	"github.com/anonto42/heritage-feed/backend/pkg/config"
)

// Dependencies are the stores the API is built on.
type Dependencies struct {
	Store      *repositories.Store
	Counts     cache.CounterCache
	Activities repositories.ActivityRepository
	RateLimit  config.RateLimitConfig
	Logger     zerolog.Logger
}

// New builds the echo instance with middleware and all routes.
func New(deps Dependencies) *echo.Echo {
	if deps.Counts == nil {
		deps.Counts = cache.NoopCounterCache{}
	}
	if deps.Activities == nil {
		deps.Activities = repositories.NoopActivityRepository{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	SetupMiddleware(e, deps.Logger)
	SetupRoutes(e, deps)
	return e
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, base zerolog.Logger) {
	e.Use(middleware.RequestContext(base))
	e.Use(middleware.RequestLogger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	l := deps.Logger

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Services ---
	profileService := services.NewProfileService(deps.Store, deps.Counts)
	graphService := services.NewGraphService(deps.Store, deps.Counts, deps.Activities)
	engagementService := services.NewEngagementService(deps.Store, deps.Counts, deps.Activities)
	timelineService := services.NewTimelineService(deps.Store)
	contentService := services.NewContentService(deps.Store, deps.Counts)

	api := e.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.NewIPRateLimiter(deps.RateLimit.RPS, deps.RateLimit.Burst)))

	handlers.NewProfileHandler(profileService).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(graphService).RegisterFollowRoutes(api)
	handlers.NewFeedHandler(timelineService).RegisterFeedRoutes(api)
	handlers.NewActivityHandler(deps.Activities, profileService).RegisterActivityRoutes(api)
	l.Debug().Msg("profile routes configured")

	handlers.NewPostHandler(contentService).RegisterPostRoutes(api)
	handlers.NewLikeHandler(engagementService).RegisterLikeRoutes(api)
	handlers.NewTagHandler(contentService).RegisterTagRoutes(api)
	handlers.NewCommentHandler(contentService).RegisterCommentRoutes(api)
	l.Debug().Msg("content routes configured")

	l.Info().Int("routes", len(e.Routes())).Msg("all routes configured")
}
