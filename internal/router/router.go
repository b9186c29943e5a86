package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/afkar-io/afkar-api/internal/config"
	"github.com/afkar-io/afkar-api/internal/handler"
	"github.com/afkar-io/afkar-api/internal/middleware"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	IdeaHandler         *handler.IdeaHandler
	AttachmentHandler   *handler.AttachmentHandler
	EvaluationHandler   *handler.EvaluationHandler
	ProfileHandler      *handler.ProfileHandler
	DashboardHandler    *handler.DashboardHandler
	AuditHandler        *handler.AuditHandler
	NotificationHandler *handler.NotificationHandler
	LocalizationHandler *handler.LocalizationHandler
	SeedHandler         *handler.SeedHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Group middleware
// in fiber applies to the path prefix, so each guarded surface gets its own
// prefix.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth, jwtMiddleware)
	}

	if deps.LocalizationHandler != nil {
		deps.LocalizationHandler.Register(api.Group("/l10n"))
	}

	if deps.IdeaHandler != nil {
		ideas := api.Group("/ideas", jwtMiddleware)
		deps.IdeaHandler.Register(ideas)
		if deps.AttachmentHandler != nil {
			deps.AttachmentHandler.Register(ideas)
		}
	}

	if deps.EvaluationHandler != nil {
		evaluations := api.Group("/evaluations", jwtMiddleware,
			middleware.RequireRole(models.RoleEvaluator, models.RoleManagement))
		deps.EvaluationHandler.Register(evaluations)
	}

	if deps.ProfileHandler != nil {
		deps.ProfileHandler.Register(api.Group("/profiles", jwtMiddleware))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", jwtMiddleware))
	}

	management := api.Group("/management", jwtMiddleware,
		middleware.RequireRole(models.RoleManagement))

	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.RegisterManagement(management.Group("/evaluations"))
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterManagement(management.Group("/profiles"))
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(management.Group("/dashboard"))
	}
	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(management.Group("/audit"))
	}

	if deps.SeedHandler != nil {
		seed := api.Group("/seed", middleware.RateLimit("seed", 10, time.Minute))
		deps.SeedHandler.Register(seed)
	}
}
