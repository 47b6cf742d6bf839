package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/safemm/safemm-backend/internal/config"
	"github.com/safemm/safemm-backend/internal/handlers"
	"github.com/safemm/safemm-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	lookupHandler *handlers.LookupHandler,
	moderationHandler *handlers.ModerationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public surface: anonymous submissions and risk lookups.
	api.Post("/reports", reportHandler.Submit)
	api.Get("/lookup", lookupHandler.Check)
	api.Get("/alerts", lookupHandler.ListAlerts)
	api.Get("/entities/confirmed", lookupHandler.ListConfirmed)
	api.Get("/phone/validate", lookupHandler.ValidatePhone)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so public routes stay unaffected
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Moderation panel (JWT + moderator allow-list)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.ModeratorRequired(db, cfg))
	admin.Get("/reports", moderationHandler.ListReports)
	admin.Post("/reports/:id/approve", moderationHandler.Approve)
	admin.Post("/reports/:id/reject", moderationHandler.Reject)
	admin.Post("/backfill", moderationHandler.Backfill)
	admin.Post("/alerts/:key/deactivate", moderationHandler.DeactivateAlert)
}
