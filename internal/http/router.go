package http

import (
	"time"

	"github.com/ad-agent/backend/internal/config"
	"github.com/ad-agent/backend/internal/http/handlers"
	"github.com/ad-agent/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	connectionHandler *handlers.ConnectionHandler,
	briefHandler *handlers.BriefHandler,
	assetHandler *handlers.AssetHandler,
	campaignHandler *handlers.CampaignHandler,
	webhookHandler *handlers.WebhookHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// User
	protected.Get("/me", authHandler.GetMe)

	// Meta connection
	protected.Post("/connection", connectionHandler.Connect)
	protected.Get("/connection", connectionHandler.Get)
	protected.Put("/connection/selection", connectionHandler.SelectAccount)
	protected.Get("/connection/ad-accounts", connectionHandler.ListAdAccounts)
	protected.Get("/connection/pages", connectionHandler.ListPages)
	protected.Get("/connection/catalogs", connectionHandler.ListCatalogs)
	protected.Delete("/connection", connectionHandler.Disconnect)

	// Brief
	protected.Post("/brief", briefHandler.Create)
	protected.Get("/brief", briefHandler.GetLatest)

	// Assets
	protected.Post("/assets", assetHandler.Upload)
	protected.Get("/assets", assetHandler.List)
	protected.Delete("/assets/:id", assetHandler.Delete)

	// Campaigns
	protected.Post("/campaigns", campaignHandler.Create)
	protected.Get("/campaigns", campaignHandler.List)
	protected.Get("/campaigns/:id", campaignHandler.Get)
	protected.Put("/campaigns/:id", campaignHandler.Update)
	protected.Delete("/campaigns/:id", campaignHandler.Delete)
	protected.Post("/campaigns/:id/status", campaignHandler.SetStatus)
	protected.Post("/campaigns/:id/launch", campaignHandler.Launch)

	// Webhooks
	protected.Post("/webhooks", webhookHandler.Create)
	protected.Get("/webhooks", webhookHandler.List)
	protected.Delete("/webhooks/:id", webhookHandler.Delete)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
