package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ad-agent/backend/internal/config"
	"github.com/ad-agent/backend/internal/db"
	"github.com/ad-agent/backend/internal/events"
	apphttp "github.com/ad-agent/backend/internal/http"
	"github.com/ad-agent/backend/internal/http/handlers"
	"github.com/ad-agent/backend/internal/meta"
	"github.com/ad-agent/backend/internal/repositories"
	"github.com/ad-agent/backend/internal/services"
	"github.com/ad-agent/backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.PGMaxConns, cfg.PGMinConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Object storage
	store, err := storage.NewS3Store(cfg)
	if err != nil {
		log.Fatal("failed to init object storage", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	connectionRepo := repositories.NewConnectionRepo(pool)
	briefRepo := repositories.NewBriefRepo(pool)
	assetRepo := repositories.NewAssetRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	webhookRepo := repositories.NewWebhookRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Meta Graph client
	graph := meta.NewClient(cfg.MetaGraphBaseURL, cfg.MetaAPIVersion, cfg.MetaStepTimeout, log)

	// Services
	payloadService := services.NewPayloadService(connectionRepo, briefRepo, assetRepo, log)
	launchService := services.NewLaunchService(graph, campaignRepo, cfg.DefaultCountry, cfg.MetaStepTimeout, log)
	launchLock := services.NewLaunchLock(rdb)
	campaignService := services.NewCampaignService(campaignRepo, auditRepo, payloadService, launchService, launchLock, publisher, log)
	connectionService := services.NewConnectionService(connectionRepo, auditRepo, graph, publisher, cfg, log)
	assetService := services.NewAssetService(assetRepo, store, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	connectionHandler := handlers.NewConnectionHandler(connectionService, log)
	briefHandler := handlers.NewBriefHandler(briefRepo, log)
	assetHandler := handlers.NewAssetHandler(assetService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	webhookHandler := handlers.NewWebhookHandler(webhookRepo, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, connectionHandler, briefHandler, assetHandler, campaignHandler, webhookHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
