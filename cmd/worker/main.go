package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ad-agent/backend/internal/config"
	"github.com/ad-agent/backend/internal/db"
	"github.com/ad-agent/backend/internal/events"
	"github.com/ad-agent/backend/internal/models"
	"github.com/ad-agent/backend/internal/repositories"
	"github.com/ad-agent/backend/internal/webhooks"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.PGMaxConns, cfg.PGMinConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	webhookRepo := repositories.NewWebhookRepo(pool)
	dispatcher := webhooks.NewDispatcher(webhookRepo, cfg.WebhookMaxAttempts, cfg.WebhookBaseBackoff, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Fan campaign events out into per-endpoint delivery rows. The ticker
	// below drains them with retries.
	if err := subscriber.Subscribe(ctx, events.StreamCampaigns, func(event events.Event) {
		enqueueDeliveries(ctx, webhookRepo, event, log)
	}); err != nil {
		log.Fatal("failed to subscribe to campaign events", zap.Error(err))
	}

	log.Info("worker started")

	dispatchTicker := time.NewTicker(cfg.WebhookPollInterval)
	defer dispatchTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-dispatchTicker.C:
			dispatcher.RunDue(ctx, 50)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func enqueueDeliveries(ctx context.Context, repo *repositories.WebhookRepo, event events.Event, log *zap.Logger) {
	if event.UserID == "" {
		return
	}
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return
	}

	endpoints, err := repo.ListActiveEndpoints(ctx, userID)
	if err != nil {
		log.Error("failed to list webhook endpoints", zap.String("user_id", event.UserID), zap.Error(err))
		return
	}

	for _, endpoint := range endpoints {
		delivery := &models.WebhookDelivery{
			EndpointID: endpoint.ID,
			EventType:  event.Type,
			Payload:    event.Payload,
			Status:     models.DeliveryStatusPending,
		}
		if err := repo.CreateDelivery(ctx, delivery); err != nil {
			log.Error("failed to enqueue webhook delivery",
				zap.String("endpoint_id", endpoint.ID.String()),
				zap.Error(err))
		}
	}
}
