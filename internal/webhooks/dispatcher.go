package webhooks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ad-agent/backend/internal/models"
	"github.com/ad-agent/backend/internal/repositories"
	"go.uber.org/zap"
)

// Dispatcher delivers queued webhook events with exponential backoff. It is
// deliberately independent of the launch orchestrator: launches publish
// events, the dispatcher owns the retry state machine.
type Dispatcher struct {
	repo        *repositories.WebhookRepo
	httpClient  *http.Client
	maxAttempts int
	baseBackoff time.Duration
	log         *zap.Logger
}

func NewDispatcher(repo *repositories.WebhookRepo, maxAttempts int, baseBackoff time.Duration, log *zap.Logger) *Dispatcher {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if baseBackoff <= 0 {
		baseBackoff = 30 * time.Second
	}
	return &Dispatcher{
		repo: repo,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
		log:         log,
	}
}

// Backoff returns the delay before the given retry attempt (1-based):
// base, 2*base, 4*base, and so on.
func (d *Dispatcher) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return d.baseBackoff * time.Duration(1<<(attempt-1))
}

// RunDue processes every due pending delivery once.
func (d *Dispatcher) RunDue(ctx context.Context, batchSize int) {
	deliveries, err := d.repo.GetDue(ctx, batchSize)
	if err != nil {
		d.log.Error("failed to fetch due deliveries", zap.Error(err))
		return
	}

	for i := range deliveries {
		d.attempt(ctx, &deliveries[i])
	}
}

func (d *Dispatcher) attempt(ctx context.Context, delivery *models.WebhookDelivery) {
	endpoint, err := d.repo.GetEndpoint(ctx, delivery.EndpointID)
	if err != nil {
		d.log.Error("delivery references unknown endpoint",
			zap.String("delivery_id", delivery.ID.String()), zap.Error(err))
		return
	}

	attempts := delivery.Attempts + 1
	err = d.post(ctx, endpoint, delivery)
	if err == nil {
		if err := d.repo.MarkDelivered(ctx, delivery.ID); err != nil {
			d.log.Error("failed to mark delivery done", zap.Error(err))
		}
		return
	}

	exhausted := attempts >= d.maxAttempts
	var nextRetry *time.Time
	if !exhausted {
		t := time.Now().Add(d.Backoff(attempts))
		nextRetry = &t
	}

	d.log.Warn("webhook delivery attempt failed",
		zap.String("delivery_id", delivery.ID.String()),
		zap.Int("attempt", attempts),
		zap.Bool("exhausted", exhausted),
		zap.Error(err))

	if err := d.repo.MarkAttemptFailed(ctx, delivery.ID, attempts, err.Error(), nextRetry, exhausted); err != nil {
		d.log.Error("failed to record delivery attempt", zap.Error(err))
	}
}

func (d *Dispatcher) post(ctx context.Context, endpoint *models.WebhookEndpoint, delivery *models.WebhookDelivery) error {
	body, err := json.Marshal(map[string]any{
		"event":   delivery.EventType,
		"payload": delivery.Payload,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-AdAgent-Signature", sign(endpoint.Secret, body))

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
