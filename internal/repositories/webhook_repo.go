package repositories

import (
	"context"
	"time"

	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WebhookRepo struct {
	pool *pgxpool.Pool
}

func NewWebhookRepo(pool *pgxpool.Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

func (r *WebhookRepo) CreateEndpoint(ctx context.Context, e *models.WebhookEndpoint) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO webhook_endpoints (user_id, url, secret, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.UserID, e.URL, e.Secret, e.IsActive).Scan(&e.ID, &e.CreatedAt)
}

func (r *WebhookRepo) ListActiveEndpoints(ctx context.Context, userID uuid.UUID) ([]models.WebhookEndpoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, url, secret, is_active, created_at
		FROM webhook_endpoints WHERE user_id = $1 AND is_active
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var endpoints []models.WebhookEndpoint
	for rows.Next() {
		var e models.WebhookEndpoint
		if err := rows.Scan(&e.ID, &e.UserID, &e.URL, &e.Secret, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, err
		}
		endpoints = append(endpoints, e)
	}
	return endpoints, rows.Err()
}

func (r *WebhookRepo) DeleteEndpoint(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM webhook_endpoints WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *WebhookRepo) CreateDelivery(ctx context.Context, d *models.WebhookDelivery) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO webhook_deliveries (endpoint_id, event_type, payload, status, attempts, next_retry_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, d.EndpointID, d.EventType, d.Payload, d.Status, d.Attempts, d.NextRetryAt,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// GetDue returns pending deliveries whose retry time has passed.
func (r *WebhookRepo) GetDue(ctx context.Context, limit int) ([]models.WebhookDelivery, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, endpoint_id, event_type, payload, status, attempts, last_error, next_retry_at, created_at, updated_at
		FROM webhook_deliveries
		WHERE status = $1 AND (next_retry_at IS NULL OR next_retry_at <= now())
		ORDER BY created_at ASC LIMIT $2
	`, models.DeliveryStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []models.WebhookDelivery
	for rows.Next() {
		var d models.WebhookDelivery
		if err := rows.Scan(&d.ID, &d.EndpointID, &d.EventType, &d.Payload, &d.Status,
			&d.Attempts, &d.LastError, &d.NextRetryAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func (r *WebhookRepo) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE webhook_deliveries SET status = $1, updated_at = now() WHERE id = $2
	`, models.DeliveryStatusDelivered, id)
	return err
}

// MarkAttemptFailed records a failed attempt and schedules the next retry,
// or marks the delivery failed when attempts are exhausted.
func (r *WebhookRepo) MarkAttemptFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string, nextRetryAt *time.Time, exhausted bool) error {
	status := models.DeliveryStatusPending
	if exhausted {
		status = models.DeliveryStatusFailed
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE webhook_deliveries SET status = $1, attempts = $2, last_error = $3, next_retry_at = $4, updated_at = now()
		WHERE id = $5
	`, status, attempts, lastError, nextRetryAt, id)
	return err
}

func (r *WebhookRepo) GetEndpoint(ctx context.Context, id uuid.UUID) (*models.WebhookEndpoint, error) {
	var e models.WebhookEndpoint
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, url, secret, is_active, created_at
		FROM webhook_endpoints WHERE id = $1
	`, id).Scan(&e.ID, &e.UserID, &e.URL, &e.Secret, &e.IsActive, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
