package repositories

import (
	"context"

	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetRepo struct {
	pool *pgxpool.Pool
}

func NewAssetRepo(pool *pgxpool.Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

func (r *AssetRepo) Create(ctx context.Context, a *models.Asset) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO assets (user_id, campaign_id, file_name, content_type, size_bytes, storage_key, public_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, a.UserID, a.CampaignID, a.FileName, a.ContentType, a.SizeBytes, a.StorageKey, a.PublicURL,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *AssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var a models.Asset
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, campaign_id, file_name, content_type, size_bytes, storage_key, public_url, created_at
		FROM assets WHERE id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.CampaignID, &a.FileName, &a.ContentType,
		&a.SizeBytes, &a.StorageKey, &a.PublicURL, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Asset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, campaign_id, file_name, content_type, size_bytes, storage_key, public_url, created_at
		FROM assets WHERE campaign_id = $1
		ORDER BY created_at ASC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.CampaignID, &a.FileName, &a.ContentType,
			&a.SizeBytes, &a.StorageKey, &a.PublicURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *AssetRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Asset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, campaign_id, file_name, content_type, size_bytes, storage_key, public_url, created_at
		FROM assets WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.CampaignID, &a.FileName, &a.ContentType,
			&a.SizeBytes, &a.StorageKey, &a.PublicURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *AssetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}
