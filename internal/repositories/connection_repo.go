package repositories

import (
	"context"

	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConnectionRepo struct {
	pool *pgxpool.Pool
}

func NewConnectionRepo(pool *pgxpool.Pool) *ConnectionRepo {
	return &ConnectionRepo{pool: pool}
}

// Upsert stores the connection for a user, replacing any previous link.
// One connection per user is enforced by a unique index on user_id.
func (r *ConnectionRepo) Upsert(ctx context.Context, c *models.Connection) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO connections (user_id, ad_account_id, pixel_id, catalog_id, catalog_name, page_id, page_name, access_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			ad_account_id = EXCLUDED.ad_account_id,
			pixel_id      = EXCLUDED.pixel_id,
			catalog_id    = EXCLUDED.catalog_id,
			catalog_name  = EXCLUDED.catalog_name,
			page_id       = EXCLUDED.page_id,
			page_name     = EXCLUDED.page_name,
			access_token  = EXCLUDED.access_token,
			updated_at    = now()
		RETURNING id, created_at, updated_at
	`, c.UserID, c.AdAccountID, c.PixelID, c.CatalogID, c.CatalogName, c.PageID, c.PageName, c.AccessToken,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ConnectionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Connection, error) {
	var c models.Connection
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, ad_account_id, pixel_id, catalog_id, catalog_name, page_id, page_name, access_token, created_at, updated_at
		FROM connections WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.AdAccountID, &c.PixelID, &c.CatalogID, &c.CatalogName,
		&c.PageID, &c.PageName, &c.AccessToken, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ClearAccessToken disconnects the account. The row and selected identifiers
// survive so a reconnect keeps the user's previous choices.
func (r *ConnectionRepo) ClearAccessToken(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE connections SET access_token = NULL, updated_at = now() WHERE user_id = $1
	`, userID)
	return err
}

func (r *ConnectionRepo) UpdateSelection(ctx context.Context, c *models.Connection) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE connections SET ad_account_id = $1, pixel_id = $2, catalog_id = $3, catalog_name = $4,
		       page_id = $5, page_name = $6, updated_at = now()
		WHERE user_id = $7
	`, c.AdAccountID, c.PixelID, c.CatalogID, c.CatalogName, c.PageID, c.PageName, c.UserID)
	return err
}
