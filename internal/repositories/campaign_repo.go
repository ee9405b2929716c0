package repositories

import (
	"context"
	"fmt"

	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

const campaignColumns = `
	id, user_id, name, objective, goal, daily_budget, currency, start_time, end_time,
	description, offer_text, asset_type, page_id, catalog_id, status,
	meta_campaign_id, meta_adset_id, meta_creative_id, meta_ad_id, created_at, updated_at
`

func scanCampaign(row interface{ Scan(...any) error }, c *models.Campaign) error {
	return row.Scan(&c.ID, &c.UserID, &c.Name, &c.Objective, &c.Goal, &c.DailyBudget,
		&c.Currency, &c.StartTime, &c.EndTime, &c.Description, &c.OfferText,
		&c.AssetType, &c.PageID, &c.CatalogID, &c.Status,
		&c.MetaCampaignID, &c.MetaAdSetID, &c.MetaCreativeID, &c.MetaAdID,
		&c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (user_id, name, objective, goal, daily_budget, currency, start_time, end_time,
		                       description, offer_text, asset_type, page_id, catalog_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.Name, c.Objective, c.Goal, c.DailyBudget, c.Currency, c.StartTime, c.EndTime,
		c.Description, c.OfferText, c.AssetType, c.PageID, c.CatalogID, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err := scanCampaign(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET name = $1, objective = $2, goal = $3, daily_budget = $4, currency = $5,
		       start_time = $6, end_time = $7, description = $8, offer_text = $9,
		       asset_type = $10, page_id = $11, catalog_id = $12, status = $13, updated_at = now()
		WHERE id = $14
	`, c.Name, c.Objective, c.Goal, c.DailyBudget, c.Currency, c.StartTime, c.EndTime,
		c.Description, c.OfferText, c.AssetType, c.PageID, c.CatalogID, c.Status, c.ID)
	return err
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}

// SetRemoteIDs mirrors the four created Graph resources onto the local row
// in one statement, together with the paused status. All four identifiers
// are written atomically so the row never holds a partial set.
func (r *CampaignRepo) SetRemoteIDs(ctx context.Context, id uuid.UUID, campaignID, adSetID, creativeID, adID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET meta_campaign_id = $1, meta_adset_id = $2, meta_creative_id = $3, meta_ad_id = $4,
		       status = $5, updated_at = now()
		WHERE id = $6
	`, campaignID, adSetID, creativeID, adID, models.CampaignStatusPaused, id)
	return err
}

func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

type CampaignFilter struct {
	UserID *uuid.UUID
	Status *string
	Limit  int
	Offset int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.UserID != nil {
		where = append(where, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, *f.UserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := scanCampaign(rows, &c); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}
