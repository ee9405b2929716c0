package repositories

import (
	"context"
	"errors"

	"github.com/ad-agent/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BriefRepo struct {
	pool *pgxpool.Pool
}

func NewBriefRepo(pool *pgxpool.Pool) *BriefRepo {
	return &BriefRepo{pool: pool}
}

// Create inserts a new brief version. Briefs are never updated in place.
func (r *BriefRepo) Create(ctx context.Context, b *models.Brief) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO briefs (user_id, website, target_locations, age_range, gender, currency, monthly_budget, tone, restrictions, product_summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, b.UserID, b.Website, b.TargetLocations, b.AgeRange, b.Gender, b.Currency,
		b.MonthlyBudget, b.Tone, b.Restrictions, b.ProductSummary,
	).Scan(&b.ID, &b.CreatedAt)
}

// GetLatest returns the newest brief version, or (nil, nil) when the user
// has not submitted one. Absence is tolerated by the payload assembler.
func (r *BriefRepo) GetLatest(ctx context.Context, userID uuid.UUID) (*models.Brief, error) {
	var b models.Brief
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, website, target_locations, age_range, gender, currency, monthly_budget, tone, restrictions, product_summary, created_at
		FROM briefs WHERE user_id = $1
		ORDER BY created_at DESC LIMIT 1
	`, userID).Scan(&b.ID, &b.UserID, &b.Website, &b.TargetLocations, &b.AgeRange, &b.Gender,
		&b.Currency, &b.MonthlyBudget, &b.Tone, &b.Restrictions, &b.ProductSummary, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
