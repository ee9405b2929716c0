package models

import (
	"time"

	"github.com/google/uuid"
)

// Brief is the onboarding business-context record. Immutable once created;
// updates insert a new version and the latest one wins.
type Brief struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Website         *string   `json:"website,omitempty"`
	TargetLocations *string   `json:"target_locations,omitempty"`
	AgeRange        *string   `json:"age_range,omitempty"`
	Gender          *string   `json:"gender,omitempty"`
	Currency        *string   `json:"currency,omitempty"`
	MonthlyBudget   *string   `json:"monthly_budget,omitempty"`
	Tone            *string   `json:"tone,omitempty"`
	Restrictions    *string   `json:"restrictions,omitempty"`
	ProductSummary  *string   `json:"product_summary,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Fields flattens the brief into the free-text map the targeting builder
// consumes. A nil brief yields an empty map, which degrades targeting to
// defaults rather than failing.
func (b *Brief) Fields() map[string]string {
	m := map[string]string{}
	if b == nil {
		return m
	}
	put := func(key string, v *string) {
		if v != nil && *v != "" {
			m[key] = *v
		}
	}
	put("website", b.Website)
	put("target_locations", b.TargetLocations)
	put("age_range", b.AgeRange)
	put("gender", b.Gender)
	put("currency", b.Currency)
	put("monthly_budget", b.MonthlyBudget)
	put("tone", b.Tone)
	put("restrictions", b.Restrictions)
	put("product_summary", b.ProductSummary)
	return m
}
