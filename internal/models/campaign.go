package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign statuses. A draft becomes launching while the remote creation
// sequence runs; on success it lands in paused (never active automatically).
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusLaunching = "launching"
	CampaignStatusPaused    = "paused"
	CampaignStatusActive    = "active"
	CampaignStatusFailed    = "failed"
	CampaignStatusArchived  = "archived"
)

// Asset types a campaign can advertise with.
const (
	AssetTypeUpload  = "upload"
	AssetTypeCatalog = "catalog"
)

var ValidCampaignTransitions = map[string][]string{
	CampaignStatusDraft:     {CampaignStatusLaunching, CampaignStatusArchived},
	CampaignStatusLaunching: {CampaignStatusPaused, CampaignStatusFailed},
	CampaignStatusFailed:    {CampaignStatusLaunching, CampaignStatusArchived},
	CampaignStatusPaused:    {CampaignStatusActive, CampaignStatusArchived},
	CampaignStatusActive:    {CampaignStatusPaused, CampaignStatusArchived},
	CampaignStatusArchived:  {},
}

func IsValidCampaignTransition(from, to string) bool {
	for _, s := range ValidCampaignTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsValidAssetType(t string) bool {
	return t == AssetTypeUpload || t == AssetTypeCatalog
}

type Campaign struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Objective   string     `json:"objective"`
	Goal        string     `json:"goal"`
	DailyBudget string     `json:"daily_budget"`
	Currency    string     `json:"currency"`
	StartTime   *string    `json:"start_time,omitempty"`
	EndTime     *string    `json:"end_time,omitempty"`
	Description *string    `json:"description,omitempty"`
	OfferText   *string    `json:"offer_text,omitempty"`
	AssetType   string     `json:"asset_type"`
	PageID      *string    `json:"page_id,omitempty"`
	CatalogID   *string    `json:"catalog_id,omitempty"`
	Status      string     `json:"status"`

	// Remote mirror: all four are set together after a successful launch,
	// or none are.
	MetaCampaignID *string `json:"meta_campaign_id,omitempty"`
	MetaAdSetID    *string `json:"meta_adset_id,omitempty"`
	MetaCreativeID *string `json:"meta_creative_id,omitempty"`
	MetaAdID       *string `json:"meta_ad_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
